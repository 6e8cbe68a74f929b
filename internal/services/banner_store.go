package services

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/google/uuid"
)

// MaxBannerSize caps a live-class banner upload.
const MaxBannerSize = 5 << 20

const uploadsPrefix = "/uploads/"

var bannerExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// BannerStore keeps live-class banners on local disk; they are served
// back under /uploads/.
type BannerStore struct {
	dir string
}

func NewBannerStore(dir string) *BannerStore {
	return &BannerStore{dir: dir}
}

// Save writes a JPEG or PNG image under a random name and returns its URL.
func (b *BannerStore) Save(r io.Reader) (string, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", fmt.Errorf("failed to read banner: %v", err)
	}
	ext, ok := bannerExt[http.DetectContentType(head)]
	if !ok {
		return "", apperr.New(apperr.InvalidArgument, "Banner must be a JPEG or PNG image.")
	}

	if err := os.MkdirAll(b.dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %v", err)
	}
	name := uuid.NewString() + ext
	out, err := os.Create(filepath.Join(b.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to save banner: %v", err)
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(br, MaxBannerSize+1))
	if err == nil && n > MaxBannerSize {
		err = apperr.New(apperr.InvalidArgument, "Banner must be smaller than 5 MB.")
	}
	if err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", err
	}
	return uploadsPrefix + name, nil
}

// Remove deletes a banner previously returned by Save. Unknown URLs are
// ignored.
func (b *BannerStore) Remove(url string) {
	if !strings.HasPrefix(url, uploadsPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(url, uploadsPrefix))
	if err := os.Remove(filepath.Join(b.dir, name)); err != nil && !os.IsNotExist(err) {
		logger.Log.WithError(err).WithField("banner", name).Warn("Failed to remove banner")
	}
}
