package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dias221467/health-o-mania/internal/metrics"
	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/Dias221467/health-o-mania/pkg/logger"
)

// ClassTimeLayout renders LiveClass.Time from StartAt.
const ClassTimeLayout = "Jan 2, 2006 3:04 PM"

// CoachService manages coach profiles and the live classes they host.
type CoachService struct {
	tx        repository.Transactor
	repo      repository.Coaches
	classRepo repository.LiveClasses
	userRepo  repository.Users
	banners   *BannerStore
	mailer    Mailer
}

func NewCoachService(store *repository.Store, banners *BannerStore, mailer Mailer) *CoachService {
	return &CoachService{
		tx:        store.Tx,
		repo:      store.Coaches,
		classRepo: store.LiveClasses,
		userRepo:  store.Users,
		banners:   banners,
		mailer:    mailer,
	}
}

// RegisterCoach creates the caller's coach profile. A user has at most one.
func (s *CoachService) RegisterCoach(ctx context.Context, userID string, in models.CoachInput) (*models.Coach, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "Your user profile could not be found.")
	}

	coach := &models.Coach{
		UserID:         userID,
		FullName:       strings.TrimSpace(in.FullName),
		Email:          user.Email,
		Specialty:      in.Specialty,
		Bio:            in.Bio,
		Certifications: in.Certifications,
	}
	if err := s.repo.Create(ctx, coach); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Wrap(err, apperr.AlreadyExists, "You already have a coach profile.")
		}
		return nil, err
	}

	if err := s.mailer.Send(coach.Email, "Your coach profile is live",
		fmt.Sprintf("Hi %s,\n\nThanks for joining Health-O-Mania as a %s coach. You can now schedule live classes.", coach.FullName, coach.Specialty),
	); err != nil {
		logger.Log.WithError(err).Warn("Failed to send coach confirmation email")
	}
	logger.Log.WithField("coach_id", coach.ID).Info("Coach registered")
	return coach, nil
}

func (s *CoachService) GetMyCoachProfile(ctx context.Context, userID string) (*models.Coach, error) {
	coach, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "You don't have a coach profile.")
	}
	return coach, nil
}

func (s *CoachService) LatestCoach(ctx context.Context) (*models.Coach, error) {
	coach, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, notFound(err, "No coaches yet.")
	}
	return coach, nil
}

// RemoveCoach deletes the caller's coach profile and every class it hosts
// in one atomic unit that performs no reads. Either everything is removed
// or nothing is.
func (s *CoachService) RemoveCoach(ctx context.Context, userID string) error {
	coach, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return notFound(err, "You don't have a coach profile.")
	}
	classes, err := s.coachClasses(ctx, coach.ID)
	if err != nil {
		return err
	}

	var removed int64
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		n, err := s.classRepo.DeleteByCoach(ctx, coach.ID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, coach.ID); err != nil {
			return notFound(err, "You don't have a coach profile.")
		}
		removed = n
		return nil
	})
	if err != nil {
		logger.Log.WithError(err).WithField("coach_id", coach.ID).Error("Failed to remove coach")
		return err
	}

	for _, c := range classes {
		if c.Image != "" {
			s.banners.Remove(c.Image)
		}
	}
	metrics.CoachesRemoved.Inc()
	logger.Log.WithFields(map[string]interface{}{
		"coach_id": coach.ID,
		"classes":  removed,
	}).Info("Coach removed")
	return nil
}

func (s *CoachService) coachClasses(ctx context.Context, coachID string) ([]models.LiveClass, error) {
	all, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var own []models.LiveClass
	for _, c := range all {
		if c.CoachDocID == coachID {
			own = append(own, c)
		}
	}
	return own, nil
}

// AddLiveClass schedules a class hosted by the caller's coach profile.
// banner may be nil.
func (s *CoachService) AddLiveClass(ctx context.Context, userID string, in models.LiveClassInput, banner io.Reader) (*models.LiveClass, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	coach, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Wrap(err, apperr.PermissionDenied, "Only coaches can schedule live classes.")
	}
	if err != nil {
		return nil, err
	}

	class := &models.LiveClass{
		Title:          in.Title,
		InstructorName: coach.FullName,
		InstructorID:   userID,
		CoachDocID:     coach.ID,
		Time:           in.StartAt.Format(ClassTimeLayout),
		Duration:       in.Duration,
		Category:       in.Category,
		MeetLink:       in.MeetLink,
		StartAt:        in.StartAt.UTC(),
	}
	if banner != nil {
		url, err := s.banners.Save(banner)
		if err != nil {
			return nil, err
		}
		class.Image = url
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		if class.Image != "" {
			s.banners.Remove(class.Image)
		}
		return nil, err
	}
	logger.Log.WithField("class_id", class.ID).Info("Live class scheduled")
	return class, nil
}

func (s *CoachService) ListLiveClasses(ctx context.Context) ([]models.LiveClass, error) {
	return s.classRepo.List(ctx)
}

func (s *CoachService) GetLiveClass(ctx context.Context, id string) (*models.LiveClass, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Live class not found.")
	}
	return class, nil
}

// RemoveLiveClass deletes a class; only its instructor may do so.
func (s *CoachService) RemoveLiveClass(ctx context.Context, userID, id string) error {
	class, err := s.GetLiveClass(ctx, id)
	if err != nil {
		return err
	}
	if class.InstructorID != userID {
		return apperr.New(apperr.PermissionDenied, "Only the instructor can remove this class.")
	}
	if err := s.classRepo.Delete(ctx, id); err != nil {
		return notFound(err, "Live class not found.")
	}
	if class.Image != "" {
		s.banners.Remove(class.Image)
	}
	return nil
}
