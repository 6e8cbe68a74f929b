package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsExistingClassification(t *testing.T) {
	original := New(PermissionDenied, "nope")
	wrapped := Wrap(fmt.Errorf("context: %w", original), Internal, "ignored")

	assert.Same(t, original, wrapped)
}

func TestFromUnclassifiedIsInternal(t *testing.T) {
	cause := errors.New("connection reset")
	err := From(cause)

	assert.Equal(t, Internal, err.Code)
	assert.Equal(t, InternalMessage, err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestFromNil(t *testing.T) {
	assert.Nil(t, From(nil))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("send: %w", New(AlreadyExists, "dup"))

	assert.True(t, Is(err, AlreadyExists))
	assert.False(t, Is(err, NotFound))
	assert.False(t, Is(errors.New("plain"), Internal))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{Unauthenticated, http.StatusUnauthorized},
		{InvalidArgument, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{PermissionDenied, http.StatusForbidden},
		{AlreadyExists, http.StatusConflict},
		{Internal, http.StatusInternalServerError},
		{Code("bogus"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}
