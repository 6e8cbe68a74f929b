package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/Dias221467/health-o-mania/pkg/middleware"
	"github.com/sirupsen/logrus"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

var errUnauthenticated = apperr.New(apperr.Unauthenticated, "You must be logged in.")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("Failed to encode response")
	}
}

// writeError writes err as {"code", "message"}. Unclassified errors are
// logged and reported as internal.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.From(err)
	entry := logger.Log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"code":   appErr.Code,
	})
	if appErr.Code == apperr.Internal {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.Warn(appErr.Message)
	}
	writeJSON(w, apperr.HTTPStatus(appErr.Code), appErr)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		return apperr.Wrap(err, apperr.InvalidArgument, "Invalid request payload.")
	}
	return nil
}

// callerID returns the authenticated user, or "" after writing a 401.
func callerID(w http.ResponseWriter, r *http.Request) string {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, r, errUnauthenticated)
		return ""
	}
	return claims.UserID
}
