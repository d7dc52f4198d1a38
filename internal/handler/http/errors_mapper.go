package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-profile-keeper/internal/app"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/service"
	"github.com/MKhiriev/go-profile-keeper/internal/utils"
	"github.com/MKhiriev/go-profile-keeper/models"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatuses is matched in order; the first sentinel in the chain wins, so
// an unavailable store outranks anything it was wrapped together with.
var errorStatuses = []struct {
	target error
	resp   errorResponse
}{
	{service.ErrStoreUnavailable, errorResponse{http.StatusServiceUnavailable, app.MsgPleaseTryAgain}},
	{service.ErrInvalidCredentials, errorResponse{http.StatusUnauthorized, app.MsgInvalidCredentials}},
	{service.ErrUnauthenticated, errorResponse{http.StatusUnauthorized, app.MsgInvalidRequest}},
	{service.ErrForbidden, errorResponse{http.StatusForbidden, app.MsgAccessDenied}},
	{service.ErrAlreadyExists, errorResponse{http.StatusConflict, app.MsgUsernameAlreadyExists}},
	{service.ErrNotFound, errorResponse{http.StatusNotFound, app.MsgProfileDoesNotExist}},
	{service.ErrInvalidRequest, errorResponse{http.StatusBadRequest, app.MsgInvalidRequest}},

	{ErrUnknownMode, errorResponse{http.StatusBadRequest, app.MsgInvalidRequest}},
	{ErrUnknownAction, errorResponse{http.StatusBadRequest, app.MsgInvalidRequest}},
	{ErrMissingFile, errorResponse{http.StatusBadRequest, app.MsgInvalidRequest}},
}

func responseFromError(err error) errorResponse {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errorResponse{http.StatusRequestEntityTooLarge, app.MsgFileTooLarge}
	}
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.resp
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgPleaseTryAgain}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError logs err and answers with its mapped status and message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", resp.status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", resp.status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{ErrorMessage: resp.message}, resp.status)
}
