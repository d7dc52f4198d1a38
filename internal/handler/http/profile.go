package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/utils"
	"github.com/MKhiriev/go-profile-keeper/models"
	"github.com/go-chi/chi/v5"
)

const (
	actionPassword = "password"
	actionPicture  = "picture"
	actionName     = "name"
	actionDelete   = "delete"
)

const userParam = "user"

func (h *Handler) viewProfile(w http.ResponseWriter, r *http.Request) {
	token, _ := utils.GetSessionTokenFromContext(r.Context())

	view, err := h.services.ProfileService.View(r.Context(), token, chi.URLParam(r, userParam))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

// updateProfile dispatches on the form field "action". Ownership has already
// been checked by requireOwner.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	username := chi.URLParam(r, userParam)
	auth := h.services.AuthService

	var err error
	switch action := r.FormValue("action"); action {
	case actionPassword:
		err = auth.ChangePassword(ctx, username, r.PostFormValue("password"))
	case actionPicture:
		err = h.setAvatar(r, username)
	case actionName:
		first, last := r.PostFormValue("fname"), r.PostFormValue("lname")
		err = auth.UpdateProfile(ctx, username, models.ProfileUpdate{FirstName: &first, LastName: &last})
	case actionDelete:
		if err = auth.DeleteAccount(ctx, username, r.PostFormValue("confirmation")); err == nil {
			log.Info().Str("username", username).Msg("account deleted")
			utils.ClearSessionCookie(w, h.cfg.CookieName, h.cfg.CookieSecure)
			utils.WriteJSON(w, models.RedirectResponse{Redirect: "/login"}, http.StatusOK)
			return
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RedirectResponse{Redirect: profilePath(username)}, http.StatusOK)
}

func (h *Handler) setAvatar(r *http.Request, username string) error {
	file, header, err := r.FormFile(actionPicture)
	if err != nil {
		return formFileError(err)
	}
	defer file.Close()

	_, err = h.services.ProfileService.SetAvatar(r.Context(), username, header.Filename, file)
	return err
}

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, userParam)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, formFileError(err))
		return
	}
	defer file.Close()

	if err = h.services.ProfileService.UploadFile(r.Context(), username, header.Filename, file); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RedirectResponse{Redirect: profilePath(username)}, http.StatusCreated)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, userParam)

	names, err := h.services.ProfileService.ListFiles(r.Context(), username)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.FilesResponse{Username: username, Files: names}, http.StatusOK)
}

// formFileError keeps size-limit failures distinguishable from a missing part.
func formFileError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrMissingFile, err)
}
