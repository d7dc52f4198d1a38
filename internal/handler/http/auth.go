package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/utils"
	"github.com/MKhiriev/go-profile-keeper/models"
)

const (
	modeLogin    = "login"
	modeRegister = "register"
)

// home sends anonymous visitors to the login page and live sessions to their
// own profile. A cookie that no longer resolves is cleared.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetSessionTokenFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	profile, ok := h.services.AuthService.Resolve(r.Context(), token)
	if !ok {
		utils.ClearSessionCookie(w, h.cfg.CookieName, h.cfg.CookieSecure)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, profilePath(profile.Username), http.StatusSeeOther)
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if token, ok := utils.GetSessionTokenFromContext(r.Context()); ok {
		if profile, ok := h.services.AuthService.Resolve(r.Context(), token); ok {
			http.Redirect(w, r, profilePath(profile.Username), http.StatusSeeOther)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// login handles both login and registration; the form field "mode" selects
// which.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrUnknownMode, err))
		return
	}

	creds := models.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	var (
		session models.Session
		err     error
	)
	switch mode := r.PostFormValue("mode"); mode {
	case modeLogin:
		session, err = h.services.AuthService.Login(ctx, creds)
	case modeRegister:
		session, err = h.services.AuthService.Register(ctx, creds)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", session.Profile.Username).Msg("session issued")

	utils.SetSessionCookie(w, h.cfg.CookieName, session.Token, h.cfg.CookieSecure)
	utils.WriteJSON(w, models.RedirectResponse{Redirect: profilePath(session.Profile.Username)}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := utils.GetSessionTokenFromContext(r.Context()); ok {
		if err := h.services.AuthService.Logout(r.Context(), token); err != nil {
			writeError(w, r, err)
			return
		}
	}

	utils.ClearSessionCookie(w, h.cfg.CookieName, h.cfg.CookieSecure)
	utils.WriteJSON(w, models.RedirectResponse{Redirect: "/"}, http.StatusOK)
}

func profilePath(username string) string {
	return "/" + username + "/profile"
}
