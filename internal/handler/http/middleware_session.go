package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/service"
	"github.com/MKhiriev/go-profile-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

// withSession copies the session cookie, if any, into the request context
// under [utils.SessionTokenCtxKey]. It never rejects a request: whether the
// token is live is decided by the handlers.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cfg.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithSessionToken(r.Context(), cookie.Value)))
	})
}

// requireOwner lets a request through only when its session is the current
// session of the {user} in the path.
func (h *Handler) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)
		username := chi.URLParam(r, userParam)

		token, ok := utils.GetSessionTokenFromContext(ctx)
		if !ok {
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		owner, err := h.services.AuthService.IsOwner(ctx, token, username)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !owner {
			// a live session for someone else is forbidden, a dead one is not logged in
			if _, live := h.services.AuthService.Resolve(ctx, token); live {
				log.Warn().Str("username", username).Msg("mutation of a foreign profile refused")
				writeError(w, r, fmt.Errorf("%w: not the owner of %q", service.ErrForbidden, username))
				return
			}
			utils.ClearSessionCookie(w, h.cfg.CookieName, h.cfg.CookieSecure)
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limitBody caps request bodies at the configured upload size.
func (h *Handler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.MaxUploadSize > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
		}
		next.ServeHTTP(w, r)
	})
}
