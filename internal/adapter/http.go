package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/utils"
	"github.com/MKhiriev/go-profile-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client     *utils.HTTPClient
	cookieName string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP implementation of [ServerAdapter].
// Returns an error if cfg.ServerAddress cannot be parsed as a URL.
func NewHTTPServerAdapter(cfg config.Client, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: client, cookieName: cfg.CookieName, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, creds models.Credentials) (string, error) {
	return h.authenticate(ctx, "register", creds)
}

func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (string, error) {
	return h.authenticate(ctx, "login", creds)
}

// authenticate posts the login form in the given mode and keeps the session
// cookie the server sets.
func (h *httpServerAdapter) authenticate(ctx context.Context, mode string, creds models.Credentials) (string, error) {
	var redirect models.RedirectResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"mode":     mode,
			"username": creds.Username,
			"password": creds.Password,
		}).
		SetResult(&redirect).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("%s request: %w", mode, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token, ok := h.sessionCookie(resp)
	if !ok {
		return "", fmt.Errorf("%s: %w", mode, ErrNoSessionCookie)
	}

	h.SetToken(token)
	h.logger.Debug().Str("username", creds.Username).Str("mode", mode).Msg("session stored")
	return redirect.Redirect, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Profile(ctx context.Context, username string) (models.ProfileView, error) {
	var view models.ProfileView

	resp, err := h.authedRequest(ctx).
		SetPathParam("user", username).
		SetResult(&view).
		Get("/{user}/profile")
	if err != nil {
		return models.ProfileView{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProfileView{}, err
	}

	return view, nil
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, username, password string) error {
	return h.profileAction(ctx, username, map[string]string{
		"action":   "password",
		"password": password,
	})
}

func (h *httpServerAdapter) Rename(ctx context.Context, username, firstName, lastName string) error {
	return h.profileAction(ctx, username, map[string]string{
		"action": "name",
		"fname":  firstName,
		"lname":  lastName,
	})
}

func (h *httpServerAdapter) DeleteAccount(ctx context.Context, username, confirmation string) error {
	err := h.profileAction(ctx, username, map[string]string{
		"action":       "delete",
		"confirmation": confirmation,
	})
	if err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) profileAction(ctx context.Context, username string, form map[string]string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("user", username).
		SetFormData(form).
		Post("/{user}/profile")
	if err != nil {
		return fmt.Errorf("%s request: %w", form["action"], err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) SetAvatar(ctx context.Context, username, filename string, content io.Reader) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("user", username).
		SetFormData(map[string]string{"action": "picture"}).
		SetFileReader("picture", filename, content).
		Post("/{user}/profile")
	if err != nil {
		return fmt.Errorf("picture request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) UploadFile(ctx context.Context, username, filename string, content io.Reader) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("user", username).
		SetFileReader("file", filename, content).
		Post("/{user}/files")
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ListFiles(ctx context.Context, username string) ([]string, error) {
	var files models.FilesResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("user", username).
		SetResult(&files).
		Get("/{user}/files")
	if err != nil {
		return nil, fmt.Errorf("list files request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return files.Files, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetCookie(&http.Cookie{Name: h.cookieName, Value: token})
	}
	return req
}

func (h *httpServerAdapter) sessionCookie(resp *resty.Response) (string, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == h.cookieName && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}
