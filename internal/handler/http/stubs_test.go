package http

import (
	"context"
	"io"

	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/service"
	"github.com/MKhiriev/go-profile-keeper/models"
)

// ─────────────────────────────────────────────
// Stubs
// ─────────────────────────────────────────────

// stubAuthService implements service.AuthService; unset functions act as a
// service with no sessions and no accounts.
type stubAuthService struct {
	registerFn       func(ctx context.Context, creds models.Credentials) (models.Session, error)
	loginFn          func(ctx context.Context, creds models.Credentials) (models.Session, error)
	logoutFn         func(ctx context.Context, token string) error
	resolveFn        func(ctx context.Context, token string) (models.Profile, bool)
	isOwnerFn        func(ctx context.Context, token, username string) (bool, error)
	updateProfileFn  func(ctx context.Context, username string, update models.ProfileUpdate) error
	changePasswordFn func(ctx context.Context, username, newPassword string) error
	deleteAccountFn  func(ctx context.Context, username, confirmation string) error
}

func (s *stubAuthService) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if s.registerFn == nil {
		return models.Session{}, service.ErrStoreUnavailable
	}
	return s.registerFn(ctx, creds)
}

func (s *stubAuthService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if s.loginFn == nil {
		return models.Session{}, service.ErrInvalidCredentials
	}
	return s.loginFn(ctx, creds)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Resolve(ctx context.Context, token string) (models.Profile, bool) {
	if s.resolveFn == nil {
		return models.Profile{}, false
	}
	return s.resolveFn(ctx, token)
}

func (s *stubAuthService) IsOwner(ctx context.Context, token, username string) (bool, error) {
	if s.isOwnerFn == nil {
		return false, nil
	}
	return s.isOwnerFn(ctx, token, username)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, username string, update models.ProfileUpdate) error {
	if s.updateProfileFn == nil {
		return nil
	}
	return s.updateProfileFn(ctx, username, update)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if s.changePasswordFn == nil {
		return nil
	}
	return s.changePasswordFn(ctx, username, newPassword)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, username, confirmation string) error {
	if s.deleteAccountFn == nil {
		return nil
	}
	return s.deleteAccountFn(ctx, username, confirmation)
}

type stubProfileService struct {
	viewFn       func(ctx context.Context, token, username string) (models.ProfileView, error)
	setAvatarFn  func(ctx context.Context, username, filename string, r io.Reader) (string, error)
	uploadFileFn func(ctx context.Context, username, filename string, r io.Reader) error
	listFilesFn  func(ctx context.Context, username string) ([]string, error)
}

func (s *stubProfileService) View(ctx context.Context, token, username string) (models.ProfileView, error) {
	if s.viewFn == nil {
		return models.ProfileView{}, service.ErrNotFound
	}
	return s.viewFn(ctx, token, username)
}

func (s *stubProfileService) SetAvatar(ctx context.Context, username, filename string, r io.Reader) (string, error) {
	if s.setAvatarFn == nil {
		return "", nil
	}
	return s.setAvatarFn(ctx, username, filename, r)
}

func (s *stubProfileService) UploadFile(ctx context.Context, username, filename string, r io.Reader) error {
	if s.uploadFileFn == nil {
		return nil
	}
	return s.uploadFileFn(ctx, username, filename, r)
}

func (s *stubProfileService) ListFiles(ctx context.Context, username string) ([]string, error) {
	if s.listFilesFn == nil {
		return []string{}, nil
	}
	return s.listFilesFn(ctx, username)
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version   string
	buildInfo models.AppBuildInfo
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return m.buildInfo
}

const testCookieName = "token"

func testServerConfig() config.Server {
	return config.Server{
		CookieName:    testCookieName,
		MaxUploadSize: 1 << 20,
	}
}

// newTestHandlerWith builds a Handler over the given stubs; nil stubs are
// replaced with zero-value ones.
func newTestHandlerWith(auth *stubAuthService, profiles *stubProfileService) *Handler {
	if auth == nil {
		auth = &stubAuthService{}
	}
	if profiles == nil {
		profiles = &stubProfileService{}
	}
	return NewHandler(&service.Services{
		AuthService:    auth,
		ProfileService: profiles,
		AppInfoService: &mockAppInfoService{version: "test-version"},
	}, testServerConfig(), logger.Nop())
}

// ownerOf returns an auth stub for which token is the live session of username.
func ownerOf(token, username string) *stubAuthService {
	return &stubAuthService{
		resolveFn: func(_ context.Context, t string) (models.Profile, bool) {
			if t != token {
				return models.Profile{}, false
			}
			return models.Profile{Username: username}, true
		},
		isOwnerFn: func(_ context.Context, t, u string) (bool, error) {
			return t == token && u == username, nil
		},
	}
}
