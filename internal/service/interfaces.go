package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-profile-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=AuthServiceWrapper

// AuthService orchestrates the credential, profile and token stores and the
// session cache. Session states per username:
// Anonymous → Authenticated → Anonymous (logout), or Authenticated → Deleted.
type AuthService interface {
	// Register creates the account, its profile and files directory, then
	// issues a session. Partial failures are rolled back.
	Register(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Login authenticates and issues a new token, superseding the previous one.
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Logout revokes the session behind token. Unknown tokens are a no-op.
	Logout(ctx context.Context, token string) error

	// Resolve returns the cached profile snapshot for token.
	Resolve(ctx context.Context, token string) (models.Profile, bool)

	// IsOwner reports whether token is the live, current session of username.
	IsOwner(ctx context.Context, token, username string) (bool, error)

	// UpdateProfile writes the supplied fields and mirrors them into every
	// live session of username.
	UpdateProfile(ctx context.Context, username string, update models.ProfileUpdate) error

	// ChangePassword re-hashes the password of username.
	ChangePassword(ctx context.Context, username, newPassword string) error

	// DeleteAccount removes account, profile, token, sessions and files.
	// confirmation must equal username; otherwise nothing is touched.
	DeleteAccount(ctx context.Context, username, confirmation string) error
}

// ProfileService serves profile pages, avatars and user uploads.
type ProfileService interface {
	// View renders the profile of username as seen by the holder of token.
	View(ctx context.Context, token, username string) (models.ProfileView, error)

	// SetAvatar stores a new avatar for username and returns its path.
	SetAvatar(ctx context.Context, username, filename string, r io.Reader) (string, error)

	// UploadFile stores r as filename in the files directory of username.
	UploadFile(ctx context.Context, username, filename string, r io.Reader) error

	// ListFiles lists the files directory of username.
	ListFiles(ctx context.Context, username string) ([]string, error)
}

// AppInfoService exposes version and build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// TokenGenerator issues opaque session tokens.
type TokenGenerator interface {
	Generate() (string, error)
}
