package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-profile-keeper/internal/validators"
	"github.com/MKhiriev/go-profile-keeper/models"
)

// AuthValidationService rejects malformed input with ErrInvalidRequest before
// it reaches the stores.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewAccountValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if err := v.validator.Validate(ctx, creds); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return v.inner.Register(ctx, creds)
}

// Login only checks presence: a username that could never be registered
// simply fails authentication.
func (v *AuthValidationService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if creds.Username == "" || creds.Password == "" {
		return models.Session{}, ErrInvalidCredentials
	}
	return v.inner.Login(ctx, creds)
}

func (v *AuthValidationService) Logout(ctx context.Context, token string) error {
	return v.inner.Logout(ctx, token)
}

func (v *AuthValidationService) Resolve(ctx context.Context, token string) (models.Profile, bool) {
	return v.inner.Resolve(ctx, token)
}

func (v *AuthValidationService) IsOwner(ctx context.Context, token, username string) (bool, error) {
	if token == "" || username == "" {
		return false, nil
	}
	return v.inner.IsOwner(ctx, token, username)
}

func (v *AuthValidationService) UpdateProfile(ctx context.Context, username string, update models.ProfileUpdate) error {
	if err := v.validator.Validate(ctx, update); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return v.inner.UpdateProfile(ctx, username, update)
}

func (v *AuthValidationService) ChangePassword(ctx context.Context, username, newPassword string) error {
	creds := models.Credentials{Username: username, Password: newPassword}
	if err := v.validator.Validate(ctx, creds, validators.FieldPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return v.inner.ChangePassword(ctx, username, newPassword)
}

func (v *AuthValidationService) DeleteAccount(ctx context.Context, username, confirmation string) error {
	return v.inner.DeleteAccount(ctx, username, confirmation)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}
