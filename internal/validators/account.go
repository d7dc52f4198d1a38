package validators

import (
	"context"
	"path"
	"strings"

	"github.com/MKhiriev/go-profile-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUsername targets the account username. Usernames name filesystem
	// paths (files/<username>, avatars/<username>.<ext>), so the charset is
	// restricted.
	FieldUsername = "username"

	// FieldPassword targets the plain-text password.
	FieldPassword = "password"

	// FieldNonEmpty requires a profile update to carry at least one field.
	FieldNonEmpty = "non_empty"

	// FieldNames targets the first/last name length limits.
	FieldNames = "names"
)

const (
	maxUsernameLength = 64
	maxNameLength     = 128

	// bounds hashing work per request; every hasher accepts inputs this long
	maxPasswordLength = 72
)

// AccountValidator validates credentials, profile updates and upload file
// names.
type AccountValidator struct {
}

// NewAccountValidator returns an [AccountValidator] as a [Validator].
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.Credentials / *models.Credentials
//   - models.ProfileUpdate / *models.ProfileUpdate
//   - string (treated as an upload file name)
//
// Returns ErrUnsupportedType for anything else.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, *value, fields...)

	case string:
		return v.validateFileName(ctx, value)

	default:
		return ErrUnsupportedType
	}
}

// validateCredentials checks username and password by default.
func (v *AccountValidator) validateCredentials(_ context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if !IsValidUsername(creds.Username) {
				return ErrInvalidUsername
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrEmptyPassword
			}
			if len(creds.Password) > maxPasswordLength {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateProfileUpdate(_ context.Context, update models.ProfileUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNonEmpty, FieldNames}
	}

	for _, f := range fields {
		switch f {
		case FieldNonEmpty:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldNames:
			if update.FirstName != nil && len(*update.FirstName) > maxNameLength {
				return ErrNameTooLong
			}
			if update.LastName != nil && len(*update.LastName) > maxNameLength {
				return ErrNameTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateFileName accepts a bare file name only: no separators, no dot
// entries, no hidden files.
func (v *AccountValidator) validateFileName(_ context.Context, name string) error {
	if name == "" || name != path.Base(name) || strings.ContainsAny(name, `/\`) ||
		strings.HasPrefix(name, ".") {
		return ErrInvalidFileName
	}
	return nil
}

// IsValidUsername reports whether username is 1-64 characters of
// [A-Za-z0-9_.-] and is not a dot entry.
func IsValidUsername(username string) bool {
	if username == "" || len(username) > maxUsernameLength || username == "." || username == ".." {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '.', r == '-':
		default:
			return false
		}
	}
	return true
}
