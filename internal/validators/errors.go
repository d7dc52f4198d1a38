package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername  = errors.New("invalid username")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrNameTooLong      = errors.New("name is too long")
	ErrInvalidFileName  = errors.New("invalid file name")
)
