package models

// Account holds the login credentials of a user.
// The plain-text password never appears here; only the salted hash does.
type Account struct {
	// ID is the surrogate key profiles reference.
	ID int64 `json:"-"`

	// Username is unique and immutable once created.
	Username string `json:"username"`

	// PasswordHash is H(salt || password) encoded by the configured hasher.
	PasswordHash string `json:"-"`

	// Salt is generated once at creation and never rotated.
	Salt string `json:"-"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}
