package models

// DefaultAvatar is the avatar path assigned to freshly registered profiles.
const DefaultAvatar = "default"

// Profile is the public, mutable part of a user account.
// It is one-to-one with [Account] and shares its identity key.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Avatar    string `json:"avatar"`

	// FilesDir is the sink-relative directory holding the user's uploads.
	FilesDir string `json:"-"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}

// HasCustomAvatar reports whether the profile points to an uploaded avatar.
func (p Profile) HasCustomAvatar() bool {
	return p.Avatar != "" && p.Avatar != DefaultAvatar
}

// ProfileUpdate is a partial profile update. Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Avatar    *string
}

// IsEmpty reports whether the update carries no fields at all.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Avatar == nil
}

// Apply writes the supplied fields into p.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
}

// ProfileView is what the transport layer renders for a profile page.
type ProfileView struct {
	Profile

	// Files lists the names stored in the user's files directory.
	Files []string `json:"files"`

	// ShowOptions is true only for the owner of the profile.
	ShowOptions bool `json:"show_options"`
}
