package models

// Session is the result of a successful register or login: the opaque token
// the client must present, plus a snapshot of the profile it belongs to.
type Session struct {
	Token   string  `json:"-"`
	Profile Profile `json:"profile"`
}
