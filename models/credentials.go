package models

// Credentials is the username/password pair submitted on register and login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
