package models

// RedirectResponse tells the client where to go after a successful action.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// ErrorResponse carries a human-readable failure message.
type ErrorResponse struct {
	ErrorMessage string `json:"error_message"`
}

// FilesResponse lists the files stored for a user.
type FilesResponse struct {
	Username string   `json:"username"`
	Files    []string `json:"files"`
}
