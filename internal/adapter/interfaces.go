// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the profile server's HTTP API.
//
// [ServerAdapter] decouples the command-line client from the transport. The
// HTTP implementation ([NewHTTPServerAdapter]) carries the session token in
// the server's cookie and submits forms exactly as a browser would.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-profile-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to the profile server on behalf of one user.
type ServerAdapter interface {
	// SetToken stores the session token attached to subsequent requests.
	SetToken(token string)

	// Token returns the current session token, or "" if there is none.
	Token() string

	// Register creates an account and stores the issued session token.
	// Returns the path of the new profile.
	Register(ctx context.Context, creds models.Credentials) (string, error)

	// Login authenticates and stores the issued session token, superseding
	// any other session of the same user. Returns the profile path.
	Login(ctx context.Context, creds models.Credentials) (string, error)

	// Logout ends the current session and forgets the token.
	Logout(ctx context.Context) error

	// Profile fetches the public view of username. ShowOptions is true only
	// when the stored token belongs to username.
	Profile(ctx context.Context, username string) (models.ProfileView, error)

	// ChangePassword replaces the password of username.
	ChangePassword(ctx context.Context, username, password string) error

	// Rename sets the first and last name of username.
	Rename(ctx context.Context, username, firstName, lastName string) error

	// SetAvatar uploads a new profile picture.
	SetAvatar(ctx context.Context, username, filename string, content io.Reader) error

	// UploadFile stores a file in the user's directory.
	UploadFile(ctx context.Context, username, filename string, content io.Reader) error

	// ListFiles returns the file names stored for username.
	ListFiles(ctx context.Context, username string) ([]string, error)

	// DeleteAccount removes the account; confirmation must equal username.
	// The stored token is forgotten on success.
	DeleteAccount(ctx context.Context, username, confirmation string) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
