// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// profile server handlers and middleware.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies. Keeping them in one place ensures consistent wording
// throughout the API; internal error details never reach the client.
package app

const (
	// MsgInvalidCredentials is returned when the username/password pair does
	// not match any account.
	MsgInvalidCredentials = "incorrect username or password"

	// MsgUsernameAlreadyExists is returned when a registration attempt is
	// rejected because the username is taken.
	MsgUsernameAlreadyExists = "username already exists"

	// MsgInvalidRequest is returned for malformed forms, unknown modes or
	// actions, bad confirmations and mutations without a session.
	MsgInvalidRequest = "invalid request"

	// MsgProfileDoesNotExist is returned when the requested profile is absent.
	MsgProfileDoesNotExist = "profile does not exist"

	// MsgPleaseTryAgain is returned when a backing store is unreachable or
	// anything unexpected happens.
	MsgPleaseTryAgain = "please try again"

	// MsgAccessDenied is returned when a live session tries to change
	// somebody else's profile.
	MsgAccessDenied = "access denied"

	// MsgFileTooLarge is returned when an upload exceeds the configured limit.
	MsgFileTooLarge = "file is too large"
)
