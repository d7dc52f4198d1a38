// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrUnknownMode is returned when the login form carries a mode other
	// than "login" or "register".
	ErrUnknownMode = errors.New("unknown login mode")

	// ErrUnknownAction is returned when a profile form carries an unknown
	// action.
	ErrUnknownAction = errors.New("unknown profile action")

	// ErrMissingFile is returned when a multipart upload has no file part.
	ErrMissingFile = errors.New("no file in request")
)
