// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the profile server.
//
// Each invocation runs one command against the server through
// [adapter.ServerAdapter]. The session token is kept in a file between
// invocations so that login, profile edits and logout can be separate runs.
package client
