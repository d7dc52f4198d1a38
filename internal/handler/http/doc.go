// Package http implements the HTTP transport layer of the profile server.
//
// It exposes route wiring, form handlers and middleware. Cross-cutting
// concerns such as session cookie extraction, ownership checks, request
// tracing, access logging and response compression are handled in this
// package before requests are delegated to the service layer.
package http
