// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from this configuration:
// the listen port, the API key protecting every non-public route, and the
// read and shutdown timeouts.
package server
