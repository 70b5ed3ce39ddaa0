package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeoutSeconds bounds reading a request. 0 disables it.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"30"`
	// ShutdownTimeoutSeconds bounds the graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}

// ReadTimeout returns the request read timeout.
func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown timeout, at least one second.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
