package server_test

import (
	"testing"
	"time"

	"record-reconciler/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Address())
}

func TestConfig_Timeouts(t *testing.T) {
	tests := []struct {
		name         string
		cfg          server.Config
		wantRead     time.Duration
		wantShutdown time.Duration
	}{
		{"Configured", server.Config{ReadTimeoutSeconds: 30, ShutdownTimeoutSeconds: 10}, 30 * time.Second, 10 * time.Second},
		{"Zero", server.Config{}, 0, time.Second},
		{"Negative shutdown", server.Config{ShutdownTimeoutSeconds: -1}, 0, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantRead, tt.cfg.ReadTimeout())
			assert.Equal(t, tt.wantShutdown, tt.cfg.ShutdownTimeout())
		})
	}
}
