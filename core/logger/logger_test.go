package logger

import (
	"net/http/httptest"
	"testing"

	"record-reconciler/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Debug console", Config{Level: "debug", Format: "console"}, false},
		{"Info json", Config{Level: "info", Format: "json"}, false},
		{"Warn console", Config{Level: "warn", Format: "console"}, false},
		{"Empty level", Config{}, false},
		{"Invalid level", Config{Level: "loud"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_LevelApplied(t *testing.T) {
	l, err := New(&Config{Level: "warn", Format: "json"})
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(rayid.LocalsKey, "ray-123")
		WithRayID(base, c).Info("tagged")
		return nil
	})
	app.Get("/middleware", rayid.New(), func(c *fiber.Ctx) error {
		WithRayID(base, c).Info("assigned")
		return nil
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		WithRayID(base, c).Info("plain")
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	resp, err := app.Test(httptest.NewRequest("GET", "/middleware", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "ray-123", entries[0].ContextMap()["ray_id"])
	assert.Equal(t, resp.Header.Get(rayid.HeaderName), entries[1].ContextMap()["ray_id"])
	assert.NotContains(t, entries[2].ContextMap(), "ray_id")
}

func TestWithRun(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	WithRun(base, "run-1").Info("a")
	WithRun(base, "").Info("b")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].ContextMap()["run_id"])
	assert.Empty(t, entries[1].ContextMap())
}
