package loader

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &stubFeature{name: "reconcile", enabled: true}
	disabled := &stubFeature{name: "other", enabled: false}

	m := NewManager(nil)
	m.Register(enabled)
	m.Register(disabled)

	assert.NoError(t, m.LoadAll(fiber.New()))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	failing := &stubFeature{name: "broken", enabled: true, err: assert.AnError}
	after := &stubFeature{name: "after", enabled: true}

	m := NewManager(nil)
	m.Register(failing)
	m.Register(after)

	err := m.LoadAll(fiber.New())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "broken")
	assert.False(t, after.loaded)
}
