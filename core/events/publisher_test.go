package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subjects []string
	payloads []string
	err      error
	closed   bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, string(data))
	return nil
}

func (f *fakeConn) Close() { f.closed = true }

func TestNew_DisabledReturnsNoop(t *testing.T) {
	p, err := New(Config{}, nil)
	require.NoError(t, err)

	assert.IsType(t, Noop{}, p)
	assert.NoError(t, p.Publish(RunCompleted, map[string]int{"matched": 1}))
	p.Close()
}

func TestClient_Subject(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"With prefix", "reconciler", "reconciler.run.completed"},
		{"Without prefix", "", "run.completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(&fakeConn{}, tt.prefix, nil)
			assert.Equal(t, tt.want, c.Subject(RunCompleted))
		})
	}
}

func TestClient_Publish(t *testing.T) {
	fc := &fakeConn{}
	c := newClient(fc, "reconciler", nil)

	err := c.Publish(RunFailed, map[string]string{"run_id": "r1", "error": "boom"})
	require.NoError(t, err)

	require.Len(t, fc.subjects, 1)
	assert.Equal(t, "reconciler.run.failed", fc.subjects[0])
	assert.JSONEq(t, `{"run_id":"r1","error":"boom"}`, fc.payloads[0])

	c.Close()
	assert.True(t, fc.closed)
}

func TestClient_PublishErrors(t *testing.T) {
	t.Run("Marshal failure", func(t *testing.T) {
		fc := &fakeConn{}
		c := newClient(fc, "reconciler", nil)

		err := c.Publish(RunCompleted, make(chan int))
		assert.Error(t, err)
		assert.Empty(t, fc.subjects)
	})

	t.Run("Connection failure", func(t *testing.T) {
		connErr := errors.New("connection closed")
		c := newClient(&fakeConn{err: connErr}, "reconciler", nil)

		err := c.Publish(RunCompleted, map[string]int{})
		assert.ErrorIs(t, err, connErr)
	})
}
