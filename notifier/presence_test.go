package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	writes []interface{}
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.writes = append(f.writes, v)
	return nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	conn := &fakeConn{}

	registry.Register(7, conn)

	got, ok := registry.Get(7)
	assert.True(t, ok)
	assert.Same(t, conn, got.(*fakeConn))
	assert.Equal(t, 1, registry.Count())

	_, ok = registry.Get(8)
	assert.False(t, ok)
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	registry := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}

	registry.Register(7, first)
	registry.Register(7, second)

	got, ok := registry.Get(7)
	assert.True(t, ok)
	assert.Same(t, second, got.(*fakeConn))
	assert.Equal(t, 1, registry.Count())
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry()
	conn := &fakeConn{}

	registry.Register(7, conn)
	registry.Unregister(7, conn)

	_, ok := registry.Get(7)
	assert.False(t, ok)
}

func TestRegistryUnregisterIgnoresStaleHandle(t *testing.T) {
	registry := NewRegistry()
	stale := &fakeConn{}
	current := &fakeConn{}

	registry.Register(7, stale)
	registry.Register(7, current)

	// The stale connection closing must not evict the reconnect
	registry.Unregister(7, stale)

	got, ok := registry.Get(7)
	assert.True(t, ok)
	assert.Same(t, current, got.(*fakeConn))
}
