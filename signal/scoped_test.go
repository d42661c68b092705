package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopedConnection_CloseDisconnects(t *testing.T) {
	var s Signal[int]
	other := s.Connect(noop)

	func() {
		sc := NewScopedConnection(s.Connect(noop))
		defer sc.Close()

		require.True(t, sc.Connected())
		require.Equal(t, 2, s.Size())
	}()

	assert.Equal(t, 1, s.Size())
	assert.True(t, other.Connected())
}

func TestScopedConnection_ReleaseKeepsConnection(t *testing.T) {
	var s Signal[int]
	invoked := false
	sc := NewScopedConnection(s.Connect(func(int) { invoked = true }))

	released := sc.Release()
	sc.Disconnect()
	require.NoError(t, sc.Close())

	assert.True(t, released.Connected())
	assert.False(t, sc.Connected())
	assert.Equal(t, Connection{}, sc.Connection())

	s.Invoke(1)
	assert.True(t, invoked)
}

func TestScopedConnection_ResetDisconnectsPrevious(t *testing.T) {
	var s Signal[int]
	first := s.Connect(noop)
	second := s.Connect(noop)

	sc := NewScopedConnection(first)
	sc.Reset(second)

	assert.False(t, first.Connected())
	assert.True(t, second.Connected())
	assert.Equal(t, second, sc.Connection())

	sc.Reset(Connection{})
	assert.False(t, second.Connected())
	assert.Equal(t, 0, s.Size())
}

func TestScopedConnection_ResetToSameConnection(t *testing.T) {
	var s Signal[int]
	c := s.Connect(noop)
	sc := NewScopedConnection(c)

	sc.Reset(c)

	assert.True(t, c.Connected())
	assert.Equal(t, c, sc.Connection())
}

func TestScopedConnection_DisconnectForwards(t *testing.T) {
	var s Signal[int]
	invoked := false
	var sc ScopedConnection
	sc.Reset(s.Connect(func(int) { invoked = true }))
	s.Connect(noop)

	sc.Disconnect()
	s.Invoke(1)

	assert.False(t, invoked)
	assert.False(t, sc.Connected())
	assert.Equal(t, 1, s.Size())
}

func TestScopedConnection_CloseAfterSignalCleared(t *testing.T) {
	var s Signal[int]
	sc := NewScopedConnection(s.Connect(noop))

	s.Clear()

	assert.False(t, sc.Connected())
	assert.NoError(t, sc.Close())
	assert.NoError(t, sc.Close())
}

func TestScopedConnection_SelfCloseInsideSlot(t *testing.T) {
	var s Signal[int]
	calls := 0
	sc := &ScopedConnection{}
	sc.Reset(s.Connect(func(int) {
		calls++
		sc.Close()
	}))
	s.Connect(func(int) { calls++ })

	s.Invoke(0)
	s.Invoke(0)

	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, s.Size())
}
