package signal

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnection_ZeroValueIsInert(t *testing.T) {
	var c Connection

	assert.False(t, c.Connected())
	assert.NotPanics(t, c.Disconnect)
	assert.Equal(t, Connection{}, c)
}

func TestConnection_AssignedCopyObservesDisconnect(t *testing.T) {
	var s Signal[int]

	c := s.Connect(noop)
	require.True(t, c.Connected())

	var copied Connection
	assert.False(t, copied.Connected())

	copied = c
	assert.True(t, copied.Connected())
	copied.Disconnect()

	assert.False(t, c.Connected())
	assert.False(t, copied.Connected())
	assert.Equal(t, 0, s.Size())
}

func TestConnection_DisconnectIsIdempotent(t *testing.T) {
	var s Signal[int]
	c1 := s.Connect(noop)
	s.Connect(noop)
	copied := c1

	c1.Disconnect()
	require.Equal(t, 1, s.Size())

	c1.Disconnect()
	copied.Disconnect()

	assert.Equal(t, 1, s.Size())
	assert.False(t, copied.Connected())
}

func TestConnection_Equality(t *testing.T) {
	var s Signal[int]
	c1 := s.Connect(noop)
	c2 := s.Connect(noop)
	copied := c1

	assert.True(t, c1 == copied)
	assert.False(t, c1 == c2)
}

func TestConnection_DisconnectedAfterClear(t *testing.T) {
	s := New[int]()
	c := s.Connect(noop)

	s.Clear()

	assert.False(t, c.Connected())
	c.Disconnect()
	assert.Equal(t, 0, s.Size())
}

func TestConnection_OutlivesCollectedSignal(t *testing.T) {
	c := connectToDroppedSignal()

	runtime.GC()

	assert.False(t, c.Connected())
	assert.NotPanics(t, c.Disconnect)
}

//go:noinline
func connectToDroppedSignal() Connection {
	s := New[int]()
	return s.Connect(noop)
}
