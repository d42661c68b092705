package signal

import "weak"

// disconnector is implemented by every Signal instantiation so a handle can
// reach its owner without knowing the slot type.
type disconnector interface {
	disconnect(h *handle)
}

// handle is the bookkeeping shared by a Signal entry and its Connections.
// owner is non-nil exactly while the entry is present in the owner's slots.
type handle struct {
	owner disconnector
}

// Connection identifies one slot registered on a Signal.
//
// Connections are small values and may be copied freely; every copy refers to
// the same subscription, so disconnecting through one copy is observed by all
// of them. The zero Connection is never connected. Connections are comparable.
type Connection struct {
	h weak.Pointer[handle]
}

func newConnection(h *handle) Connection {
	return Connection{h: weak.Make(h)}
}

// Disconnect detaches the slot from its Signal. It does nothing if the
// Connection is already disconnected, was never connected, or the Signal no
// longer exists. It is safe to call from inside the slot being disconnected.
func (c Connection) Disconnect() {
	h := c.h.Value()
	if h == nil || h.owner == nil {
		return
	}
	h.owner.disconnect(h)
}

// Connected reports whether the slot is still attached to its Signal.
func (c Connection) Connected() bool {
	h := c.h.Value()
	return h != nil && h.owner != nil
}
