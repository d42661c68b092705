package signal

// Public is a connect-only view of a Signal.
//
// A type that owns a Signal keeps it in an unexported field and hands out the
// Public view, so outside code can subscribe but cannot fire or clear it:
//
//	type Door struct {
//	    opened signal.Signal[string]
//	}
//
//	func (d *Door) Opened() signal.Public[string] { return d.opened.Public() }
//
// The zero Public is not bound to any Signal; connecting to it returns a
// Connection that is never connected.
type Public[T any] struct {
	s *Signal[T]
}

// Connect registers slot on the underlying Signal.
func (p Public[T]) Connect(slot Slot[T]) Connection {
	if p.s == nil {
		return Connection{}
	}
	return p.s.Connect(slot)
}
