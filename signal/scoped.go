package signal

// ScopedConnection owns a single Connection and disconnects it when closed or
// when a different Connection is assigned with Reset.
//
// The zero value holds no connection. A ScopedConnection must not be copied;
// pass it by pointer.
//
//	sc := signal.NewScopedConnection(sig.Connect(onChange))
//	defer sc.Close()
type ScopedConnection struct {
	noCopy noCopy

	conn Connection
}

// NewScopedConnection returns a ScopedConnection that owns c.
func NewScopedConnection(c Connection) *ScopedConnection {
	return &ScopedConnection{conn: c}
}

// Reset disconnects the owned Connection and takes ownership of c instead.
// Resetting to the Connection already owned does nothing.
func (sc *ScopedConnection) Reset(c Connection) {
	if sc.conn == c {
		return
	}
	sc.conn.Disconnect()
	sc.conn = c
}

// Release gives up ownership without disconnecting and returns the
// Connection that was owned.
func (sc *ScopedConnection) Release() Connection {
	c := sc.conn
	sc.conn = Connection{}
	return c
}

// Connection returns the owned Connection.
func (sc *ScopedConnection) Connection() Connection {
	return sc.conn
}

// Connected reports whether the owned Connection is connected.
func (sc *ScopedConnection) Connected() bool {
	return sc.conn.Connected()
}

// Disconnect disconnects the owned Connection.
func (sc *ScopedConnection) Disconnect() {
	sc.conn.Disconnect()
}

// Close disconnects the owned Connection. It always returns nil.
func (sc *ScopedConnection) Close() error {
	sc.conn.Disconnect()
	return nil
}
