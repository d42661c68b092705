package signal

import "slices"

// ScopedConnectionGroup owns any number of Connections and disconnects all of
// them on Clear or Close.
//
// The zero value is an empty group ready to use. A ScopedConnectionGroup must
// not be copied; pass it by pointer.
type ScopedConnectionGroup struct {
	noCopy noCopy

	conns []Connection
}

// NewScopedConnectionGroup returns a group owning conns.
func NewScopedConnectionGroup(conns ...Connection) *ScopedConnectionGroup {
	g := &ScopedConnectionGroup{}
	g.Add(conns...)
	return g
}

// Add takes ownership of one or more Connections.
func (g *ScopedConnectionGroup) Add(conns ...Connection) {
	g.conns = append(g.conns, conns...)
}

// Clear disconnects every owned Connection and empties the group.
func (g *ScopedConnectionGroup) Clear() {
	conns := g.conns
	g.conns = nil
	for _, c := range conns {
		c.Disconnect()
	}
}

// CleanUp drops the Connections that are already disconnected, whether they
// were disconnected directly or their Signal was cleared or collected.
// Connections that are still connected stay in the group untouched; CleanUp
// never disconnects anything.
func (g *ScopedConnectionGroup) CleanUp() {
	g.conns = slices.DeleteFunc(g.conns, func(c Connection) bool {
		return !c.Connected()
	})
}

// Size returns the number of owned Connections, connected or not.
func (g *ScopedConnectionGroup) Size() int {
	return len(g.conns)
}

// Close disconnects every owned Connection and empties the group. It always
// returns nil.
func (g *ScopedConnectionGroup) Close() error {
	g.Clear()
	return nil
}
