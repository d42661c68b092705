// Package signal provides typed, synchronous signals and slots.
//
// A [Signal] holds an ordered list of callbacks ([Slot]). Calling [Signal.Connect]
// registers a slot and returns a [Connection], a small comparable handle that can
// later be used to check whether the slot is still attached or to detach it.
// [Signal.Invoke] calls every attached slot, in registration order, on the
// caller's goroutine.
//
// # Main Types
//
//   - [Signal]: the event source; owns its slots
//   - [Connection]: copyable handle for one subscription
//   - [ScopedConnection]: owns one Connection and disconnects it on Close
//   - [ScopedConnectionGroup]: owns many Connections and disconnects them on Close
//   - [Public]: connect-only view of a Signal for code outside the owning type
//
// # Reentrancy
//
// Slots may connect, disconnect, clear or re-invoke the Signal that is calling
// them. A slot connected while a signal is firing is first called on the next
// Invoke. A slot disconnected while a signal is firing is not called again,
// and no other slot is skipped or called twice because of the removal.
//
// # Lifetime
//
// A Connection only weakly references the bookkeeping it shares with its
// Signal, so holding Connections never keeps a Signal alive. Once the Signal
// is cleared, or has been garbage collected, every Connection reports
// Connected() == false and Disconnect is a no-op.
//
// # Thread Safety
//
// None of the types in this package are safe for concurrent use. Callers that
// fire or subscribe from several goroutines must serialize access themselves.
//
// # Basic Usage
//
//	var scored signal.Signal[int]
//
//	conn := scored.Connect(func(points int) {
//	    fmt.Println("points:", points)
//	})
//	scored.Invoke(3)
//
//	conn.Disconnect()
//	scored.Invoke(4) // nobody listening
package signal
