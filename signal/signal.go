package signal

import (
	"slices"

	"github.com/hashicorp/go-hclog"
)

// Slot is a callback registered on a Signal.
type Slot[T any] func(T)

// Connector is implemented by anything slots can be connected to: a *Signal
// and its Public view.
type Connector[T any] interface {
	Connect(slot Slot[T]) Connection
}

type entry[T any] struct {
	h    *handle
	slot Slot[T]
}

// pass is the cursor of one in-flight Invoke. next is the index of the next
// entry to call, end the exclusive bound fixed when the pass started.
type pass struct {
	next int
	end  int
}

// Signal is an ordered list of slots that are called synchronously by Invoke.
//
// The zero value is an empty Signal ready to use. A Signal must not be copied
// after first use; use MoveFrom or Move to transfer its slots.
type Signal[T any] struct {
	noCopy noCopy

	entries []entry[T]
	passes  []pass
	logger  hclog.Logger
}

// New creates an empty Signal.
func New[T any](opts ...Option) *Signal[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &Signal[T]{}
	if o.logger != nil {
		s.logger = o.logger
		if o.name != "" {
			s.logger = o.logger.Named(o.name)
		}
	}
	return s
}

// Connect registers slot and returns the Connection identifying it. Slots are
// called in the order they were connected. Connecting the same function twice
// registers it twice.
//
// Connect panics if slot is nil.
func (s *Signal[T]) Connect(slot Slot[T]) Connection {
	if slot == nil {
		panic("signal: nil slot")
	}

	h := &handle{owner: s}
	s.entries = append(s.entries, entry[T]{h: h, slot: slot})
	s.log().Trace("slot connected", "slots", len(s.entries))

	return newConnection(h)
}

// Invoke calls every connected slot with arg, in registration order.
//
// Only slots connected when Invoke starts are called. Slots disconnected by
// an earlier slot in the same pass are skipped. Invoke may be called
// recursively from a slot; each nested call is a pass of its own. A panic in
// a slot propagates to the caller and the remaining slots are not called.
//
// The method value s.Invoke is itself a Slot, so one Signal can be forwarded
// to another.
func (s *Signal[T]) Invoke(arg T) {
	depth := len(s.passes)
	s.passes = append(s.passes, pass{end: len(s.entries)})
	defer func() {
		s.passes = s.passes[:depth]
	}()

	if l := s.log(); l.IsTrace() {
		l.Trace("invoking slots", "slots", len(s.entries), "depth", depth)
	}

	for s.passes[depth].next < s.passes[depth].end {
		e := s.entries[s.passes[depth].next]
		s.passes[depth].next++
		e.slot(arg)
	}
}

// Clear disconnects every slot. Connections obtained earlier report that
// they are disconnected. If called while the signal is firing, no further
// slots are called in the current pass.
func (s *Signal[T]) Clear() {
	entries := s.entries
	s.entries = nil
	s.stopPasses()

	for _, e := range entries {
		e.h.owner = nil
	}
	clear(entries)

	if len(entries) > 0 {
		s.log().Trace("slots cleared", "slots", len(entries))
	}
}

// Size returns the number of connected slots.
func (s *Signal[T]) Size() int {
	return len(s.entries)
}

// Empty reports whether no slots are connected.
func (s *Signal[T]) Empty() bool {
	return len(s.entries) == 0
}

// MoveFrom disconnects the slots of s and takes over all slots of src,
// leaving src empty. Connections obtained from src stay connected and now
// refer to s.
func (s *Signal[T]) MoveFrom(src *Signal[T]) {
	if src == nil || src == s {
		return
	}

	s.Clear()
	s.entries, src.entries = src.entries, nil
	src.stopPasses()

	for _, e := range s.entries {
		e.h.owner = s
	}

	s.log().Trace("slots moved", "slots", len(s.entries))
}

// Move returns a new Signal holding all slots of s, leaving s empty.
func (s *Signal[T]) Move() *Signal[T] {
	dst := &Signal[T]{logger: s.logger}
	dst.MoveFrom(s)
	return dst
}

// Public returns a view of s that can only connect slots.
func (s *Signal[T]) Public() Public[T] {
	return Public[T]{s: s}
}

// disconnect removes the entry owning h. Removal keeps the order of the
// remaining entries and moves the cursors of in-flight passes so no entry is
// skipped or visited twice.
func (s *Signal[T]) disconnect(h *handle) {
	i := slices.IndexFunc(s.entries, func(e entry[T]) bool {
		return e.h == h
	})
	if i < 0 {
		return
	}

	h.owner = nil
	s.entries = slices.Delete(s.entries, i, i+1)

	for j := range s.passes {
		p := &s.passes[j]
		if i < p.next {
			p.next--
		}
		if i < p.end {
			p.end--
		}
	}

	s.log().Trace("slot disconnected", "slots", len(s.entries))
}

// stopPasses ends every in-flight Invoke on s after its current slot returns.
func (s *Signal[T]) stopPasses() {
	for j := range s.passes {
		s.passes[j] = pass{}
	}
}

func (s *Signal[T]) log() hclog.Logger {
	if s.logger == nil {
		return nullLogger
	}
	return s.logger
}

// noCopy may be embedded into structs which must not be copied after first
// use. See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
