package signal

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(int) {}

func TestSignal_NewIsEmpty(t *testing.T) {
	var s Signal[int]

	assert.True(t, s.Empty())
	assert.Equal(t, 0, s.Size())

	assert.True(t, New[string]().Empty())
}

func TestSignal_ConnectGrowsSize(t *testing.T) {
	var s Signal[int]

	s.Connect(noop)
	assert.False(t, s.Empty())
	assert.Equal(t, 1, s.Size())

	for range 16 {
		s.Connect(noop)
	}
	assert.Equal(t, 17, s.Size())
}

func TestSignal_ConnectNilPanics(t *testing.T) {
	var s Signal[int]

	assert.Panics(t, func() {
		s.Connect(nil)
	})
	assert.True(t, s.Empty())
}

func TestSignal_SizeTracksUnmatchedConnects(t *testing.T) {
	var s Signal[int]

	conns := make([]Connection, 0, 10)
	for range 10 {
		conns = append(conns, s.Connect(noop))
	}

	for i, c := range conns {
		c.Disconnect()
		assert.Equal(t, len(conns)-i-1, s.Size())
	}
	assert.True(t, s.Empty())
}

func TestSignal_InvokeMultipleTimes(t *testing.T) {
	var s Signal[int]
	calls := 0
	s.Connect(func(int) { calls++ })

	const invocations = 17
	for i := 0; i < invocations; i++ {
		s.Invoke(i)
	}

	assert.Equal(t, invocations, calls)
}

func TestSignal_InvokePassesArgument(t *testing.T) {
	var s Signal[int]
	got := 0
	c := s.Connect(func(v int) { got = v })
	require.True(t, c.Connected())

	s.Invoke(2)

	assert.Equal(t, 2, got)
}

func TestSignal_MethodValueIsCallable(t *testing.T) {
	var s Signal[string]
	var got []string
	s.Connect(func(v string) { got = append(got, v) })

	fire := s.Invoke
	fire("a")
	fire("b")

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSignal_ForwardToAnotherSignal(t *testing.T) {
	var upstream, downstream Signal[int]
	got := 0
	downstream.Connect(func(v int) { got = v })
	c := upstream.Connect(downstream.Invoke)

	upstream.Invoke(7)
	assert.Equal(t, 7, got)

	c.Disconnect()
	upstream.Invoke(8)
	assert.Equal(t, 7, got)
}

func TestSignal_DisconnectedSlotIsNotInvoked(t *testing.T) {
	var s Signal[int]
	called1, called2 := false, false
	c1 := s.Connect(func(int) { called1 = true })
	c2 := s.Connect(func(int) { called2 = true })

	c1.Disconnect()
	s.Invoke(0)

	assert.False(t, called1)
	assert.False(t, c1.Connected())
	assert.True(t, called2)
	assert.True(t, c2.Connected())
}

func TestSignal_ClearDisconnectsAll(t *testing.T) {
	var s Signal[int]
	calls := 0
	conns := []Connection{
		s.Connect(func(int) { calls++ }),
		s.Connect(func(int) { calls++ }),
		s.Connect(func(int) { calls++ }),
	}

	s.Clear()

	assert.Equal(t, 0, s.Size())
	for _, c := range conns {
		assert.False(t, c.Connected())
		c.Disconnect()
	}

	s.Invoke(1)
	assert.Equal(t, 0, calls)
}

func TestSignal_OrderIsRegistrationOrder(t *testing.T) {
	var s Signal[int]
	var order []int
	for i := 1; i <= 4; i++ {
		s.Connect(func(int) { order = append(order, i) })
	}

	s.Invoke(0)

	assert.Equal(t, []int{1, 2, 3, 4}, order)
	assert.Equal(t, 4, s.Size())
}

func TestSignal_OrderPreservedAfterDisconnects(t *testing.T) {
	var s Signal[int]
	var order []string

	c1 := s.Connect(func(int) { order = append(order, "c1") })
	s.Connect(func(int) { order = append(order, "c2") })
	s.Connect(func(int) { order = append(order, "c3") })
	c4 := s.Connect(func(int) { order = append(order, "c4") })
	s.Connect(func(int) { order = append(order, "c5") })

	c1.Disconnect()
	c4.Disconnect()
	s.Invoke(0)

	assert.Equal(t, []string{"c2", "c3", "c5"}, order)
	assert.Equal(t, 3, s.Size())
}

func TestSignal_SameFunctionTwice(t *testing.T) {
	var s Signal[int]
	calls := 0
	slot := func(int) { calls++ }
	s.Connect(slot)
	s.Connect(slot)

	s.Invoke(0)

	assert.Equal(t, 2, calls)
}

func TestSignal_ConnectDuringInvokeIsDeferred(t *testing.T) {
	var s Signal[int]
	invoked := false
	lateCalls := 0

	s.Connect(func(int) {
		if invoked {
			return
		}
		invoked = true
		s.Connect(func(int) { lateCalls++ })
	})
	require.Equal(t, 1, s.Size())

	s.Invoke(0)
	assert.True(t, invoked)
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, 0, lateCalls, "slot connected while firing must wait for the next pass")

	s.Invoke(0)
	assert.Equal(t, 1, lateCalls)
}

func TestSignal_DisconnectLaterSlotDuringInvoke(t *testing.T) {
	var s Signal[int]
	var c2 Connection
	s.Connect(func(int) { c2.Disconnect() })
	c2 = s.Connect(func(int) { t.Error("disconnected slot was invoked") })
	require.Equal(t, 2, s.Size())

	s.Invoke(0)

	assert.Equal(t, 1, s.Size())
}

func TestSignal_SelfDisconnectDuringInvoke(t *testing.T) {
	var s Signal[int]
	calls := map[string]int{}

	var a Connection
	a = s.Connect(func(int) {
		calls["a"]++
		a.Disconnect()
	})
	s.Connect(func(int) { calls["b"]++ })
	s.Connect(func(int) { calls["c"]++ })

	s.Invoke(0)
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, calls)
	assert.False(t, a.Connected())
	assert.Equal(t, 2, s.Size())

	s.Invoke(0)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 2}, calls)
}

func TestSignal_DisconnectEarlierSlotDuringInvoke(t *testing.T) {
	var s Signal[int]
	var order []string

	var c1 Connection
	c1 = s.Connect(func(int) { order = append(order, "c1") })
	s.Connect(func(int) {
		order = append(order, "c2")
		c1.Disconnect()
	})
	s.Connect(func(int) { order = append(order, "c3") })
	s.Connect(func(int) { order = append(order, "c4") })

	s.Invoke(0)

	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, order)
	assert.Equal(t, 3, s.Size())
}

func TestSignal_ConnectAndDisconnectDuringInvokeKeepsOrder(t *testing.T) {
	var s Signal[int]
	order := 0
	var seen []int

	var c1 Connection
	c1 = s.Connect(func(int) {
		order++
		seen = append(seen, order)
		assert.Equal(t, 1, order)
	})
	s.Connect(func(int) {
		order++
		assert.Equal(t, 2, order)
		s.Connect(func(int) { order++ })
	})
	s.Connect(func(int) {
		order++
		assert.Equal(t, 3, order)
		c1.Disconnect()
	})
	require.Equal(t, 3, s.Size())

	s.Invoke(0)

	assert.Equal(t, 3, order)
	assert.Equal(t, []int{1}, seen)
	assert.Equal(t, 3, s.Size())
}

func TestSignal_ClearDuringInvokeStopsPass(t *testing.T) {
	var s Signal[int]
	calls := 0
	s.Connect(func(int) {
		calls++
		s.Clear()
	})
	c := s.Connect(func(int) { t.Error("cleared slot was invoked") })

	s.Invoke(0)

	assert.Equal(t, 1, calls)
	assert.False(t, c.Connected())
	assert.True(t, s.Empty())
}

func TestSignal_RecursiveInvoke(t *testing.T) {
	var s Signal[int]
	invocations := 0
	s.Connect(func(int) {
		invocations++
		if invocations < 5 {
			s.Invoke(0)
		}
	})

	s.Invoke(0)

	assert.Equal(t, 5, invocations)
	assert.Equal(t, 1, s.Size())
}

func TestSignal_RecursiveInvokeWithDisconnect(t *testing.T) {
	var s Signal[int]
	var log []string

	var first Connection
	first = s.Connect(func(depth int) {
		log = append(log, "first")
		if depth == 0 {
			s.Invoke(1)
			return
		}
		first.Disconnect()
	})
	s.Connect(func(depth int) {
		if depth == 0 {
			log = append(log, "second")
		} else {
			log = append(log, "second-nested")
		}
	})

	s.Invoke(0)

	assert.Equal(t, []string{"first", "first", "second-nested", "second"}, log)
	assert.Equal(t, 1, s.Size())
}

func TestSignal_PanicPropagatesAndSignalStaysUsable(t *testing.T) {
	var s Signal[int]
	calls := 0
	c := s.Connect(func(v int) {
		if v == 0 {
			panic("boom")
		}
	})
	s.Connect(func(int) { calls++ })

	assert.PanicsWithValue(t, "boom", func() { s.Invoke(0) })
	assert.Equal(t, 0, calls)
	assert.Empty(t, s.passes)

	c.Disconnect()
	s.Invoke(0)
	assert.Equal(t, 1, calls)
}

func TestSignal_ArgumentsAreCopiedPerSlot(t *testing.T) {
	type payload struct {
		values [2]int
	}

	var s Signal[payload]
	product := 1
	s.Connect(func(p payload) {
		assert.Equal(t, 1, p.values[0])
		p.values[0] = 100
		product *= 2
	})
	s.Connect(func(p payload) {
		assert.Equal(t, 1, p.values[0])
		product *= 3
	})

	arg := payload{values: [2]int{1, 1}}
	s.Invoke(arg)

	assert.Equal(t, 6, product)
	assert.Equal(t, 1, arg.values[0])
}

func TestSignal_MoveFrom(t *testing.T) {
	var src, dst Signal[int]
	var got []string
	c1 := src.Connect(func(int) { got = append(got, "c1") })
	c2 := src.Connect(func(int) { got = append(got, "c2") })
	old := dst.Connect(func(int) { got = append(got, "old") })
	require.Equal(t, 2, src.Size())

	dst.MoveFrom(&src)

	assert.True(t, src.Empty())
	assert.Equal(t, 0, src.Size())
	assert.Equal(t, 2, dst.Size())
	assert.False(t, old.Connected())
	assert.True(t, c1.Connected())
	assert.True(t, c2.Connected())

	src.Invoke(0)
	assert.Empty(t, got)

	dst.Invoke(0)
	assert.Equal(t, []string{"c1", "c2"}, got)

	// Disconnecting after the move must act on the new owner.
	c1.Disconnect()
	assert.Equal(t, 1, dst.Size())
	assert.Equal(t, 0, src.Size())
}

func TestSignal_Move(t *testing.T) {
	s := New[int]()
	c := s.Connect(noop)
	s.Connect(noop)

	moved := s.Move()

	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 2, moved.Size())
	assert.True(t, c.Connected())

	// A signal reused after being moved from is independent.
	fresh := s.Connect(noop)
	assert.Equal(t, 1, s.Size())
	c.Disconnect()
	assert.Equal(t, 1, moved.Size())
	assert.True(t, fresh.Connected())
}

func TestSignal_MoveFromSelfIsNoop(t *testing.T) {
	var s Signal[int]
	c := s.Connect(noop)

	s.MoveFrom(&s)
	s.MoveFrom(nil)

	assert.Equal(t, 1, s.Size())
	assert.True(t, c.Connected())
}

func TestSignal_MoveDuringInvokeStopsSourcePass(t *testing.T) {
	var src, dst Signal[int]
	calls := 0
	moved := false
	src.Connect(func(int) {
		calls++
		if !moved {
			moved = true
			dst.MoveFrom(&src)
		}
	})
	src.Connect(func(int) { calls++ })

	src.Invoke(0)
	assert.Equal(t, 1, calls)

	dst.Invoke(0)
	assert.Equal(t, 3, calls)
}

func TestSignal_TraceLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Level:  hclog.Trace,
		Output: &buf,
	})

	s := New[int](WithLogger(logger), WithName("points"))
	c := s.Connect(noop)
	s.Invoke(1)
	c.Disconnect()

	out := buf.String()
	assert.Contains(t, out, "test.points")
	assert.Contains(t, out, "slot connected")
	assert.Contains(t, out, "invoking slots")
	assert.Contains(t, out, "slot disconnected")
}
