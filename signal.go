package sgview

import "sync"

// Signal is a change notification with explicit subscribe/unsubscribe.
//
// The zero Signal is ready to use. Handlers run synchronously on the
// goroutine that calls Emit, in connection order. A handler may disconnect
// itself or others while the signal is being emitted; the change takes
// effect for the next Emit.
type Signal struct {
	mu    sync.Mutex
	next  uint64
	slots []slot
}

type slot struct {
	id uint64
	fn func()
}

// Connection identifies one handler registration on a Signal.
// The zero Connection is not connected; disconnecting it is a no-op.
type Connection struct {
	sig *Signal
	id  uint64
}

// Connect registers fn and returns its connection.
// A nil fn is not registered and yields the zero Connection.
func (s *Signal) Connect(fn func()) Connection {
	if fn == nil {
		return Connection{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.slots = append(s.slots, slot{id: s.next, fn: fn})
	return Connection{sig: s, id: s.next}
}

// Emit calls every connected handler.
func (s *Signal) Emit() {
	s.mu.Lock()
	snapshot := make([]func(), len(s.slots))
	for i, sl := range s.slots {
		snapshot[i] = sl.fn
	}
	s.mu.Unlock()

	for _, fn := range snapshot {
		fn()
	}
}

// Len returns the number of connected handlers.
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Disconnect removes the handler. Safe to call more than once.
func (c Connection) Disconnect() {
	if c.sig == nil {
		return
	}
	s := c.sig
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sl := range s.slots {
		if sl.id == c.id {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return
		}
	}
}

// Connected reports whether the handler is still registered.
func (c Connection) Connected() bool {
	if c.sig == nil {
		return false
	}
	c.sig.mu.Lock()
	defer c.sig.mu.Unlock()
	for _, sl := range c.sig.slots {
		if sl.id == c.id {
			return true
		}
	}
	return false
}
