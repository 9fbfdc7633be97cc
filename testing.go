package fieldbind

import "reflect"

// StubSurface is an in-memory Surface for testing controls and mappers
// without a host UI framework. Server-side writes notify listeners with
// fromClient=false; the Client* methods simulate updates arriving from the
// client side.
type StubSurface struct {
	channels  map[string]any
	listeners map[string][]*surfaceListener
	syncs     map[string]string
	nextID    int
}

type surfaceListener struct {
	id int
	fn func(fromClient bool)
}

// NewStubSurface creates an empty stub surface.
func NewStubSurface() *StubSurface {
	return &StubSurface{
		channels:  make(map[string]any),
		listeners: make(map[string][]*surfaceListener),
		syncs:     make(map[string]string),
	}
}

// Channel returns the current value of the named channel.
func (s *StubSurface) Channel(name string) (any, bool) {
	v, ok := s.channels[name]
	return v, ok
}

// SetChannel writes the named channel and notifies listeners as a
// server-side change. Writing an equal value is a no-op.
func (s *StubSurface) SetChannel(name string, value any) {
	s.write(name, value, false)
}

// RemoveChannel clears the named channel, notifying listeners if it held a
// value.
func (s *StubSurface) RemoveChannel(name string) {
	s.remove(name, false)
}

// OnChannelChange subscribes to changes of the named channel.
func (s *StubSurface) OnChannelChange(name string, listener func(fromClient bool)) (remove func()) {
	s.nextID++
	entry := &surfaceListener{id: s.nextID, fn: listener}
	s.listeners[name] = append(s.listeners[name], entry)
	return func() {
		current := s.listeners[name]
		for i, e := range current {
			if e.id == entry.id {
				s.listeners[name] = append(current[:i], current[i+1:]...)
				return
			}
		}
	}
}

// SyncChannel records a synchronization event for the named channel.
func (s *StubSurface) SyncChannel(name, event string) {
	s.syncs[name] = event
}

// UnsyncChannel retracts a synchronization event for the named channel.
func (s *StubSurface) UnsyncChannel(name, event string) {
	if s.syncs[name] == event {
		delete(s.syncs, name)
	}
}

// SyncEventFor returns the recorded synchronization event for a channel, or
// the empty string.
func (s *StubSurface) SyncEventFor(name string) string {
	return s.syncs[name]
}

// ClientSetChannel simulates a channel update originating from the client.
func (s *StubSurface) ClientSetChannel(name string, value any) {
	s.write(name, value, true)
}

// ClientRemoveChannel simulates a channel removal originating from the
// client.
func (s *StubSurface) ClientRemoveChannel(name string) {
	s.remove(name, true)
}

func (s *StubSurface) write(name string, value any, fromClient bool) {
	if existing, ok := s.channels[name]; ok && reflect.DeepEqual(existing, value) {
		return
	}
	s.channels[name] = value
	s.notify(name, fromClient)
}

func (s *StubSurface) remove(name string, fromClient bool) {
	if _, ok := s.channels[name]; !ok {
		return
	}
	delete(s.channels, name)
	s.notify(name, fromClient)
}

func (s *StubSurface) notify(name string, fromClient bool) {
	for _, entry := range append([]*surfaceListener{}, s.listeners[name]...) {
		entry.fn(fromClient)
	}
}

// StubControl is a minimal host control for tests: a Field[T] with a stub
// surface and attach simulation. It satisfies Host[T], SurfaceHost[T],
// Attacher and ValueHolder[T].
type StubControl[T any] struct {
	Field[T]
	surface  *StubSurface
	attached []func()
}

// NewStubControl creates an unclaimed stub control. Tests pass it to an Init
// function to claim it.
func NewStubControl[T any]() *StubControl[T] {
	return &StubControl[T]{surface: NewStubSurface()}
}

// Surface returns the control's stub surface.
func (c *StubControl[T]) Surface() Surface {
	return c.surface
}

// Stub returns the surface with its concrete type for client simulation.
func (c *StubControl[T]) Stub() *StubSurface {
	return c.surface
}

// OnAttach registers an attach listener.
func (c *StubControl[T]) OnAttach(fn func()) (remove func()) {
	c.attached = append(c.attached, fn)
	i := len(c.attached) - 1
	return func() { c.attached[i] = func() {} }
}

// Attach simulates the control being attached to a live presentation tree.
func (c *StubControl[T]) Attach() {
	for _, fn := range c.attached {
		fn()
	}
}

// ChangeRecorder collects value-change events for assertions.
type ChangeRecorder[T any] struct {
	Events []ValueChangeEvent[T]
}

// Listener returns a ValueChangeListener that appends to the recorder.
func (r *ChangeRecorder[T]) Listener() ValueChangeListener[T] {
	return func(e ValueChangeEvent[T]) {
		r.Events = append(r.Events, e)
	}
}

// Count returns the number of recorded events.
func (r *ChangeRecorder[T]) Count() int {
	return len(r.Events)
}

// Last returns the most recent event; it panics when none was recorded.
func (r *ChangeRecorder[T]) Last() ValueChangeEvent[T] {
	return r.Events[len(r.Events)-1]
}
