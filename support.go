package fieldbind

import "reflect"

// fieldSupport is the generic field-support primitive underneath every
// mapper: it stores the model value and the empty value, gates updates on
// value equality, and dispatches change events. It also owns the re-entrancy
// fence between model updates and presentation pushes.
//
// The equality callback is provided by the owning state so that a comparer
// replaced at runtime takes effect here immediately.
type fieldSupport[T any] struct {
	value      T
	emptyValue T

	equals          func(a, b T) bool
	setPresentation func(T)

	listeners  []*listenerEntry[T]
	nextListID int

	// Re-entrancy fence: while a presentation push is in flight, model
	// updates are buffered instead of recursing. The buffered value becomes
	// the model value once the push returns and no second push happens.
	pushing           bool
	pendingValue      T
	pendingFromClient bool
	pendingSet        bool
}

type listenerEntry[T any] struct {
	id int
	fn ValueChangeListener[T]
}

func newFieldSupport[T any](emptyValue T, equals func(a, b T) bool, setPresentation func(T)) *fieldSupport[T] {
	return &fieldSupport[T]{
		value:           emptyValue,
		emptyValue:      emptyValue,
		equals:          equals,
		setPresentation: setPresentation,
	}
}

// Value returns the current model value.
func (s *fieldSupport[T]) Value() T {
	return s.value
}

// EmptyValue returns the designated "no value" sentinel for this field.
func (s *fieldSupport[T]) EmptyValue() T {
	return s.emptyValue
}

// SetValue sets the model value from the server side, pushing the new value
// into the presentation layer unless suppressed by equality.
func (s *fieldSupport[T]) SetValue(v T) {
	s.set(v, false, false)
}

// SetModelValue sets the model value based on an updated presentation
// representation. No presentation push happens for it. When called from
// inside an ongoing presentation push, the value is buffered and wins over
// the value that triggered the push.
func (s *fieldSupport[T]) SetModelValue(v T, fromClient bool) {
	if s.pushing {
		s.pendingValue = v
		s.pendingFromClient = fromClient
		s.pendingSet = true
		return
	}
	s.set(v, true, fromClient)
}

func (s *fieldSupport[T]) set(newValue T, fromPresentation, fromClient bool) {
	if s.equals(newValue, s.value) {
		return
	}

	old := s.value
	s.value = newValue

	if !fromPresentation {
		s.pushing = true
		s.pendingSet = false
		func() {
			// The push may panic (e.g. a rejected nil value); the fence must
			// not stay locked.
			defer func() { s.pushing = false }()
			s.setPresentation(newValue)
		}()

		if s.pendingSet {
			s.value = s.pendingValue
			fromClient = s.pendingFromClient
			s.pendingSet = false
		}
	}

	if s.equals(old, s.value) {
		// A buffered update restored the previous value; nothing changed.
		return
	}

	event := ValueChangeEvent[T]{Old: old, New: s.value, FromClient: fromClient}
	for _, entry := range append([]*listenerEntry[T]{}, s.listeners...) {
		entry.fn(event)
	}
}

// AddValueChangeListener registers a listener and returns its removal func.
func (s *fieldSupport[T]) AddValueChangeListener(fn ValueChangeListener[T]) func() {
	s.nextListID++
	entry := &listenerEntry[T]{id: s.nextListID, fn: fn}
	s.listeners = append(s.listeners, entry)
	return func() {
		for i, e := range s.listeners {
			if e.id == entry.id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// nilValue reports whether v is nil for the nil-able kinds. Value kinds are
// never nil.
func nilValue[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
