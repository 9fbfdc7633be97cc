package fieldbind

// ValueChangeEvent describes a model value transition on a field.
//
// FromClient reports whether the new value originated from the client side
// of the presentation layer (a user edit) as opposed to a server-side
// SetValue call.
type ValueChangeEvent[T any] struct {
	Old        T
	New        T
	FromClient bool
}

// ValueChangeListener is notified when a field's model value changes.
// Listeners fire in registration order, synchronously with the change.
type ValueChangeListener[T any] func(ValueChangeEvent[T])
