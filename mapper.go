package fieldbind

// mapperBase carries the parts shared by every mapper kind: the field state
// it owns and the control it configures. Chainable configuration methods are
// declared on each concrete mapper so they return the concrete type.
type mapperBase[T any] struct {
	state   *fieldState[T]
	control any
}

func (m *mapperBase[T]) setModelValue(v T, fromClient bool) {
	m.state.SetModelValue(v, fromClient)
}

// ValueEquals compares two value instances using the mapper's active
// comparer. The same comparison gates change-event suppression.
func (m *mapperBase[T]) ValueEquals(a, b T) bool {
	return m.state.ValueEquals(a, b)
}

// EmptyValue returns the field's empty value.
func (m *mapperBase[T]) EmptyValue() T {
	return m.state.EmptyValue()
}

// ValueMapper is the minimal mapper: the model value is explicitly set and
// the presentation is updated through a callback provided at Init time.
type ValueMapper[T any] struct {
	mapperBase[T]
	setPresentation func(T)
}

func (m *ValueMapper[T]) setPresentationValue(v T) {
	m.setPresentation(v)
}

// SetModelValue updates the model value based on an updated presentation
// representation, firing a change event unless the value is equal to the
// current one. Calling it from inside the presentation callback makes the
// given value win without triggering the callback again.
func (m *ValueMapper[T]) SetModelValue(v T, fromClient bool) {
	m.setModelValue(v, fromClient)
}

// SetValueComparer replaces the equality logic used for change-event
// suppression, or reverts to the default when cmp is nil.
func (m *ValueMapper[T]) SetValueComparer(cmp func(a, b T) bool) *ValueMapper[T] {
	m.state.SetValueComparer(cmp)
	return m
}

// SetReadOnlyApplier replaces the callback that pushes the read-only flag
// into the presentation.
func (m *ValueMapper[T]) SetReadOnlyApplier(applier func(bool)) *ValueMapper[T] {
	m.state.SetReadOnlyApplier(applier)
	return m
}

// SetRequiredApplier replaces the callback that pushes the required
// indicator into the presentation.
func (m *ValueMapper[T]) SetRequiredApplier(applier func(bool)) *ValueMapper[T] {
	m.state.SetRequiredApplier(applier)
	return m
}
