package fieldbind

import "reflect"

// fieldState holds the per-control instance state behind an initialized
// field: the field-support object with the model value, the replaceable
// value comparer, and the read-only / required-indicator flags with their
// presentation appliers. Exactly one fieldState exists per claimed control,
// owned 1:1 by its mapper.
type fieldState[T any] struct {
	control any
	support *fieldSupport[T]

	// comparer overrides the default structural equality when non-nil.
	comparer func(a, b T) bool

	readOnly        bool
	requiredVisible bool
	readOnlyApplier func(bool)
	requiredApplier func(bool)
}

func newFieldState[T any](control any, defaultValue T, setPresentation func(T)) *fieldState[T] {
	st := &fieldState[T]{control: control}
	st.support = newFieldSupport(defaultValue, st.ValueEquals, setPresentation)

	// Default appliers mirror the flags into conventional channels on the
	// control's own surface when it has one.
	if sh, ok := control.(interface{ Surface() Surface }); ok {
		surface := sh.Surface()
		st.readOnlyApplier = func(v bool) { surface.SetChannel("readonly", v) }
		st.requiredApplier = func(v bool) { surface.SetChannel("required", v) }
	} else {
		st.readOnlyApplier = func(bool) {}
		st.requiredApplier = func(bool) {}
	}

	return st
}

// ValueEquals compares two value instances using the active comparer.
// Equality determines whether SetValue and SetModelValue update state and
// fire a change event.
func (st *fieldState[T]) ValueEquals(a, b T) bool {
	if st.comparer != nil {
		return st.comparer(a, b)
	}
	return reflect.DeepEqual(a, b)
}

// SetValueComparer replaces the equality logic, or reverts to the default
// structural comparison when cmp is nil.
func (st *fieldState[T]) SetValueComparer(cmp func(a, b T) bool) {
	st.comparer = cmp
}

func (st *fieldState[T]) SetModelValue(v T, fromClient bool) {
	st.support.SetModelValue(v, fromClient)
}

func (st *fieldState[T]) Value() T      { return st.support.Value() }
func (st *fieldState[T]) EmptyValue() T { return st.support.EmptyValue() }

func (st *fieldState[T]) ReadOnly() bool { return st.readOnly }

// SetReadOnly toggles the read-only flag, invoking the applier only on an
// actual change.
func (st *fieldState[T]) SetReadOnly(readOnly bool) {
	if st.readOnly == readOnly {
		return
	}
	st.readOnly = readOnly
	st.readOnlyApplier(readOnly)
}

// SetReadOnlyApplier replaces the callback that pushes the read-only flag
// into the presentation. If the flag is currently active, the old applier is
// first asked to retract its effect before the new one applies it, so the
// presentation never reflects two appliers at once.
func (st *fieldState[T]) SetReadOnlyApplier(applier func(bool)) {
	if applier == nil {
		panic("fieldbind: nil read-only applier")
	}
	if st.readOnly {
		st.readOnlyApplier(false)
	}
	st.readOnlyApplier = applier
	if st.readOnly {
		applier(true)
	}
}

func (st *fieldState[T]) RequiredIndicatorVisible() bool { return st.requiredVisible }

// SetRequiredIndicatorVisible toggles the required-indicator flag, invoking
// the applier only on an actual change.
func (st *fieldState[T]) SetRequiredIndicatorVisible(visible bool) {
	if st.requiredVisible == visible {
		return
	}
	st.requiredVisible = visible
	st.requiredApplier(visible)
}

// SetRequiredApplier replaces the required-indicator applier with the same
// retraction semantics as SetReadOnlyApplier.
func (st *fieldState[T]) SetRequiredApplier(applier func(bool)) {
	if applier == nil {
		panic("fieldbind: nil required applier")
	}
	if st.requiredVisible {
		st.requiredApplier(false)
	}
	st.requiredApplier = applier
	if st.requiredVisible {
		applier(true)
	}
}
