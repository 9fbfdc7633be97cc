package fieldbind

import "fmt"

// BindingSettings is a set of flags applied to one composite binding.
type BindingSettings uint8

const (
	// Optional marks a binding whose emptiness never blocks aggregation:
	// it contributes no required-checker to the composite value.
	Optional BindingSettings = 1 << iota

	// AcceptsNil passes a nil model value through to the binding's value
	// extractor instead of clearing the bound target.
	AcceptsNil
)

// Has reports whether the flag is part of the settings.
func (s BindingSettings) Has(flag BindingSettings) bool {
	return s&flag != 0
}

// flagTarget is the fan-out side of a bound sub-control.
type flagTarget interface {
	SetReadOnly(bool)
	SetRequiredIndicatorVisible(bool)
}

// CompositeMapper binds the model value across one or more channels and/or
// sub-controls, recombining them through an aggregator supplied at Init
// time. Parts are registered with the package-level Bind functions (for
// sub-controls) and the Bind*Channel methods (for channels); presentation
// updates fan out over the parts in binding order.
//
// A composite value is only derivable while every non-optional part holds a
// value. When all required parts are absent at once, the model value is
// forced to the empty value regardless of the validator; a partially filled
// composite is handled by the InvalidValueMode policy instead.
type CompositeMapper[T any] struct {
	validatingBase[T]

	aggregator       func() T
	updaters         []func(T)
	requiredCheckers []func() bool

	boundTargets  []flagTarget
	boundSurfaces []Surface
}

func newCompositeMapper[T any](control Host[T], defaultValue T, aggregator func() T) *CompositeMapper[T] {
	if aggregator == nil {
		panic("fieldbind: nil composite aggregator")
	}
	m := &CompositeMapper[T]{aggregator: aggregator}
	m.state = claim(control, defaultValue, m.setPresentationValue)
	m.control = control
	m.initValidating(aggregator)

	m.hasValid = func() bool {
		if !m.validator() {
			return false
		}
		for _, required := range m.requiredCheckers {
			if !required() {
				return false
			}
		}
		return true
	}

	// A composite that never registers a binding is an incompletely
	// constructed control; detect it on attach instead of waiting for the
	// first value push.
	if attacher, ok := any(control).(Attacher); ok {
		attacher.OnAttach(func() { m.assertBound() })
	}

	m.state.SetReadOnlyApplier(func(readOnly bool) {
		for _, target := range m.boundTargets {
			target.SetReadOnly(readOnly)
		}
		for _, surface := range m.boundSurfaces {
			surface.SetChannel("readonly", readOnly)
		}
	})
	m.state.SetRequiredApplier(func(required bool) {
		for _, target := range m.boundTargets {
			target.SetRequiredIndicatorVisible(required)
		}
		for _, surface := range m.boundSurfaces {
			surface.SetChannel("required", required)
		}
	})

	return m
}

// updateModelValueIfValid overrides the validating behavior with the
// composite required-value policy: when at least one required-checker exists
// and all of them report empty, the value is a cleared composite and the
// model is forced to the empty value before any validity check runs.
func (m *CompositeMapper[T]) updateModelValueIfValid(fromClient bool) {
	if len(m.requiredCheckers) > 0 && m.allRequiredEmpty() {
		m.setModelValue(m.state.EmptyValue(), fromClient)
		return
	}
	m.validatingBase.updateModelValueIfValid(fromClient)
}

func (m *CompositeMapper[T]) allRequiredEmpty() bool {
	for _, required := range m.requiredCheckers {
		if required() {
			return false
		}
	}
	return true
}

func (m *CompositeMapper[T]) setPresentationValue(v T) {
	m.assertBound()
	for _, updater := range m.updaters {
		updater(v)
	}
}

func (m *CompositeMapper[T]) assertBound() {
	if len(m.updaters) == 0 {
		panic(fmt.Errorf("%w: register bindings with Bind or a Bind*Channel method", ErrUnbound))
	}
}

// SetValueComparer replaces the equality logic used for change-event
// suppression, or reverts to the default when cmp is nil.
func (m *CompositeMapper[T]) SetValueComparer(cmp func(a, b T) bool) *CompositeMapper[T] {
	m.state.SetValueComparer(cmp)
	return m
}

// SetValueValidator sets the predicate ANDed into the composite validity
// check alongside the required-checkers.
func (m *CompositeMapper[T]) SetValueValidator(validator func() bool) *CompositeMapper[T] {
	m.setValidator(validator)
	return m
}

// SetInvalidValueMode configures what happens to the model value when the
// composite presentation state is not well-formed.
func (m *CompositeMapper[T]) SetInvalidValueMode(mode InvalidValueMode) *CompositeMapper[T] {
	m.setInvalidValueMode(mode)
	return m
}

// SetReadOnlyApplier replaces the read-only fan-out. The default applier
// propagates the flag to every bound channel surface and sub-control.
func (m *CompositeMapper[T]) SetReadOnlyApplier(applier func(bool)) *CompositeMapper[T] {
	m.state.SetReadOnlyApplier(applier)
	return m
}

// SetRequiredApplier replaces the required-indicator fan-out. The default
// applier propagates the flag to every bound channel surface and
// sub-control.
func (m *CompositeMapper[T]) SetRequiredApplier(applier func(bool)) *CompositeMapper[T] {
	m.state.SetRequiredApplier(applier)
	return m
}

// BindStringChannel binds one part of the value to a string channel on the
// control's own surface. The extractor produces the channel value for a new
// model value; reporting ok=false clears the channel instead.
func (m *CompositeMapper[T]) BindStringChannel(channel string, extract func(T) (string, bool), settings BindingSettings) *CompositeMapper[T] {
	return m.BindStringChannelOn(m.ownSurface(), channel, extract, settings)
}

// BindStringChannelOn binds one part of the value to a string channel on an
// explicit surface.
func (m *CompositeMapper[T]) BindStringChannelOn(s Surface, channel string, extract func(T) (string, bool), settings BindingSettings) *CompositeMapper[T] {
	bindChannel(m, s, channel, extract, StringChannel(), settings)
	return m
}

// BindIntChannel binds one part of the value to an integer channel on the
// control's own surface.
func (m *CompositeMapper[T]) BindIntChannel(channel string, extract func(T) (int, bool), settings BindingSettings) *CompositeMapper[T] {
	return m.BindIntChannelOn(m.ownSurface(), channel, extract, settings)
}

// BindIntChannelOn binds one part of the value to an integer channel on an
// explicit surface.
func (m *CompositeMapper[T]) BindIntChannelOn(s Surface, channel string, extract func(T) (int, bool), settings BindingSettings) *CompositeMapper[T] {
	bindChannel(m, s, channel, extract, IntChannel(), settings)
	return m
}

// BindFloatChannel binds one part of the value to a float channel on the
// control's own surface.
func (m *CompositeMapper[T]) BindFloatChannel(channel string, extract func(T) (float64, bool), settings BindingSettings) *CompositeMapper[T] {
	return m.BindFloatChannelOn(m.ownSurface(), channel, extract, settings)
}

// BindFloatChannelOn binds one part of the value to a float channel on an
// explicit surface.
func (m *CompositeMapper[T]) BindFloatChannelOn(s Surface, channel string, extract func(T) (float64, bool), settings BindingSettings) *CompositeMapper[T] {
	bindChannel(m, s, channel, extract, FloatChannel(), settings)
	return m
}

// BindBoolChannel binds one part of the value to a boolean channel on the
// control's own surface.
func (m *CompositeMapper[T]) BindBoolChannel(channel string, extract func(T) (bool, bool), settings BindingSettings) *CompositeMapper[T] {
	return m.BindBoolChannelOn(m.ownSurface(), channel, extract, settings)
}

// BindBoolChannelOn binds one part of the value to a boolean channel on an
// explicit surface.
func (m *CompositeMapper[T]) BindBoolChannelOn(s Surface, channel string, extract func(T) (bool, bool), settings BindingSettings) *CompositeMapper[T] {
	bindChannel(m, s, channel, extract, BoolChannel(), settings)
	return m
}

// BindStructuredChannel binds one part of the value to a structured channel
// on the control's own surface; extracted values pass through the structured
// codec.
func (m *CompositeMapper[T]) BindStructuredChannel(channel string, extract func(T) (any, bool), settings BindingSettings) *CompositeMapper[T] {
	return m.BindStructuredChannelOn(m.ownSurface(), channel, extract, settings)
}

// BindStructuredChannelOn binds one part of the value to a structured
// channel on an explicit surface.
func (m *CompositeMapper[T]) BindStructuredChannelOn(s Surface, channel string, extract func(T) (any, bool), settings BindingSettings) *CompositeMapper[T] {
	bindChannel(m, s, channel, extract, StructuredChannel(), settings)
	return m
}

func (m *CompositeMapper[T]) ownSurface() Surface {
	sh, ok := m.control.(interface{ Surface() Surface })
	if !ok {
		panic(fmt.Sprintf("fieldbind: %T exposes no surface; use a Bind*ChannelOn method", m.control))
	}
	return sh.Surface()
}

func (m *CompositeMapper[T]) addBoundSurface(s Surface) {
	for _, existing := range m.boundSurfaces {
		if existing == s {
			return
		}
	}
	m.boundSurfaces = append(m.boundSurfaces, s)
}

func (m *CompositeMapper[T]) addBoundTarget(t flagTarget) {
	for _, existing := range m.boundTargets {
		if existing == t {
			return
		}
	}
	m.boundTargets = append(m.boundTargets, t)
}

// bindChannel registers a channel binding: a change listener that triggers
// revalidation, a presentation updater and, unless Optional, a
// required-checker over channel presence.
func bindChannel[T, P any](m *CompositeMapper[T], s Surface, channel string, extract func(T) (P, bool), accessor ChannelAccessor[P], settings BindingSettings) {
	s.OnChannelChange(channel, func(fromClient bool) {
		m.updateModelValueIfValid(fromClient)
	})

	m.updaters = append(m.updaters, func(v T) {
		if nilValue(v) && !settings.Has(AcceptsNil) {
			s.RemoveChannel(channel)
			return
		}
		part, ok := extract(v)
		if !ok {
			s.RemoveChannel(channel)
			return
		}
		accessor.Set(s, channel, part)
	})
	m.addBoundSurface(s)

	if !settings.Has(Optional) {
		m.requiredCheckers = append(m.requiredCheckers, func() bool {
			_, ok := s.Channel(channel)
			return ok
		})
	}
}

// Bind binds one part of the value to a sub-control. When the model value
// changes, the extractor produces the sub-control's value; a nil model value
// clears the sub-control unless AcceptsNil is set. When the sub-control's
// value changes, the composite aggregates. Unless Optional is set, the
// sub-control's non-emptiness becomes a requirement for a valid composite
// value.
//
// Bind is a package-level function because it is generic over the
// sub-control's value type; it returns the mapper so Init chains can keep
// flowing through it.
func Bind[T, V any](m *CompositeMapper[T], sub ValueHolder[V], extract func(T) V, settings BindingSettings) *CompositeMapper[T] {
	sub.AddValueChangeListener(func(e ValueChangeEvent[V]) {
		m.updateModelValueIfValid(e.FromClient)
	})

	m.updaters = append(m.updaters, func(v T) {
		if nilValue(v) && !settings.Has(AcceptsNil) {
			sub.Clear()
			return
		}
		sub.SetValue(extract(v))
	})
	m.addBoundTarget(sub)

	if !settings.Has(Optional) {
		m.requiredCheckers = append(m.requiredCheckers, func() bool {
			return !sub.IsEmpty()
		})
	}

	return m
}

// BindConverted binds one part of the value to a sub-control through an
// extra conversion step between the extracted part and the sub-control's
// value type.
func BindConverted[T, C, V any](m *CompositeMapper[T], sub ValueHolder[V], extract func(T) C, convert func(C) V, settings BindingSettings) *CompositeMapper[T] {
	return Bind(m, sub, func(v T) V { return convert(extract(v)) }, settings)
}
