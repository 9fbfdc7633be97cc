package fieldbind

import "fmt"

// Field is the value anchor embedded by host controls. Embedding it promotes
// the full value API onto the control; the control must then be claimed by
// exactly one Init call before any of these methods is used.
//
// The zero value is ready to embed:
//
//	type NumberField struct {
//	    fieldbind.Field[int]
//	    el *htmlel.Element
//	}
//
// A control embedding Field[T] automatically satisfies Host[T] and
// ValueHolder[T], so it can be passed to Init functions and bound as a part
// of a composite.
type Field[T any] struct {
	state *fieldState[T]
}

func (f *Field[T]) anchor() *Field[T] { return f }

func (f *Field[T]) instance() *fieldState[T] {
	if f.state == nil {
		panic(fmt.Errorf("%w: run an Init function before using the field", ErrUninitialized))
	}
	return f.state
}

// Value returns the current model value.
func (f *Field[T]) Value() T {
	return f.instance().Value()
}

// SetValue sets the model value, pushing it into the presentation layer and
// firing a change event unless the new value equals the current one.
func (f *Field[T]) SetValue(v T) {
	f.instance().support.SetValue(v)
}

// EmptyValue returns the value that represents "no value" for this field.
// It is fixed at Init time as the field's default value.
func (f *Field[T]) EmptyValue() T {
	return f.instance().EmptyValue()
}

// IsEmpty reports whether the current value equals the empty value under the
// active comparer.
func (f *Field[T]) IsEmpty() bool {
	st := f.instance()
	return st.ValueEquals(st.Value(), st.EmptyValue())
}

// Clear resets the field to its empty value.
func (f *Field[T]) Clear() {
	f.SetValue(f.EmptyValue())
}

// ReadOnly reports whether the field is set as read-only.
func (f *Field[T]) ReadOnly() bool {
	return f.instance().ReadOnly()
}

// SetReadOnly updates the read-only state of the field.
func (f *Field[T]) SetReadOnly(readOnly bool) {
	f.instance().SetReadOnly(readOnly)
}

// RequiredIndicatorVisible reports whether the required indicator is shown.
func (f *Field[T]) RequiredIndicatorVisible() bool {
	return f.instance().RequiredIndicatorVisible()
}

// SetRequiredIndicatorVisible updates whether the required indicator is
// shown for this field.
func (f *Field[T]) SetRequiredIndicatorVisible(visible bool) {
	f.instance().SetRequiredIndicatorVisible(visible)
}

// AddValueChangeListener registers a listener for model value changes and
// returns its removal func.
func (f *Field[T]) AddValueChangeListener(fn ValueChangeListener[T]) (remove func()) {
	return f.instance().support.AddValueChangeListener(fn)
}

// Host is any control that embeds Field[T]. Only the embedded Field can
// satisfy it; there is no way to implement it from outside.
type Host[T any] interface {
	anchor() *Field[T]
}

// SurfaceHost is a Host that also exposes its presentation surface. The
// single-channel Init functions and the composite channel binds that target
// the control's own surface require it.
type SurfaceHost[T any] interface {
	Host[T]
	Surface() Surface
}

// ValueHolder is the sub-control side of a composite binding: anything with
// a value, emptiness, change events and the two presentation flags. Controls
// embedding Field[V] satisfy it automatically.
type ValueHolder[V any] interface {
	Value() V
	SetValue(V)
	Clear()
	IsEmpty() bool
	SetReadOnly(bool)
	SetRequiredIndicatorVisible(bool)
	AddValueChangeListener(fn ValueChangeListener[V]) (remove func())
}

// claim creates the field state for a control, failing if the control has
// already been initialized.
func claim[T any](control Host[T], defaultValue T, setPresentation func(T)) *fieldState[T] {
	f := control.anchor()
	if f.state != nil {
		panic(fmt.Errorf("%w: %T", ErrAlreadyInitialized, control))
	}
	f.state = newFieldState[T](control, defaultValue, setPresentation)
	return f.state
}

// Init initializes a field with low-level value mapping. The callback
// updates the presentation whenever the model value is set from the server
// side; presentation-side updates are reported back by calling
// SetModelValue on the returned mapper.
func Init[T any](control Host[T], defaultValue T, setPresentationValue func(T)) *ValueMapper[T] {
	m := &ValueMapper[T]{setPresentation: setPresentationValue}
	m.state = claim(control, defaultValue, m.setPresentationValue)
	m.control = control
	return m
}

// InitStringChannel initializes a field bound to a single string channel on
// the control's own surface.
func InitStringChannel(control SurfaceHost[string], defaultValue, channel string) *SingleChannelMapper[string] {
	return InitChannel[string](control, defaultValue, control.Surface(), channel, StringChannel())
}

// InitIntChannel initializes a field bound to a single integer channel on
// the control's own surface.
func InitIntChannel(control SurfaceHost[int], defaultValue int, channel string) *SingleChannelMapper[int] {
	return InitChannel[int](control, defaultValue, control.Surface(), channel, IntChannel())
}

// InitFloatChannel initializes a field bound to a single float channel on
// the control's own surface.
func InitFloatChannel(control SurfaceHost[float64], defaultValue float64, channel string) *SingleChannelMapper[float64] {
	return InitChannel[float64](control, defaultValue, control.Surface(), channel, FloatChannel())
}

// InitBoolChannel initializes a field bound to a single boolean channel on
// the control's own surface.
func InitBoolChannel(control SurfaceHost[bool], defaultValue bool, channel string) *SingleChannelMapper[bool] {
	return InitChannel[bool](control, defaultValue, control.Surface(), channel, BoolChannel())
}

// InitStructuredChannel initializes a field bound to a single structured
// channel on the control's own surface. Values are normalized through the
// structured codec on their way into the channel.
func InitStructuredChannel(control SurfaceHost[any], defaultValue any, channel string) *SingleChannelMapper[any] {
	return InitChannel[any](control, defaultValue, control.Surface(), channel, StructuredChannel())
}

// InitConvertedChannel initializes a field whose domain value type T is
// bound to a channel of a different presentation type P through a conversion
// pair, e.g. a date bound to a string channel.
func InitConvertedChannel[T, P any](control SurfaceHost[T], defaultValue T, channel string,
	accessor ChannelAccessor[P], modelToPresentation func(T) P, presentationToModel func(P) T) *SingleChannelMapper[T] {
	return InitChannel[T](control, defaultValue, control.Surface(), channel,
		ConvertedChannel(accessor, modelToPresentation, presentationToModel))
}

// InitChannel initializes a field bound to a single channel on an explicit
// surface via an explicit accessor. The typed Init*Channel functions are
// convenience wrappers around this one.
func InitChannel[T any](control Host[T], defaultValue T, surface Surface, channel string, accessor ChannelAccessor[T]) *SingleChannelMapper[T] {
	return newSingleChannelMapper(control, defaultValue, surface, channel, accessor)
}

// InitComposite initializes a field whose value is produced from multiple
// channels or sub-controls. The aggregator combines their current states
// into one model value; the parts are registered with Bind and the
// Bind*Channel methods on the returned mapper.
func InitComposite[T any](control Host[T], defaultValue T, aggregator func() T) *CompositeMapper[T] {
	return newCompositeMapper(control, defaultValue, aggregator)
}
