package fieldbind

import (
	"fmt"
	"strings"
	"unicode"
)

// SingleChannelMapper binds the model value to exactly one named channel on
// one presentation surface through a typed accessor.
//
// Construction subscribes to channel changes so presentation updates flow
// back into the model, and configures a synchronization event derived from
// the channel name ("<channel>-changed", camelCase converted to dashes)
// unless overridden with SetSyncEvent.
type SingleChannelMapper[T any] struct {
	validatingBase[T]

	surface  Surface
	channel  string
	accessor ChannelAccessor[T]

	nilAllowed bool
	syncEvent  string
}

func newSingleChannelMapper[T any](control Host[T], defaultValue T, surface Surface, channel string, accessor ChannelAccessor[T]) *SingleChannelMapper[T] {
	m := &SingleChannelMapper[T]{
		surface:  surface,
		channel:  channel,
		accessor: accessor,
	}
	m.state = claim(control, defaultValue, m.setPresentationValue)
	m.control = control
	m.initValidating(m.readValue)

	surface.OnChannelChange(channel, func(fromClient bool) {
		m.updateModelValueIfValid(fromClient)
	})

	m.nilAllowed = nilValue(defaultValue)
	m.SetSyncEvent(camelToDash(channel) + "-changed")

	return m
}

// SetNilValueAllowed configures whether nil is an accepted model value. When
// rejected, presenting a nil value panics with ErrNilNotAllowed instead of
// clearing the channel.
//
// The default is to allow nil exactly when the mapper's default value is
// nil.
func (m *SingleChannelMapper[T]) SetNilValueAllowed(allowed bool) *SingleChannelMapper[T] {
	m.nilAllowed = allowed
	return m
}

// SetSyncEvent replaces the presentation event used to report client-side
// channel updates. The empty string disables synchronization entirely.
func (m *SingleChannelMapper[T]) SetSyncEvent(event string) *SingleChannelMapper[T] {
	if m.syncEvent != "" {
		m.surface.UnsyncChannel(m.channel, m.syncEvent)
	}
	m.syncEvent = event
	if event != "" {
		m.surface.SyncChannel(m.channel, event)
	}
	return m
}

// SyncEvent returns the active synchronization event name, or the empty
// string when synchronization is disabled.
func (m *SingleChannelMapper[T]) SyncEvent() string {
	return m.syncEvent
}

// SetValueComparer replaces the equality logic used for change-event
// suppression, or reverts to the default when cmp is nil.
func (m *SingleChannelMapper[T]) SetValueComparer(cmp func(a, b T) bool) *SingleChannelMapper[T] {
	m.state.SetValueComparer(cmp)
	return m
}

// SetValueValidator sets the predicate run before reading a presentation
// value into the model. When it reports false, the InvalidValueMode policy
// applies.
func (m *SingleChannelMapper[T]) SetValueValidator(validator func() bool) *SingleChannelMapper[T] {
	m.setValidator(validator)
	return m
}

// SetInvalidValueMode configures what happens to the model value when the
// presentation value is not well-formed.
func (m *SingleChannelMapper[T]) SetInvalidValueMode(mode InvalidValueMode) *SingleChannelMapper[T] {
	m.setInvalidValueMode(mode)
	return m
}

// SetReadOnlyApplier replaces the callback that pushes the read-only flag
// into the presentation.
func (m *SingleChannelMapper[T]) SetReadOnlyApplier(applier func(bool)) *SingleChannelMapper[T] {
	m.state.SetReadOnlyApplier(applier)
	return m
}

// SetRequiredApplier replaces the callback that pushes the required
// indicator into the presentation.
func (m *SingleChannelMapper[T]) SetRequiredApplier(applier func(bool)) *SingleChannelMapper[T] {
	m.state.SetRequiredApplier(applier)
	return m
}

func (m *SingleChannelMapper[T]) setPresentationValue(v T) {
	if nilValue(v) && !m.nilAllowed {
		panic(fmt.Errorf("%w: channel %q", ErrNilNotAllowed, m.channel))
	}

	if m.ValueEquals(v, m.state.EmptyValue()) {
		m.surface.RemoveChannel(m.channel)
	} else {
		m.accessor.Set(m.surface, m.channel, v)
	}
}

func (m *SingleChannelMapper[T]) readValue() T {
	if _, ok := m.surface.Channel(m.channel); !ok {
		return m.state.EmptyValue()
	}
	return m.accessor.Get(m.surface, m.channel)
}

// camelToDash converts a camelCase channel name to its dash-separated event
// form, e.g. "myValue" to "my-value".
func camelToDash(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
