package fieldbind

// Surface is the engine's view of a control's presentation layer: a named
// channel store with change subscription. The host UI framework supplies the
// implementation; the engine only reads, writes and observes channels.
//
// Channel values are dynamically typed; the typed ChannelAccessor kinds
// define how model values map onto them. Implementations must dispatch
// change notifications synchronously for both server-side writes
// (fromClient=false) and client-originated updates (fromClient=true), and
// must notify on removal of a present channel.
type Surface interface {
	// Channel returns the current value of the named channel and whether the
	// channel currently holds a value.
	Channel(name string) (any, bool)

	// SetChannel writes the named channel. Implementations should suppress
	// the change notification when the value does not actually change.
	SetChannel(name string, value any)

	// RemoveChannel clears the named channel so that it no longer holds a
	// value.
	RemoveChannel(name string)

	// OnChannelChange subscribes to changes of the named channel and returns
	// a removal func.
	OnChannelChange(name string, listener func(fromClient bool)) (remove func())

	// SyncChannel asks the presentation layer to report client-side updates
	// of the named channel whenever the named event fires.
	SyncChannel(name, event string)

	// UnsyncChannel retracts a SyncChannel configuration.
	UnsyncChannel(name, event string)
}

// Attacher is an optional capability of host controls that can report when
// they are attached to a live presentation tree. Composite mappers use it to
// fail fast on controls that never registered a binding.
type Attacher interface {
	OnAttach(fn func()) (remove func())
}
