// Package htmlel provides an HTML-element-backed presentation surface for
// fieldbind controls. An Element models one HTML element: a tag, static
// attributes and dynamic channels. Channels map onto attributes when the
// element renders, so a control's current value, read-only and required
// state all appear in the markup.
//
// The package is the reference Surface implementation for server-rendered
// controls; tests and demos use its Client* methods to simulate updates
// arriving from the browser.
package htmlel

import (
	"context"
	"fmt"
	"html"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/fieldbind"
)

// Element is one HTML element with observable channels.
type Element struct {
	tag       string
	attrs     map[string]string
	channels  map[string]any
	listeners map[string][]*listenerEntry
	syncs     map[string]string
	nextID    int
}

type listenerEntry struct {
	id int
	fn func(fromClient bool)
}

var _ fieldbind.Surface = (*Element)(nil)

// New creates an element with the given tag.
func New(tag string) *Element {
	return &Element{
		tag:       tag,
		attrs:     make(map[string]string),
		channels:  make(map[string]any),
		listeners: make(map[string][]*listenerEntry),
		syncs:     make(map[string]string),
	}
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.tag
}

// SetAttribute sets a static attribute that renders alongside the channels.
func (e *Element) SetAttribute(name, value string) {
	e.attrs[name] = value
}

// Attribute returns a static attribute value.
func (e *Element) Attribute(name string) string {
	return e.attrs[name]
}

// Channel returns the current value of the named channel.
func (e *Element) Channel(name string) (any, bool) {
	v, ok := e.channels[name]
	return v, ok
}

// SetChannel writes the named channel as a server-side change. Writing an
// equal value is a no-op.
func (e *Element) SetChannel(name string, value any) {
	e.write(name, value, false)
}

// RemoveChannel clears the named channel, notifying listeners if it held a
// value.
func (e *Element) RemoveChannel(name string) {
	e.remove(name, false)
}

// OnChannelChange subscribes to changes of the named channel.
func (e *Element) OnChannelChange(name string, listener func(fromClient bool)) (remove func()) {
	e.nextID++
	entry := &listenerEntry{id: e.nextID, fn: listener}
	e.listeners[name] = append(e.listeners[name], entry)
	return func() {
		current := e.listeners[name]
		for i, l := range current {
			if l.id == entry.id {
				e.listeners[name] = append(current[:i], current[i+1:]...)
				return
			}
		}
	}
}

// SyncChannel records that client-side updates of the named channel are
// reported when the named event fires. The configuration renders as a
// data-sync attribute so the client runtime can pick it up.
func (e *Element) SyncChannel(name, event string) {
	e.syncs[name] = event
}

// UnsyncChannel retracts a SyncChannel configuration.
func (e *Element) UnsyncChannel(name, event string) {
	if e.syncs[name] == event {
		delete(e.syncs, name)
	}
}

// SyncEventFor returns the configured synchronization event for a channel,
// or the empty string.
func (e *Element) SyncEventFor(name string) string {
	return e.syncs[name]
}

// ClientSetChannel simulates a channel update originating from the client.
func (e *Element) ClientSetChannel(name string, value any) {
	e.write(name, value, true)
}

// ClientRemoveChannel simulates a channel removal originating from the
// client.
func (e *Element) ClientRemoveChannel(name string) {
	e.remove(name, true)
}

func (e *Element) write(name string, value any, fromClient bool) {
	if existing, ok := e.channels[name]; ok && reflect.DeepEqual(existing, value) {
		return
	}
	e.channels[name] = value
	e.notify(name, fromClient)
}

func (e *Element) remove(name string, fromClient bool) {
	if _, ok := e.channels[name]; !ok {
		return
	}
	delete(e.channels, name)
	e.notify(name, fromClient)
}

func (e *Element) notify(name string, fromClient bool) {
	for _, entry := range append([]*listenerEntry{}, e.listeners[name]...) {
		entry.fn(fromClient)
	}
}

// Component returns a templ component rendering the element's current
// state. Channels render as attributes: boolean true as a bare attribute,
// boolean false omitted, everything else as name="value". Sync
// configurations render as data-sync-<channel> attributes. Attribute order
// is deterministic: static attributes first, then channels, each sorted by
// name.
func (e *Element) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString("<")
		sb.WriteString(e.tag)

		for _, name := range sortedKeys(e.attrs) {
			writeAttr(&sb, name, e.attrs[name])
		}
		for _, name := range sortedKeys(e.channels) {
			switch v := e.channels[name].(type) {
			case bool:
				if v {
					sb.WriteString(" ")
					sb.WriteString(html.EscapeString(name))
				}
			default:
				writeAttr(&sb, name, fmt.Sprint(v))
			}
		}
		for _, name := range sortedKeys(e.syncs) {
			writeAttr(&sb, "data-sync-"+name, e.syncs[name])
		}

		sb.WriteString(">")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// Render writes the element's markup to w.
func (e *Element) Render(ctx context.Context, w io.Writer) error {
	return e.Component().Render(ctx, w)
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(html.EscapeString(name))
	sb.WriteString(`="`)
	sb.WriteString(html.EscapeString(value))
	sb.WriteString(`"`)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
