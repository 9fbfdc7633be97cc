// Package fieldbind provides a value-binding engine for building
// server-driven UI controls that expose a single, strongly-typed value while
// being represented internally by one or more presentation channels - an
// element property, a sub-control's own value, or any other externally
// observable slot.
//
// fieldbind decouples what value a control logically holds from how that
// value is rendered and edited. It centralizes the behaviors every such
// control needs: empty-value semantics, change-event suppression via value
// equality, validity-gated synchronization, and propagation of read-only and
// required-indicator state into the presentation layer. The engine renders
// nothing itself and knows nothing about specific widget types.
//
// # Core Concepts
//
// Controls embed fieldbind.Field[T] where T is the value type. The embedded
// Field promotes the full value API (Value, SetValue, Clear, ReadOnly,
// AddValueChangeListener, ...) onto the control, but carries no behavior of
// its own until the control claims it with exactly one Init call:
//
//	type TextField struct {
//	    fieldbind.Field[string]
//	    el *htmlel.Element
//	}
//
//	func NewTextField() *TextField {
//	    f := &TextField{el: htmlel.New("input")}
//	    fieldbind.InitStringChannel(f, "", "value")
//	    return f
//	}
//
// The Init call constructs a value mapper, the component that owns all value
// flow for the control. Values move in two directions: model to presentation
// (a caller sets the value and the mapper pushes it into the channels) and
// presentation to model (a channel change fires, the mapper reads, validates
// and conditionally updates the model value). A model update performed from
// inside a presentation push wins and does not trigger a second push, so the
// two directions can never ping-pong.
//
// # Mapper Kinds
//
// Init binds the value through a plain callback for controls that manage
// their own presentation. InitStringChannel, InitIntChannel and friends bind
// the value to a single named channel via a typed accessor, with nil-value
// policy and a derived synchronization event name. InitComposite recombines
// several channels or sub-controls into one value through an aggregator:
//
//	mapper := fieldbind.InitComposite(dp, time.Time{}, dp.assemble)
//	fieldbind.Bind(mapper, dp.year, timeYear, 0)
//	fieldbind.Bind(mapper, dp.month, timeMonth, 0)
//	fieldbind.Bind(mapper, dp.day, timeDay, 0)
//
// Mappers are fluent builders: configuration methods return the concrete
// mapper type so calls chain without casts.
//
// # Validity
//
// Channel and composite mappers only accept a presentation value into the
// model when it is currently well-formed. The InvalidValueMode policy decides
// what happens otherwise: keep the previous model value (the default) or fall
// back to the empty value. A composite additionally treats "every required
// part is absent" as an explicit cleared state that always yields the empty
// value. Validity is a state transition, never an error.
//
// # Design Rationale
//
// The system favors explicitness over magic:
//   - Explicit initialization (one Init call, double claims panic)
//   - Explicit value flow (model/presentation split, no hidden sync)
//   - Explicit equality (replaceable comparer gates all change events)
//   - Explicit binding flags (Optional, AcceptsNil - a bitfield, not magic)
//
// Misuse - claiming a control twice, touching an uninitialized field,
// pushing into an unbound composite - panics with a sentinel error, because
// it indicates a bug in the control's construction, not a runtime condition.
package fieldbind
