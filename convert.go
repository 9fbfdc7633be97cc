package fieldbind

// ConvertHolder adapts a ValueHolder of one value type into a ValueHolder of
// another through a conversion pair, so a domain-typed composite part can
// bind to a primitive sub-control:
//
//	cents := fieldbind.ConvertHolder[money](amountField,
//	    func(m money) int { return m.Cents },
//	    func(c int) money { return money{Cents: c} })
//
// Emptiness and the presentation flags delegate to the inner holder; change
// events are re-mapped through the conversion.
func ConvertHolder[T, U any](inner ValueHolder[U], toInner func(T) U, fromInner func(U) T) ValueHolder[T] {
	return &convertedHolder[T, U]{inner: inner, toInner: toInner, fromInner: fromInner}
}

type convertedHolder[T, U any] struct {
	inner     ValueHolder[U]
	toInner   func(T) U
	fromInner func(U) T
}

func (h *convertedHolder[T, U]) Value() T {
	return h.fromInner(h.inner.Value())
}

func (h *convertedHolder[T, U]) SetValue(v T) {
	h.inner.SetValue(h.toInner(v))
}

func (h *convertedHolder[T, U]) Clear() {
	h.inner.Clear()
}

func (h *convertedHolder[T, U]) IsEmpty() bool {
	return h.inner.IsEmpty()
}

func (h *convertedHolder[T, U]) SetReadOnly(readOnly bool) {
	h.inner.SetReadOnly(readOnly)
}

func (h *convertedHolder[T, U]) SetRequiredIndicatorVisible(visible bool) {
	h.inner.SetRequiredIndicatorVisible(visible)
}

func (h *convertedHolder[T, U]) AddValueChangeListener(fn ValueChangeListener[T]) (remove func()) {
	return h.inner.AddValueChangeListener(func(e ValueChangeEvent[U]) {
		fn(ValueChangeEvent[T]{
			Old:        h.fromInner(e.Old),
			New:        h.fromInner(e.New),
			FromClient: e.FromClient,
		})
	})
}
