package fieldbind

// InvalidValueMode defines what happens to the model value when the current
// presentation representation is not well-formed.
//
//go:generate stringer -type=InvalidValueMode
type InvalidValueMode int

const (
	// InvalidValuePrevious keeps the previous model value when the
	// presentation value does not pass the validator. This is the default.
	InvalidValuePrevious InvalidValueMode = iota

	// InvalidValueEmpty resets the model value to the empty value when the
	// presentation value does not pass the validator.
	InvalidValueEmpty
)

// validatingBase extends mapperBase with validity-gated synchronization from
// presentation to model. Concrete mappers supply readValue through the read
// hook and may tighten validity through the hasValid hook.
type validatingBase[T any] struct {
	mapperBase[T]

	validator   func() bool
	invalidMode InvalidValueMode

	// hasValid, when set, replaces the plain validator check. read produces
	// the model value from the presentation; it is only invoked when the
	// value is valid, since the underlying representation may be malformed
	// otherwise.
	hasValid func() bool
	read     func() T
}

func (m *validatingBase[T]) initValidating(read func() T) {
	m.validator = func() bool { return true }
	m.invalidMode = InvalidValuePrevious
	m.read = read
}

func (m *validatingBase[T]) hasValidValue() bool {
	if m.hasValid != nil {
		return m.hasValid()
	}
	return m.validator()
}

// updateModelValueIfValid informs the mapper that the presentation may have
// changed. A valid presentation value becomes the model value; an invalid
// one is handled per the InvalidValueMode policy.
func (m *validatingBase[T]) updateModelValueIfValid(fromClient bool) {
	if m.hasValidValue() {
		m.setModelValue(m.read(), fromClient)
	} else if m.invalidMode == InvalidValueEmpty {
		m.setModelValue(m.state.EmptyValue(), fromClient)
	}
}

func (m *validatingBase[T]) setValidator(validator func() bool) {
	if validator == nil {
		panic("fieldbind: nil value validator")
	}
	m.validator = validator
}

func (m *validatingBase[T]) setInvalidValueMode(mode InvalidValueMode) {
	m.invalidMode = mode
}

// InvalidMode returns the active invalid-value policy.
func (m *validatingBase[T]) InvalidMode() InvalidValueMode {
	return m.invalidMode
}
