package fieldbind

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestUninitializedFieldPanics(t *testing.T) {
	c := NewStubControl[string]()

	expectPanic(t, ErrUninitialized, func() {
		c.Value()
	})
	expectPanic(t, ErrUninitialized, func() {
		c.SetValue("x")
	})
}

func TestDoubleInitializationPanics(t *testing.T) {
	c := NewStubControl[string]()
	Init[string](c, "", func(string) {})

	expectPanic(t, ErrAlreadyInitialized, func() {
		Init[string](c, "", func(string) {})
	})
}

func TestInitialValueIsEmptyValue(t *testing.T) {
	c := NewStubControl[int]()
	Init[int](c, 7, func(int) {})

	if got := c.Value(); got != 7 {
		t.Errorf("Value() = %d, want 7", got)
	}
	if got := c.EmptyValue(); got != 7 {
		t.Errorf("EmptyValue() = %d, want 7", got)
	}
	if !c.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
}

func TestSetValueFiresOnce(t *testing.T) {
	c := NewStubControl[string]()
	Init[string](c, "", func(string) {})

	var rec ChangeRecorder[string]
	c.AddValueChangeListener(rec.Listener())

	c.SetValue("a")
	c.SetValue("a") // equal value, no event

	if rec.Count() != 1 {
		t.Fatalf("event count = %d, want 1", rec.Count())
	}
	e := rec.Last()
	if e.Old != "" || e.New != "a" || e.FromClient {
		t.Errorf("event = %+v, want {Old: New:a FromClient:false}", e)
	}
}

func TestSetModelValueIdempotent(t *testing.T) {
	c := NewStubControl[string]()
	m := Init[string](c, "", func(string) {})

	var rec ChangeRecorder[string]
	c.AddValueChangeListener(rec.Listener())

	m.SetModelValue("typed", true)
	m.SetModelValue("typed", true)

	if rec.Count() != 1 {
		t.Fatalf("event count = %d, want 1", rec.Count())
	}
	if !rec.Last().FromClient {
		t.Error("FromClient = false, want true")
	}
}

func TestValueComparerSuppressesEvents(t *testing.T) {
	// nil and empty slices are distinct under the default comparison but
	// equal under go-cmp with EquateEmpty, so replacing the comparer must
	// suppress the change event between them.
	c := NewStubControl[[]string]()
	m := Init[[]string](c, nil, func([]string) {})
	m.SetValueComparer(func(a, b []string) bool {
		return cmp.Equal(a, b, cmpopts.EquateEmpty())
	})

	var rec ChangeRecorder[[]string]
	c.AddValueChangeListener(rec.Listener())

	c.SetValue([]string{})
	if rec.Count() != 0 {
		t.Fatalf("event count = %d, want 0", rec.Count())
	}

	c.SetValue([]string{"a"})
	if rec.Count() != 1 {
		t.Fatalf("event count = %d, want 1", rec.Count())
	}
}

func TestValueComparerRevert(t *testing.T) {
	c := NewStubControl[string]()
	m := Init[string](c, "", func(string) {})

	everythingEqual := func(a, b string) bool { return true }
	m.SetValueComparer(everythingEqual)

	var rec ChangeRecorder[string]
	c.AddValueChangeListener(rec.Listener())

	c.SetValue("a")
	if rec.Count() != 0 {
		t.Fatalf("event count = %d, want 0", rec.Count())
	}

	m.SetValueComparer(nil) // back to the default
	c.SetValue("a")
	if rec.Count() != 1 {
		t.Fatalf("event count = %d, want 1", rec.Count())
	}
}

func TestReadOnlyAppliedOnChangeOnly(t *testing.T) {
	c := NewStubControl[string]()
	var applied []bool
	m := Init[string](c, "", func(string) {})
	m.SetReadOnlyApplier(func(v bool) { applied = append(applied, v) })

	c.SetReadOnly(false) // already false, no-op
	c.SetReadOnly(true)
	c.SetReadOnly(true) // already true, no-op
	c.SetReadOnly(false)

	want := []bool{true, false}
	if len(applied) != len(want) {
		t.Fatalf("applier calls = %v, want %v", applied, want)
	}
	for i := range want {
		if applied[i] != want[i] {
			t.Fatalf("applier calls = %v, want %v", applied, want)
		}
	}
}

func TestDefaultAppliersWriteChannels(t *testing.T) {
	c := NewStubControl[string]()
	Init[string](c, "", func(string) {})

	c.SetReadOnly(true)
	c.SetRequiredIndicatorVisible(true)

	if v, _ := c.Stub().Channel("readonly"); v != true {
		t.Errorf("readonly channel = %v, want true", v)
	}
	if v, _ := c.Stub().Channel("required"); v != true {
		t.Errorf("required channel = %v, want true", v)
	}
}

func TestApplierReplacementRetractsActiveFlag(t *testing.T) {
	c := NewStubControl[string]()
	var oldCalls, newCalls []bool
	m := Init[string](c, "", func(string) {})
	m.SetReadOnlyApplier(func(v bool) { oldCalls = append(oldCalls, v) })

	c.SetReadOnly(true)
	m.SetReadOnlyApplier(func(v bool) { newCalls = append(newCalls, v) })

	// The old applier must retract its effect before the new one applies.
	if len(oldCalls) != 2 || oldCalls[1] != false {
		t.Errorf("old applier calls = %v, want [true false]", oldCalls)
	}
	if len(newCalls) != 1 || newCalls[0] != true {
		t.Errorf("new applier calls = %v, want [true]", newCalls)
	}
}

func TestApplierReplacementInactiveFlag(t *testing.T) {
	c := NewStubControl[string]()
	var calls []bool
	m := Init[string](c, "", func(string) {})

	m.SetReadOnlyApplier(func(v bool) { calls = append(calls, v) })
	if len(calls) != 0 {
		t.Errorf("applier calls = %v, want none while flag inactive", calls)
	}
}

func TestListenerRemoval(t *testing.T) {
	c := NewStubControl[string]()
	Init[string](c, "", func(string) {})

	var rec ChangeRecorder[string]
	remove := c.AddValueChangeListener(rec.Listener())

	c.SetValue("a")
	remove()
	c.SetValue("b")

	if rec.Count() != 1 {
		t.Fatalf("event count = %d, want 1", rec.Count())
	}
}

func TestClear(t *testing.T) {
	c := NewStubControl[int]()
	Init[int](c, -1, func(int) {})

	c.SetValue(5)
	c.Clear()

	if got := c.Value(); got != -1 {
		t.Errorf("Value() = %d, want -1", got)
	}
	if !c.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
}
