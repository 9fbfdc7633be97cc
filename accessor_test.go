package fieldbind

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestStringChannelAccessor(t *testing.T) {
	s := NewStubSurface()
	acc := StringChannel()

	if got := acc.Get(s, "missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}

	acc.Set(s, "name", "hello")
	if got := acc.Get(s, "name"); got != "hello" {
		t.Errorf("Get() = %q, want %q", got, "hello")
	}

	// Channels written out-of-band with a non-string value still read back
	// as their printed form.
	s.SetChannel("name", 42)
	if got := acc.Get(s, "name"); got != "42" {
		t.Errorf("Get() = %q, want %q", got, "42")
	}
}

func TestIntChannelAccessorCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"int", 42, 42},
		{"int64", int64(42), 42},
		{"float64", 42.9, 42},
		{"string", "42", 42},
		{"garbage string", "not a number", 0},
		{"unsupported type", struct{}{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStubSurface()
			s.SetChannel("n", tt.raw)
			if got := IntChannel().Get(s, "n"); got != tt.want {
				t.Errorf("Get() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFloatChannelAccessorCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"float64", 1.5, 1.5},
		{"int", 2, 2},
		{"int64", int64(3), 3},
		{"string", "4.5", 4.5},
		{"garbage string", "nope", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStubSurface()
			s.SetChannel("f", tt.raw)
			if got := FloatChannel().Get(s, "f"); got != tt.want {
				t.Errorf("Get() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoolChannelAccessorCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want bool
	}{
		{"bool", true, true},
		{"string true", "true", true},
		{"string false", "false", false},
		{"garbage string", "maybe", false},
		{"unsupported type", 1.0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStubSurface()
			s.SetChannel("b", tt.raw)
			if got := BoolChannel().Get(s, "b"); got != tt.want {
				t.Errorf("Get() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStructuredChannelNormalization(t *testing.T) {
	type point struct {
		Label string `msgpack:"label"`
	}

	s := NewStubSurface()
	acc := StructuredChannel()
	acc.Set(s, "data", point{Label: "origin"})

	// The stored form is a plain map, not the original struct type.
	raw, ok := s.Channel("data")
	if !ok {
		t.Fatal("channel not written")
	}
	if _, isStruct := raw.(point); isStruct {
		t.Fatal("channel holds the original struct, want a normalized form")
	}
	m, ok := raw.(map[string]any)
	if !ok {
		t.Fatalf("channel holds %T, want map[string]any", raw)
	}
	if m["label"] != "origin" {
		t.Errorf(`m["label"] = %v, want "origin"`, m["label"])
	}

	// Reads pass the stored form through unchanged.
	if got := acc.Get(s, "data"); !reflect.DeepEqual(got, raw) {
		t.Errorf("Get() = %v, want stored form %v", got, raw)
	}
}

func TestStructuredChannelUnencodablePanics(t *testing.T) {
	s := NewStubSurface()
	defer func() {
		if recover() == nil {
			t.Fatal("no panic for an unencodable value")
		}
	}()
	StructuredChannel().Set(s, "data", make(chan int))
}

func TestConvertedChannelAccessor(t *testing.T) {
	type version struct{ Major, Minor int }

	acc := ConvertedChannel(StringChannel(),
		func(v version) string {
			return fmt.Sprintf("%d.%d", v.Major, v.Minor)
		},
		func(s string) version {
			var v version
			if major, minor, ok := strings.Cut(s, "."); ok {
				v.Major, _ = strconv.Atoi(major)
				v.Minor, _ = strconv.Atoi(minor)
			}
			return v
		})

	s := NewStubSurface()
	acc.Set(s, "version", version{1, 4})

	if raw, _ := s.Channel("version"); raw != "1.4" {
		t.Errorf("channel = %v, want %q", raw, "1.4")
	}
	if got := acc.Get(s, "version"); got != (version{1, 4}) {
		t.Errorf("Get() = %+v, want {1 4}", got)
	}
}
