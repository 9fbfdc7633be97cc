package fieldbind

import (
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// ChannelAccessor defines how values of one presentation type are read from
// and written to a surface channel. The built-in kinds cover the primitive
// channel types plus a structured kind for opaque values; ConvertedChannel
// composes any of them with a conversion pair.
type ChannelAccessor[P any] interface {
	Get(s Surface, channel string) P
	Set(s Surface, channel string, value P)
}

type accessorFuncs[P any] struct {
	get func(Surface, string) P
	set func(Surface, string, P)
}

func (a accessorFuncs[P]) Get(s Surface, channel string) P    { return a.get(s, channel) }
func (a accessorFuncs[P]) Set(s Surface, channel string, v P) { a.set(s, channel, v) }

// StringChannel returns the accessor for string channels.
func StringChannel() ChannelAccessor[string] {
	return accessorFuncs[string]{
		get: func(s Surface, channel string) string {
			raw, ok := s.Channel(channel)
			if !ok {
				return ""
			}
			switch v := raw.(type) {
			case string:
				return v
			default:
				return fmt.Sprint(v)
			}
		},
		set: func(s Surface, channel string, v string) {
			s.SetChannel(channel, v)
		},
	}
}

// IntChannel returns the accessor for integer channels. Reads coerce the
// raw channel value the way a loosely typed presentation layer stores
// numbers; unparseable values read as zero.
func IntChannel() ChannelAccessor[int] {
	return accessorFuncs[int]{
		get: func(s Surface, channel string) int {
			raw, ok := s.Channel(channel)
			if !ok {
				return 0
			}
			switch v := raw.(type) {
			case int:
				return v
			case int64:
				return int(v)
			case float64:
				return int(v)
			case string:
				n, _ := strconv.Atoi(v)
				return n
			default:
				return 0
			}
		},
		set: func(s Surface, channel string, v int) {
			s.SetChannel(channel, v)
		},
	}
}

// FloatChannel returns the accessor for floating point channels.
func FloatChannel() ChannelAccessor[float64] {
	return accessorFuncs[float64]{
		get: func(s Surface, channel string) float64 {
			raw, ok := s.Channel(channel)
			if !ok {
				return 0
			}
			switch v := raw.(type) {
			case float64:
				return v
			case int:
				return float64(v)
			case int64:
				return float64(v)
			case string:
				n, _ := strconv.ParseFloat(v, 64)
				return n
			default:
				return 0
			}
		},
		set: func(s Surface, channel string, v float64) {
			s.SetChannel(channel, v)
		},
	}
}

// BoolChannel returns the accessor for boolean channels.
func BoolChannel() ChannelAccessor[bool] {
	return accessorFuncs[bool]{
		get: func(s Surface, channel string) bool {
			raw, ok := s.Channel(channel)
			if !ok {
				return false
			}
			switch v := raw.(type) {
			case bool:
				return v
			case string:
				b, _ := strconv.ParseBool(v)
				return b
			default:
				return false
			}
		},
		set: func(s Surface, channel string, v bool) {
			s.SetChannel(channel, v)
		},
	}
}

// StructuredChannel returns the accessor for structured channels. Written
// values are normalized through a msgpack encode/decode round trip so that
// the channel holds only plain maps, slices and scalars regardless of the
// concrete type handed in; reads pass the stored form through unchanged.
//
// A value the codec cannot encode is a programmer error and panics.
func StructuredChannel() ChannelAccessor[any] {
	return accessorFuncs[any]{
		get: func(s Surface, channel string) any {
			raw, _ := s.Channel(channel)
			return raw
		},
		set: func(s Surface, channel string, v any) {
			packed, err := msgpack.Marshal(v)
			if err != nil {
				panic(fmt.Sprintf("fieldbind: structured channel %q: %v", channel, err))
			}
			var normalized any
			if err := msgpack.Unmarshal(packed, &normalized); err != nil {
				panic(fmt.Sprintf("fieldbind: structured channel %q: %v", channel, err))
			}
			s.SetChannel(channel, normalized)
		},
	}
}

// ConvertedChannel composes a presentation-typed accessor with a conversion
// pair so that a mapper can bind a domain value to a primitive channel
// transparently, e.g. a date to a string channel.
func ConvertedChannel[T, P any](accessor ChannelAccessor[P], modelToPresentation func(T) P, presentationToModel func(P) T) ChannelAccessor[T] {
	return accessorFuncs[T]{
		get: func(s Surface, channel string) T {
			return presentationToModel(accessor.Get(s, channel))
		},
		set: func(s Surface, channel string, v T) {
			accessor.Set(s, channel, modelToPresentation(v))
		},
	}
}
