package concat

import (
	"fmt"
	"unicode/utf8"

	"github.com/harrison/codecat/internal/config"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DecodePolicy selects how ill-formed UTF-8 in a source file is handled.
// Decoding never fails under either policy.
type DecodePolicy int

const (
	// DecodeReplace substitutes U+FFFD for every ill-formed sequence.
	DecodeReplace DecodePolicy = iota
	// DecodeDrop removes ill-formed sequences.
	DecodeDrop
)

// String returns the configuration spelling of the policy.
func (p DecodePolicy) String() string {
	switch p {
	case DecodeReplace:
		return config.InvalidBytesReplace
	case DecodeDrop:
		return config.InvalidBytesDrop
	default:
		return "unknown"
	}
}

// ParseDecodePolicy maps an invalid_bytes configuration value to a policy.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch s {
	case config.InvalidBytesReplace, "":
		return DecodeReplace, nil
	case config.InvalidBytesDrop:
		return DecodeDrop, nil
	default:
		return DecodeReplace, fmt.Errorf("unknown invalid_bytes policy %q", s)
	}
}

// transformer returns a fresh transformer implementing the policy.
func (p DecodePolicy) transformer() transform.Transformer {
	if p == DecodeDrop {
		// runes.Remove sees ill-formed bytes as utf8.RuneError
		return runes.Remove(runes.Predicate(func(r rune) bool {
			return r == utf8.RuneError
		}))
	}
	return unicode.UTF8.NewDecoder()
}

// Decode converts raw file bytes to valid UTF-8 text under the policy.
// Valid input is returned unchanged.
func (p DecodePolicy) Decode(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	out, _, err := transform.Bytes(p.transformer(), data)
	if err != nil {
		// Neither transformer reports errors for ill-formed input; fall back
		// to a rune-by-rune rewrite so a body is always produced
		return p.decodeSlow(data)
	}
	return out
}

func (p DecodePolicy) decodeSlow(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			if p == DecodeReplace {
				out = utf8.AppendRune(out, utf8.RuneError)
			}
		} else {
			out = append(out, data[:size]...)
		}
		data = data[size:]
	}
	return out
}
