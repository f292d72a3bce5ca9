package pairing

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/drand/kyber"
)

// MarshalElement returns the canonical encoding of a present group element,
// or a zero-length slice for an absent one, per the length-0 "absent"
// sentinel of spec.md §4.3/§6.
func MarshalElement(e kyber.Marshaling) ([]byte, error) {
	if e == nil {
		return nil, nil
	}
	return e.MarshalBinary()
}

// UnmarshalPoint parses buf into a fresh point of group's type, or returns
// (nil, nil) if buf is empty — the "absent field" reconstruction spec.md
// §4.3 requires ("importers must reconstruct the absent state, not a
// default element").
func UnmarshalPoint(group kyber.Group, buf []byte) (kyber.Point, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	p := group.Point()
	if err := p.UnmarshalBinary(buf); err != nil {
		return nil, fmt.Errorf("pairing: malformed element: %w", err)
	}
	return p, nil
}

// UnmarshalScalar parses buf into a fresh scalar of group's type, or
// returns (nil, nil) if buf is empty.
func UnmarshalScalar(group kyber.Group, buf []byte) (kyber.Scalar, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	s := group.Scalar()
	if err := s.UnmarshalBinary(buf); err != nil {
		return nil, fmt.Errorf("pairing: malformed scalar: %w", err)
	}
	return s, nil
}

// ToBase64 renders buf as base64 text, wrapping at 72 characters when wrap
// is requested. This is the to_string contract of spec.md §6: "wraps at 72
// chars only if a newline flag is set".
func ToBase64(buf []byte, wrap bool) string {
	s := base64.StdEncoding.EncodeToString(buf)
	if !wrap {
		return s
	}
	const lineLen = 72
	var b strings.Builder
	for i := 0; i < len(s); i += lineLen {
		end := i + lineLen
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
		if end < len(s) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FromBase64 is the inverse of ToBase64; it tolerates embedded newlines so
// that wrapped and unwrapped strings both parse.
func FromBase64(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, "\n", "")
	return base64.StdEncoding.DecodeString(s)
}
