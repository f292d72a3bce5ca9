package groupsig

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Identity is the result of a successful Open: an opaque handle on the
// member who issued a signature. For every pairing scheme this core fully
// implements (BBS04, PS16, KLAP20, GL19/DL21 family) it is nothing more
// than the member's index into the GML (spec.md §3). The KTY04 arm is kept
// only so the sum type stays exhaustive for a legacy, non-pairing scheme
// whose identities are RSA-group big integers rather than vector indices
// (see SPEC_FULL.md §4); KTY04 itself is not implemented beyond this shape.
type Identity struct {
	Scheme Code
	Index  uint64
	Big    *big.Int  // KTY04 and CPY06 only
	UUID   uuid.UUID // KTY04 only: stable external handle for a revoked/legacy identity
}

// NewIndexIdentity builds the common case: an Identity backed by a plain
// GML index.
func NewIndexIdentity(scheme Code, index uint64) Identity {
	return Identity{Scheme: scheme, Index: index}
}

func (id Identity) String() string {
	switch id.Scheme {
	case KTY04, CPY06:
		return fmt.Sprintf("%s:%s", id.Scheme, id.Big.String())
	default:
		return fmt.Sprintf("%s:%d", id.Scheme, id.Index)
	}
}

// Equal compares two identities of the same scheme.
func (id Identity) Equal(o Identity) bool {
	if id.Scheme != o.Scheme {
		return false
	}
	switch id.Scheme {
	case KTY04, CPY06:
		if id.Big == nil || o.Big == nil {
			return id.Big == o.Big
		}
		return id.Big.Cmp(o.Big) == 0
	default:
		return id.Index == o.Index
	}
}

// Export encodes the identity using the canonical wire format.
func (id Identity) Export() []byte {
	w := NewWriter(id.Scheme)
	switch id.Scheme {
	case KTY04, CPY06:
		var b []byte
		if id.Big != nil {
			b = id.Big.Bytes()
		}
		w.Field(b)
	default:
		var idx [8]byte
		for i := 0; i < 8; i++ {
			idx[i] = byte(id.Index >> (8 * i))
		}
		w.Field(idx[:])
	}
	return w.Bytes()
}

// ImportIdentity decodes an Identity previously produced by Export.
func ImportIdentity(scheme Code, buf []byte) (Identity, error) {
	r, err := NewReader(buf, scheme)
	if err != nil {
		return Identity{}, err
	}
	field := r.Field()
	if err := r.Done(); err != nil {
		return Identity{}, err
	}
	id := Identity{Scheme: scheme}
	switch scheme {
	case KTY04, CPY06:
		id.Big = new(big.Int).SetBytes(field)
	default:
		if len(field) != 8 {
			return Identity{}, fmt.Errorf("%w: identity index must be 8 bytes", ErrTruncated)
		}
		var idx uint64
		for i := 0; i < 8; i++ {
			idx |= uint64(field[i]) << (8 * i)
		}
		id.Index = idx
	}
	return id, nil
}
