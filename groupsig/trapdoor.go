package groupsig

import "math/big"

// Trapdoor is the scheme-specific secret that lets its holder recognize a
// specific signer's signatures outside of the normal Open path (spec.md
// §3, GLOSSARY). Only CRL-capable legacy schemes populate one; the pairing
// engines in this core (BBS04, PS16, KLAP20, GL19/DL21 family) have no
// revocation-by-trapdoor and report ErrUnsupported for Trace,
// per spec.md §4.1's "recognizable unsupported outcome" requirement.
type Trapdoor struct {
	Scheme Code
	Big    *big.Int // KTY04 only
}

// Export encodes the trapdoor using the canonical wire format.
func (t Trapdoor) Export() []byte {
	w := NewWriter(t.Scheme)
	var b []byte
	if t.Big != nil {
		b = t.Big.Bytes()
	}
	w.Field(b)
	return w.Bytes()
}

// ImportTrapdoor decodes a Trapdoor previously produced by Export.
func ImportTrapdoor(scheme Code, buf []byte) (Trapdoor, error) {
	r, err := NewReader(buf, scheme)
	if err != nil {
		return Trapdoor{}, err
	}
	field := r.Field()
	if err := r.Done(); err != nil {
		return Trapdoor{}, err
	}
	t := Trapdoor{Scheme: scheme}
	if len(field) > 0 {
		t.Big = new(big.Int).SetBytes(field)
	}
	return t, nil
}
