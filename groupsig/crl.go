package groupsig

import "fmt"

// CRLEntry pairs an Identity with the Trapdoor that lets a verifier
// recognize that member's signatures going forward (spec.md §3,
// GLOSSARY). Only schemes supporting revocation-by-trapdoor populate one;
// among the schemes this core implements, none do (KTY04 is the only
// trapdoor-revocable scheme in the original source and is out of scope per
// SPEC_FULL.md §4), so CRL exists to keep the object model complete and to
// return ErrUnsupported cleanly rather than omit the type.
type CRLEntry struct {
	Identity Identity
	Trapdoor Trapdoor
}

// CRL is an append-only Certificate Revocation List (spec.md §3/§4.4).
type CRL struct {
	Scheme  Code
	entries []*CRLEntry
}

// NewCRL creates an empty revocation list for scheme.
func NewCRL(scheme Code) *CRL {
	return &CRL{Scheme: scheme}
}

// Insert appends a revocation entry.
func (c *CRL) Insert(e *CRLEntry) error {
	if e.Identity.Scheme != c.Scheme || e.Trapdoor.Scheme != c.Scheme {
		return ErrSchemeMismatch
	}
	c.entries = append(c.entries, e)
	return nil
}

// Contains reports whether id has been revoked.
func (c *CRL) Contains(id Identity) bool {
	for _, e := range c.entries {
		if e.Identity.Equal(id) {
			return true
		}
	}
	return false
}

// Len returns the number of revocation entries.
func (c *CRL) Len() int { return len(c.entries) }

// Export encodes the list as scheme byte, then one pair of length-prefixed
// fields (identity, trapdoor) per entry; no entry count is written, and the
// importer reads pairs until the buffer ends.
func (c *CRL) Export() []byte {
	w := NewWriter(c.Scheme)
	for _, e := range c.entries {
		w.Field(e.Identity.Export())
		w.Field(e.Trapdoor.Export())
	}
	return w.Bytes()
}

// ImportCRLForScheme decodes a list previously produced by Export.
func ImportCRLForScheme(scheme Code, buf []byte) (*CRL, error) {
	r, err := NewReader(buf, scheme)
	if err != nil {
		return nil, err
	}
	c := NewCRL(scheme)
	for r.off < len(r.buf) {
		idBuf := r.Field()
		tdBuf := r.Field()
		if err := r.Err(); err != nil {
			return nil, err
		}
		id, err := ImportIdentity(scheme, idBuf)
		if err != nil {
			return nil, fmt.Errorf("crl: identity: %w", err)
		}
		td, err := ImportTrapdoor(scheme, tdBuf)
		if err != nil {
			return nil, fmt.Errorf("crl: trapdoor: %w", err)
		}
		c.entries = append(c.entries, &CRLEntry{Identity: id, Trapdoor: td})
	}
	return c, nil
}
