package groupsig

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// Entry is one member's opener-facing record, appended during Join and
// consulted during Open (spec.md §3/§4.4). Its Data payload is whatever the
// owning scheme needs to recognize its own signatures against: BBS04
// stores a tracing point A∈G1; PS16 an opener-independent tag τ̃∈G2;
// KLAP20 the tag plus the opener's NIZK binding it to the member; the
// GL19/DL21 family typically leaves Data empty, since those schemes have
// no centralized opener. GML itself stays opaque to this shape so it does
// not need a vtable of its own — only the owning scheme's codec does.
type Entry struct {
	Index uint64
	Data  []byte
}

// GML is the append-only Group Membership List of spec.md §4.4. Per spec.md
// §5 it is *not* internally synchronized: "The GML is not thread-safe;
// callers serialize writes." Use LockedGML (below) for a synchronized
// wrapper when that is convenient.
type GML struct {
	Scheme  Code
	entries []*Entry // a removed slot is nil; its index must never be reused
}

// NewGML creates an empty membership list for scheme.
func NewGML(scheme Code) *GML {
	return &GML{Scheme: scheme}
}

// Insert appends a new entry and returns its index.
func (g *GML) Insert(data []byte) uint64 {
	idx := uint64(len(g.entries))
	g.entries = append(g.entries, &Entry{Index: idx, Data: data})
	return idx
}

// Get returns the entry at index, or (nil, false) if it was removed or
// never existed.
func (g *GML) Get(index uint64) (*Entry, bool) {
	if index >= uint64(len(g.entries)) {
		return nil, false
	}
	e := g.entries[index]
	if e == nil {
		return nil, false
	}
	return e, true
}

// Remove marks the slot at index null without reusing it, per spec.md
// §4.4: "remove(index) (marks the slot null — index must not be reused)".
func (g *GML) Remove(index uint64) error {
	if index >= uint64(len(g.entries)) {
		return fmt.Errorf("groupsig: gml index %d out of range", index)
	}
	g.entries[index] = nil
	return nil
}

// Len returns the number of slots, including removed ones — this equals
// the number of successful join-mgr completions, per spec.md §3's
// invariant on GML length.
func (g *GML) Len() int { return len(g.entries) }

// Iterate calls fn for every live (non-removed) entry in index order,
// stopping early if fn returns false.
func (g *GML) Iterate(fn func(*Entry) bool) {
	for _, e := range g.entries {
		if e == nil {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Export encodes the whole list as scheme-byte, count, then one
// length-prefixed field per slot (an empty field for a removed slot).
func (g *GML) Export() []byte {
	w := NewWriter(g.Scheme)
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], uint64(len(g.entries)))
	w.Field(countBuf[:])
	for _, e := range g.entries {
		if e == nil {
			w.Field(nil)
			continue
		}
		w.Field(e.Data)
	}
	return w.Bytes()
}

// ImportGMLForScheme decodes a list previously produced by Export, for a
// known scheme.
func ImportGMLForScheme(scheme Code, buf []byte) (*GML, error) {
	r, err := NewReader(buf, scheme)
	if err != nil {
		return nil, err
	}
	countField := r.Field()
	if len(countField) != 8 {
		return nil, fmt.Errorf("%w: gml count field must be 8 bytes", ErrTruncated)
	}
	count := binary.LittleEndian.Uint64(countField)
	g := NewGML(scheme)
	for i := uint64(0); i < count; i++ {
		data := r.Field()
		if data == nil {
			g.entries = append(g.entries, nil)
			continue
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		g.entries = append(g.entries, &Entry{Index: i, Data: cp})
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return g, nil
}

// LockedGML wraps a GML with a mutex so insert/remove can be called safely
// from multiple goroutines, matching spec.md §5's requirement that GML
// mutation be externally excluded. Grounded on the teacher's
// common/crypto/vault.Vault, which wraps its own mutable signing state
// (share, group, chain info) the same way: one RWMutex, read methods take
// RLock, both write paths (Insert, Remove) take Lock.
type LockedGML struct {
	mu   sync.RWMutex
	list *GML
}

// NewLockedGML wraps an existing GML.
func NewLockedGML(g *GML) *LockedGML {
	return &LockedGML{list: g}
}

func (l *LockedGML) Insert(data []byte) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Insert(data)
}

func (l *LockedGML) Remove(index uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Remove(index)
}

func (l *LockedGML) Get(index uint64) (*Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.list.Get(index)
}

func (l *LockedGML) Iterate(fn func(*Entry) bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.list.Iterate(fn)
}

func (l *LockedGML) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.list.Len()
}

func (l *LockedGML) Export() []byte {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.list.Export()
}
