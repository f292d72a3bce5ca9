package groupsig

import (
	"encoding/binary"
	"fmt"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/groupsig-go/groupsig/pairing"
)

// Writer builds the canonical wire format of spec.md §4.3/§6:
//
//	[scheme:1 byte] [type:1 byte if key]
//	for each field: [len:4 LE][data]
//
// A field with zero length is the "absent" sentinel; present fields are
// always length-prefixed even when their underlying element has a fixed
// size, exactly as spec.md §4.3 requires.
type Writer struct {
	buf []byte
}

// NewWriter starts a new object encoding with the mandatory scheme byte.
func NewWriter(code Code) *Writer {
	w := &Writer{buf: make([]byte, 0, 256)}
	w.buf = append(w.buf, byte(code))
	return w
}

// NewKeyWriter starts a new key encoding with the scheme byte followed by
// the key-type byte (spec.md §3).
func NewKeyWriter(code Code, kt KeyType) *Writer {
	w := NewWriter(code)
	w.buf = append(w.buf, byte(kt))
	return w
}

// Field appends one length-prefixed field; an empty or nil slice encodes
// the "absent" sentinel.
func (w *Writer) Field(data []byte) *Writer {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	w.buf = append(w.buf, lenBuf[:]...)
	w.buf = append(w.buf, data...)
	return w
}

// Bytes returns the finished canonical encoding. Exporters must not hand
// back a partial buffer on failure (spec.md §4.3); callers should only call
// Bytes after every Field call has succeeded.
func (w *Writer) Bytes() []byte { return w.buf }

// Size reports the exact number of bytes Bytes() would return, satisfying
// the "get_size(x) = len(export(x))" testable property of spec.md §8.
func (w *Writer) Size() int { return len(w.buf) }

// Reader parses the canonical wire format, validating the scheme (and,
// for keys, key-type) tag up front and rejecting any attempt to read past
// the supplied buffer.
type Reader struct {
	buf    []byte
	off    int
	errs   *multierror.Error
	scheme Code
}

// NewReader validates the leading scheme byte against want and returns a
// Reader over the remainder, or an error if the tag mismatches (spec.md
// §4.3: "Error on import if scheme byte does not match expected").
func NewReader(buf []byte, want Code) (*Reader, error) {
	if len(buf) < 1 {
		return nil, fmt.Errorf("%w: empty buffer", ErrTruncated)
	}
	got := Code(buf[0])
	if got != want {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrSchemeMismatch, got, want)
	}
	return &Reader{buf: buf, off: 1, scheme: got}, nil
}

// NewKeyReader additionally validates the key-type byte.
func NewKeyReader(buf []byte, want Code, wantType KeyType) (*Reader, error) {
	r, err := NewReader(buf, want)
	if err != nil {
		return nil, err
	}
	if r.off >= len(r.buf) {
		return nil, fmt.Errorf("%w: missing key-type byte", ErrTruncated)
	}
	got := KeyType(r.buf[r.off])
	if got != wantType {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrKeyTypeMismatch, got, wantType)
	}
	r.off++
	return r, nil
}

// Field reads the next length-prefixed field, returning a nil slice for an
// absent (length-0) field. Any attempt to read past the buffer is recorded
// and surfaced by Err, accumulating every such violation via go-multierror
// so a single Err call reports them all instead of only the first.
func (r *Reader) Field() []byte {
	if r.off+4 > len(r.buf) {
		r.errs = multierror.Append(r.errs, fmt.Errorf("%w: missing length prefix at offset %d", ErrTruncated, r.off))
		return nil
	}
	n := binary.LittleEndian.Uint32(r.buf[r.off : r.off+4])
	r.off += 4
	if uint64(r.off)+uint64(n) > uint64(len(r.buf)) {
		r.errs = multierror.Append(r.errs, fmt.Errorf("%w: field length %d exceeds remaining buffer", ErrTruncated, n))
		return nil
	}
	field := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	if n == 0 {
		return nil
	}
	return field
}

// Done reports whether the entire buffer was consumed, and whether any
// field read failed. Importers must call this after reading every field
// (spec.md §4.3: "the full buffer is consumed exactly").
func (r *Reader) Done() error {
	if err := r.Err(); err != nil {
		return err
	}
	if r.off != len(r.buf) {
		return fmt.Errorf("%w: %d trailing bytes", ErrTruncated, len(r.buf)-r.off)
	}
	return nil
}

// Err returns the accumulated field-read errors, or nil if none occurred.
func (r *Reader) Err() error {
	if r.errs == nil {
		return nil
	}
	return r.errs.ErrorOrNil()
}

// Exportable is satisfied by every polymorphic object kind this package
// dispatches on (GroupKey, ManagerKey, MemberKey, Signature, Proof all
// already declare Export() []byte); ToString needs nothing more.
type Exportable interface {
	Export() []byte
}

// ToString renders any exportable object's canonical export as base64,
// the to-string handle spec.md §4.3/§6 gives every object kind
// ("printable, typically base64 of export"). newline wraps the result at
// 72 characters, mirroring the original shim's line-wrap flag.
func ToString(o Exportable, newline bool) string {
	return pairing.ToBase64(o.Export(), newline)
}
