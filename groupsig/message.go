package groupsig

import "encoding/json"

// Message is the opaque (bytes, length) payload of spec.md §3. Every
// signing/verification entry point takes one of these rather than a bare
// []byte so that the JSON field-extraction helper has somewhere to live.
type Message struct {
	Bytes []byte
}

// NewMessage wraps raw bytes as a Message.
func NewMessage(b []byte) Message { return Message{Bytes: b} }

// Len returns the message length in bytes.
func (m Message) Len() int { return len(m.Bytes) }

// ExtractField pulls a single top-level field out of a JSON-encoded
// message, returning its raw JSON bytes. This is the "some operations also
// support JSON field extraction" facility of spec.md §3; it is grounded on
// encoding/json since no library in the reference pack does ad hoc single
// field extraction any better than the standard decoder.
func (m Message) ExtractField(name string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(m.Bytes, &fields); err != nil {
		return nil, err
	}
	v, ok := fields[name]
	if !ok {
		return nil, ErrMissingField
	}
	return []byte(v), nil
}
