// Package groupsig implements the scheme-dispatch layer, object model, and
// membership bookkeeping described in spec.md: a uniform API over several
// pairing-based group-signature schemes (BBS04, PS16, KLAP20, GL19/DL21),
// each implemented in its own sub-package and reached only through the
// registry in this package. Grounded on the teacher's crypto/schemes.go,
// which plays the identical role for drand's own family of BLS beacon
// schemes (dispatch on a scheme identifier, one constructor per concrete
// scheme, a lookup table keyed by name/code).
package groupsig

import "fmt"

// Code is the 8-bit scheme identifier carried by every polymorphic object,
// per spec.md §3/§6. The set is closed and stable.
type Code uint8

const (
	BBS04 Code = iota + 1
	CPY06
	GL19
	PS16
	KLAP20
	DL21
	DL21SEQ
	KTY04
)

func (c Code) String() string {
	switch c {
	case BBS04:
		return "BBS04"
	case CPY06:
		return "CPY06"
	case GL19:
		return "GL19"
	case PS16:
		return "PS16"
	case KLAP20:
		return "KLAP20"
	case DL21:
		return "DL21"
	case DL21SEQ:
		return "DL21SEQ"
	case KTY04:
		return "KTY04"
	default:
		return fmt.Sprintf("Code(%d)", uint8(c))
	}
}

// Valid reports whether c is one of the closed set of scheme codes.
func (c Code) Valid() bool {
	return c >= BBS04 && c <= KTY04
}

// KeyType is the second byte carried by serialized keys, distinguishing the
// role a key plays within a scheme (spec.md §3).
type KeyType uint8

const (
	GroupKeyType KeyType = iota
	ManagerKeyType
	MemberKeyType
	BlindingKeyType
)

func (t KeyType) String() string {
	switch t {
	case GroupKeyType:
		return "GroupKey"
	case ManagerKeyType:
		return "ManagerKey"
	case MemberKeyType:
		return "MemberKey"
	case BlindingKeyType:
		return "BlindingKey"
	default:
		return fmt.Sprintf("KeyType(%d)", uint8(t))
	}
}
