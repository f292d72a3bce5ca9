// Package spk implements the zero-knowledge toolkit shared by every engine
// in this core (spec.md §4.2): Fiat–Shamir Signatures of Knowledge of a
// single discrete log, of a linear representation over several bases, and
// of a pairing-homomorphism discrete log. Every scheme's Sign/Verify/Open
// builds its proof by constructing the base/exponent tables this package's
// generic SPK-REP consumes, per the REDESIGN FLAG of spec.md §9 ("a single
// generic SPK-REP implementation parameterized by the base/exponent index
// tables; per-scheme wrappers only construct those tables").
package spk

import (
	"crypto/sha1" //nolint:gosec // legacy hash explicitly required by spec.md §6
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// HashAlgorithm selects the hash a given SPK instance is fixed to, per
// spec.md §6: "Each SPK fixes its hash; implementations must not
// substitute." SHA-1 is kept only for legacy schemes (KTY04); it is the one
// place in this module that reaches for crypto/sha1 directly rather than a
// pack dependency, because no library in the reference pack wraps SHA-1
// any better than the standard library already does.
type HashAlgorithm int

const (
	SHA256 HashAlgorithm = iota
	SHA1
	BLAKE2
)

// New returns a fresh hash.Hash for the algorithm.
func (h HashAlgorithm) New() hash.Hash {
	switch h {
	case SHA1:
		return sha1.New() //nolint:gosec // legacy, spec-mandated
	case BLAKE2:
		d, _ := blake2b.New256(nil)
		return d
	default:
		return sha256.New()
	}
}

func (h HashAlgorithm) String() string {
	switch h {
	case SHA1:
		return "SHA1"
	case BLAKE2:
		return "BLAKE2"
	default:
		return "SHA256"
	}
}
