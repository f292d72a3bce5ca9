// Package pairing wraps the bilinear-pairing group arithmetic this core
// depends on but does not implement. It plays the role spec.md §1 calls
// the "pairing abstraction (consumed)": scalars in Fr, points in G1/G2/GT,
// a pairing e: G1×G2 → GT, hashing into Fr, and canonical fixed-size
// serialization. Grounded on the teacher's crypto/schemes.go, which wires
// the same kyber + kyber-bls12381 pair for drand's own BLS signatures.
package pairing

import (
	"crypto/sha256"

	"github.com/drand/kyber"
	bls "github.com/drand/kyber-bls12381"
	"github.com/drand/kyber/util/random"
)

// Canonical compressed-element byte sizes on BLS12-381, per spec.md §6.
const (
	SizeFr = 32
	SizeG1 = 48
	SizeG2 = 96
	SizeGT = 576
)

var defaultDST1 = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_GROUPSIG_")
var defaultDST2 = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_GROUPSIG_")

// Suite bundles the three groups of a BLS12-381-like pairing plus the
// pairing map itself. Every engine package (bbs04, ps16, klap20, gl19, dl21)
// takes a *Suite rather than reaching for the underlying library directly,
// so the pairing library stays swappable behind this one seam.
type Suite struct {
	inner *bls.Suite
}

// NewSuite returns the default BLS12-381 pairing suite used throughout this
// module. There is exactly one pairing-friendly curve in scope (spec.md §1
// fixes a BLS12-381-like curve), so unlike the teacher's multi-scheme
// NewPedersenBLS* family there is nothing to select between here.
func NewSuite() *Suite {
	return &Suite{inner: bls.NewBLS12381SuiteWithDST(defaultDST1, defaultDST2)}
}

// G1 returns the short (48-byte) group.
func (s *Suite) G1() kyber.Group { return s.inner.G1() }

// G2 returns the long (96-byte) group.
func (s *Suite) G2() kyber.Group { return s.inner.G2() }

// GT returns the target (576-byte) group.
func (s *Suite) GT() kyber.Group { return s.inner.GT() }

// Pair computes e(p1, p2) where p1 ∈ G1 and p2 ∈ G2.
func (s *Suite) Pair(p1, p2 kyber.Point) kyber.Point {
	return s.inner.Pair(p1, p2)
}

// RandomScalar draws a fresh element of Fr using the pairing library's
// cryptographically secure stream, mirroring how the teacher draws DKG and
// signing randomness (common/key/keys.go's use of util/random.New()).
func (s *Suite) RandomScalar() kyber.Scalar {
	return s.G1().Scalar().Pick(random.New())
}

// HashToFr reduces an arbitrary byte string into Fr by SHA-256-ing it and
// letting the scalar's own SetBytes perform the modular reduction, which is
// how kyber's underlying mod.Int scalars are documented to behave. This is
// the "hashing to Fr" facility spec.md §1 expects the pairing library to
// expose; BLAKE2/SHA-1 variants live in the spk package's HashAlgorithm,
// not here, since only this one reduction is pairing-group-specific.
func (s *Suite) HashToFr(data []byte) kyber.Scalar {
	h := sha256.Sum256(data)
	return s.G1().Scalar().SetBytes(h[:])
}

// HashToG1 maps an arbitrary byte string onto a point in G1. Used by the
// DL21 family to derive a scope-bound pseudonym base (spec.md §4.8,
// nym = Hash-to-G1(scope)^y). kyber-bls12381's G1 points implement
// kyber.HashablePoint; this delegates to it rather than hand-rolling a
// hash-to-curve map, per spec.md §1's explicit "delegates hash-to-curve".
func (s *Suite) HashToG1(data []byte) kyber.Point {
	hp := s.G1().Point().(kyber.HashablePoint)
	return hp.Hash(data)
}
