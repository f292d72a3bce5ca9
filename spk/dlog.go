package spk

import (
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"
)

// DLogProof is a Fiat–Shamir proof of knowledge of x with y = g^x in some
// group H (G1, G2, or GT — spec.md §4.2: "H may be G1, G2, or GT; all
// three instantiations are required").
type DLogProof struct {
	Challenge kyber.Scalar
	Response  kyber.Scalar
}

func dlogChallenge(group kyber.Group, alg HashAlgorithm, y, g, t kyber.Point, msg []byte) (kyber.Scalar, error) {
	h := alg.New()
	for _, elt := range []kyber.Point{y, g, t} {
		b, err := elt.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("spk: marshal dlog element: %w", err)
		}
		h.Write(b)
	}
	h.Write(msg)
	return group.Scalar().SetBytes(h.Sum(nil)), nil
}

// ProveDLog proves knowledge of x such that y = g^x, binding the proof to
// msg. Exact algorithm per spec.md §4.2: pick r, T = g^r, c =
// Hash(y‖g‖T‖msg), s = r - c·x.
func ProveDLog(group kyber.Group, alg HashAlgorithm, g, y kyber.Point, x kyber.Scalar, msg []byte) (*DLogProof, error) {
	r := group.Scalar().Pick(random.New())
	t := group.Point().Mul(r, g)
	c, err := dlogChallenge(group, alg, y, g, t, msg)
	if err != nil {
		return nil, err
	}
	s := group.Scalar().Sub(r, group.Scalar().Mul(c, x))
	return &DLogProof{Challenge: c, Response: s}, nil
}

// VerifyDLog checks a proof produced by ProveDLog: recompute T' = y^c·g^s
// and accept iff c = Hash(y‖g‖T'‖msg).
func VerifyDLog(group kyber.Group, alg HashAlgorithm, g, y kyber.Point, msg []byte, proof *DLogProof) (bool, error) {
	if proof == nil || proof.Challenge == nil || proof.Response == nil {
		return false, fmt.Errorf("spk: incomplete dlog proof")
	}
	tPrime := group.Point().Add(
		group.Point().Mul(proof.Challenge, y),
		group.Point().Mul(proof.Response, g),
	)
	cPrime, err := dlogChallenge(group, alg, y, g, tPrime, msg)
	if err != nil {
		return false, err
	}
	return cPrime.Equal(proof.Challenge), nil
}
