package ps16

import (
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
	"github.com/groupsig-go/groupsig/spk"
)

// Signature is PS16's randomized credential (σ1', σ2') plus an SPK-DLOG
// proving knowledge of sk, per spec.md §4.6.
type Signature struct {
	Sigma1 kyber.Point
	Sigma2 kyber.Point
	Proof  *spk.DLogProof
}

func (s *Signature) SchemeCode() groupsig.Code { return groupsig.PS16 }

// Export encodes (σ1', σ2', challenge, response).
func (s *Signature) Export() []byte {
	w := groupsig.NewWriter(groupsig.PS16)
	s1b, _ := s.Sigma1.MarshalBinary()
	s2b, _ := s.Sigma2.MarshalBinary()
	cb, _ := s.Proof.Challenge.MarshalBinary()
	rb, _ := s.Proof.Response.MarshalBinary()
	w.Field(s1b)
	w.Field(s2b)
	w.Field(cb)
	w.Field(rb)
	return w.Bytes()
}

// Sign produces a PS16 signature of msg under mk, per spec.md §4.6:
// rerandomize (σ1, σ2) by a fresh r, then prove knowledge of sk such that
// e(σ2', g̃)/e(σ1', X̃) = e(σ1', Ỹ)^sk.
func Sign(suite *pairing.Suite, gk *GroupKey, mk *MemberKey, msg groupsig.Message) (*Signature, error) {
	r := suite.G1().Scalar().Pick(random.New())
	sigma1 := suite.G1().Point().Mul(r, mk.Sigma1)
	sigma2 := suite.G1().Point().Mul(r, mk.Sigma2)

	base := suite.Pair(sigma1, gk.Ytilde)
	target := suite.GT().Point().Add(
		suite.Pair(sigma2, gk.G2),
		suite.GT().Point().Neg(suite.Pair(sigma1, gk.Xtilde)),
	)

	proof, err := spk.ProveDLog(suite.GT(), spk.SHA256, base, target, mk.Sk, msg.Bytes)
	if err != nil {
		return nil, fmt.Errorf("ps16: sign: %w", err)
	}
	return &Signature{Sigma1: sigma1, Sigma2: sigma2, Proof: proof}, nil
}

// Verify checks sig against msg under gk, per spec.md §4.6: σ1' must be
// non-identity and the SPK must verify.
func Verify(suite *pairing.Suite, gk *GroupKey, sig *Signature, msg groupsig.Message) (groupsig.Outcome, error) {
	if sig.Sigma1.Equal(suite.G1().Point().Null()) {
		return groupsig.Reject, nil
	}
	base := suite.Pair(sig.Sigma1, gk.Ytilde)
	target := suite.GT().Point().Add(
		suite.Pair(sig.Sigma2, gk.G2),
		suite.GT().Point().Neg(suite.Pair(sig.Sigma1, gk.Xtilde)),
	)
	ok, err := spk.VerifyDLog(suite.GT(), spk.SHA256, base, target, msg.Bytes, sig.Proof)
	if err != nil {
		return groupsig.Reject, fmt.Errorf("ps16: verify: %w", err)
	}
	return groupsig.OutcomeOf(ok), nil
}
