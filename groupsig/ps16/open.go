package ps16

import (
	"fmt"

	"github.com/drand/kyber"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
	"github.com/groupsig-go/groupsig/spk"
)

// OpenProof is PS16's verifiable-opening proof: an SPK-Pairing-
// Homomorphism proof of the manager's y such that A = e(σ1', τ̃)^y, plus
// τ̃ itself so a verifier who holds neither y nor the GML can still
// recompute the check, per spec.md §4.6: "verifiable opening."
type OpenProof struct {
	Tau   kyber.Point
	Proof *spk.PairingHomProof
}

func (p *OpenProof) SchemeCode() groupsig.Code { return groupsig.PS16 }

// Export encodes (τ̃, challenge, response).
func (p *OpenProof) Export() []byte {
	w := groupsig.NewWriter(groupsig.PS16)
	tb, _ := p.Tau.MarshalBinary()
	cb, _ := p.Proof.Challenge.MarshalBinary()
	rb, _ := p.Proof.Response.MarshalBinary()
	w.Field(tb)
	w.Field(cb)
	w.Field(rb)
	return w.Bytes()
}

func openTarget(suite *pairing.Suite, gk *GroupKey, sig *Signature) kyber.Point {
	return suite.GT().Point().Add(
		suite.Pair(sig.Sigma2, gk.G2),
		suite.GT().Point().Neg(suite.Pair(sig.Sigma1, gk.Xtilde)),
	)
}

// Open identifies the signer of sig, per spec.md §4.6: compute A, then
// scan the GML for an entry whose tag τ̃_i satisfies e(σ1', τ̃_i)^y = A.
// The matching entry's τ̃ and the manager's y form exactly the pairing
// homomorphism x ↦ e(σ1', τ̃^x) spk.ProvePairingHom was built for.
func Open(suite *pairing.Suite, gk *GroupKey, mk *ManagerKey, sig *Signature, gml *groupsig.GML) (groupsig.Identity, *OpenProof, error) {
	a := openTarget(suite, gk, sig)

	var (
		found    groupsig.Identity
		matchTau kyber.Point
		matched  bool
	)
	gml.Iterate(func(e *groupsig.Entry) bool {
		tau := suite.G2().Point()
		if err := tau.UnmarshalBinary(e.Data); err != nil {
			return true
		}
		b := suite.GT().Point().Mul(mk.Y, suite.Pair(sig.Sigma1, tau))
		if b.Equal(a) {
			found = groupsig.NewIndexIdentity(groupsig.PS16, e.Index)
			matchTau = tau
			matched = true
			return false
		}
		return true
	})
	if !matched {
		return groupsig.Identity{}, nil, groupsig.ErrNotFound
	}

	proof, err := spk.ProvePairingHom(
		suite.G2(), suite.GT(), suite.G1(), spk.SHA256, suite.Pair,
		sig.Sigma1, matchTau, mk.Y, a, nil,
	)
	if err != nil {
		return groupsig.Identity{}, nil, fmt.Errorf("ps16: open: %w", err)
	}
	return found, &OpenProof{Tau: matchTau, Proof: proof}, nil
}

// OpenVerify checks an OpenProof produced by Open without needing the
// manager key or the GML (spec.md §4.6's "verifiable opening").
func OpenVerify(suite *pairing.Suite, gk *GroupKey, sig *Signature, proof *OpenProof) (groupsig.Outcome, error) {
	a := openTarget(suite, gk, sig)
	ok, err := spk.VerifyPairingHom(
		suite.G2(), suite.GT(), spk.SHA256, suite.Pair,
		sig.Sigma1, proof.Tau, a, nil, proof.Proof,
	)
	if err != nil {
		return groupsig.Reject, fmt.Errorf("ps16: open-verify: %w", err)
	}
	return groupsig.OutcomeOf(ok), nil
}
