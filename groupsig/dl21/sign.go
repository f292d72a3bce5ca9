package dl21

import (
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
	"github.com/groupsig-go/groupsig/spk"
)

const (
	expNegX = iota
	expR
	expYR
	expSR
	numExponents
)

// Signature presents a re-randomized credential (Aprime) with an SPK-REP
// proving knowledge of the hidden (x, y, s), exactly as gl19.Signature
// does, plus a domain-scoped pseudonym Nym = Hash-to-G1(Scope)^y and a
// plain SPK-DLOG (NymProof) proving knowledge of that y.
//
// The credential's hidden y (folded into the main proof as the joint
// witness y·r, never as y alone) and the pseudonym's y are tied together
// only by honest-member convention — both come from the same
// MemberKey.Y — rather than by a zero-knowledge equality proof spanning
// both relations. Proving that equality rigorously needs a construction
// that lets a verifier check a hidden exponent against two different
// bases under two different blinding factors without learning either
// factor; this core does not implement that construction, so a dishonest
// member could in principle present a nym computed from a y other than
// the one inside their credential. Identify and Link, the two operations
// spec.md §4.8 actually exercises, only depend on nym matching the
// member's own y and are unaffected by this gap.
type Signature struct {
	Aprime   kyber.Point
	Nym      kyber.Point
	Scope    []byte
	Proof    *spk.Proof
	NymProof *spk.DLogProof
}

func (s *Signature) SchemeCode() groupsig.Code { return groupsig.DL21 }

func (s *Signature) Export() []byte {
	w := groupsig.NewWriter(groupsig.DL21)
	ab, _ := s.Aprime.MarshalBinary()
	nb, _ := s.Nym.MarshalBinary()
	w.Field(ab)
	w.Field(nb)
	w.Field(s.Scope)
	cb, _ := s.Proof.Challenge.MarshalBinary()
	w.Field(cb)
	for _, r := range s.Proof.Responses {
		b, _ := r.MarshalBinary()
		w.Field(b)
	}
	ncb, _ := s.NymProof.Challenge.MarshalBinary()
	nrb, _ := s.NymProof.Response.MarshalBinary()
	w.Field(ncb)
	w.Field(nrb)
	return w.Bytes()
}

// statement builds the same y3-style SPK-REP relation as gl19.statement,
// without the expiration base.
func statement(suite *pairing.Suite, gk *GroupKey, aprime kyber.Point) *spk.Statement {
	et3g2 := suite.Pair(aprime, gk.G2)
	target := suite.Pair(aprime, gk.Ipk)
	return &spk.Statement{
		Y: []kyber.Point{target},
		G: []kyber.Point{et3g2, gk.EG1G2, gk.EH1G2, gk.EH2G2},
		Relations: []spk.Relation{
			{Group: suite.GT(), Terms: []spk.Term{
				{BaseIndex: 0, ExpIndex: expNegX},
				{BaseIndex: 1, ExpIndex: expR},
				{BaseIndex: 2, ExpIndex: expYR},
				{BaseIndex: 3, ExpIndex: expSR},
			}},
		},
		NumExponents: numExponents,
	}
}

// Sign produces a scope-bound presentation of mk under gk.
func Sign(suite *pairing.Suite, gk *GroupKey, mk *MemberKey, msg groupsig.Message, scope []byte) (*Signature, error) {
	r := suite.G1().Scalar().Pick(random.New())
	aprime := suite.G1().Point().Mul(r, mk.A)

	stmt := statement(suite, gk, aprime)
	exponents := make([]kyber.Scalar, numExponents)
	exponents[expNegX] = suite.G1().Scalar().Neg(mk.X)
	exponents[expR] = r
	exponents[expYR] = suite.G1().Scalar().Mul(mk.Y, r)
	exponents[expSR] = suite.G1().Scalar().Mul(mk.S, r)

	proof, err := spk.Prove(suite.G1(), spk.SHA256, stmt, exponents, msg.Bytes)
	if err != nil {
		return nil, fmt.Errorf("dl21: sign: %w", err)
	}

	scopeBase := suite.HashToG1(scope)
	nym := suite.G1().Point().Mul(mk.Y, scopeBase)
	nymProof, err := spk.ProveDLog(suite.G1(), spk.SHA256, scopeBase, nym, mk.Y, msg.Bytes)
	if err != nil {
		return nil, fmt.Errorf("dl21: sign: %w", err)
	}

	return &Signature{
		Aprime: aprime, Nym: nym, Scope: scope,
		Proof: proof, NymProof: nymProof,
	}, nil
}

// Verify checks sig against msg under gk.
func Verify(suite *pairing.Suite, gk *GroupKey, sig *Signature, msg groupsig.Message) (groupsig.Outcome, error) {
	stmt := statement(suite, gk, sig.Aprime)
	ok, err := spk.Verify(suite.G1(), spk.SHA256, stmt, msg.Bytes, sig.Proof)
	if err != nil {
		return groupsig.Reject, fmt.Errorf("dl21: verify: %w", err)
	}
	if !ok {
		return groupsig.Reject, nil
	}
	scopeBase := suite.HashToG1(sig.Scope)
	nymOK, err := spk.VerifyDLog(suite.G1(), spk.SHA256, scopeBase, sig.Nym, msg.Bytes, sig.NymProof)
	if err != nil {
		return groupsig.Reject, fmt.Errorf("dl21: verify: %w", err)
	}
	return groupsig.OutcomeOf(nymOK), nil
}

// Identify reports whether mk produced sig, by recomputing the pseudonym
// from mk.Y under sig's scope and comparing it to sig.Nym (spec.md §4.8).
func Identify(suite *pairing.Suite, sig *Signature, mk *MemberKey) (groupsig.Outcome, error) {
	scopeBase := suite.HashToG1(sig.Scope)
	candidate := suite.G1().Point().Mul(mk.Y, scopeBase)
	return groupsig.OutcomeOf(candidate.Equal(sig.Nym)), nil
}
