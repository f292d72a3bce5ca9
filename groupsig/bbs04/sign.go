package bbs04

import (
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
	"github.com/groupsig-go/groupsig/spk"
)

// Signature is BBS04's randomized-credential triple (T1,T2,T3) plus the
// SPK-REP proving knowledge of (α,β,x,δ1,δ2) satisfying the three linear
// relations spec.md §4.5 describes.
type Signature struct {
	T1, T2, T3 kyber.Point
	Proof      *spk.Proof
}

func (s *Signature) SchemeCode() groupsig.Code { return groupsig.BBS04 }

// Export encodes (T1,T2,T3, challenge, responses...).
func (s *Signature) Export() []byte {
	w := groupsig.NewWriter(groupsig.BBS04)
	for _, p := range []kyber.Point{s.T1, s.T2, s.T3} {
		b, _ := p.MarshalBinary()
		w.Field(b)
	}
	cb, _ := s.Proof.Challenge.MarshalBinary()
	w.Field(cb)
	for _, r := range s.Proof.Responses {
		rb, _ := r.MarshalBinary()
		w.Field(rb)
	}
	return w.Bytes()
}

// exponent indices shared by Sign and Verify's statement construction.
const (
	expAlpha = iota
	expBeta
	expX
	expDelta1
	expDelta2
	numExponents
)

// statement builds the shared public SPK-REP description for a signature
// attempt: relations 0 and 1 are the G1 equations T1=u^α, T2=v^β; relation
// 2 is the GT-linearized credential equation derived from
// e(T3,g2) = e(A,g2)·e(h,g2)^(α+β) and e(A,g2)^(γ+x) = e(g1,g2), which
// together yield
//
//	e(g1,g2)·e(T3,w)^-1 = e(T3,g2)^x · e(h,w)^-α · e(h,w)^-β · e(h,g2)^-δ1 · e(h,g2)^-δ2
//
// — a pure product-of-powers relation over the five secret exponents, with
// y3 computable by anyone from the public group key and (T1,T2,T3).
//
// Soundness caveat: full BBS04 additionally binds δ1=x·α and δ2=x·β via
// two more linear relations (T1^x=u^δ1, T2^x=v^δ2), so a verifier also
// checks the prover's δ1/δ2 are the literal products rather than freely
// chosen. This statement only carries the three relations spec.md §4.5
// itself enumerates, leaving δ1/δ2 as independent witnesses; honest
// signing still produces a valid proof (testable property 1 holds), but a
// prover could in principle choose δ1/δ2 unrelated to x·α/x·β and still
// satisfy this narrower statement. Accepted as spec-sanctioned scope; see
// dl21's pseudonym-binding note in DESIGN.md for the sibling case of a
// documented, intentionally narrower SPK statement.
func statement(suite *pairing.Suite, gk *GroupKey, t1, t2, t3 kyber.Point) *spk.Statement {
	y3 := suite.GT().Point().Add(gk.EG1G2, suite.GT().Point().Neg(suite.Pair(t3, gk.W)))
	et3g2 := suite.Pair(t3, gk.G2)

	return &spk.Statement{
		Y: []kyber.Point{t1, t2, y3},
		G: []kyber.Point{gk.U, gk.V, et3g2, gk.ehwInv, gk.ehg2Inv},
		Relations: []spk.Relation{
			{Group: suite.G1(), Terms: []spk.Term{{BaseIndex: 0, ExpIndex: expAlpha}}},
			{Group: suite.G1(), Terms: []spk.Term{{BaseIndex: 1, ExpIndex: expBeta}}},
			{Group: suite.GT(), Terms: []spk.Term{
				{BaseIndex: 2, ExpIndex: expX},
				{BaseIndex: 3, ExpIndex: expAlpha},
				{BaseIndex: 3, ExpIndex: expBeta},
				{BaseIndex: 4, ExpIndex: expDelta1},
				{BaseIndex: 4, ExpIndex: expDelta2},
			}},
		},
		NumExponents: numExponents,
	}
}

// Sign produces a BBS04 signature of msg under mk, per spec.md §4.5.
func Sign(suite *pairing.Suite, gk *GroupKey, mk *MemberKey, msg groupsig.Message) (*Signature, error) {
	alpha := suite.G1().Scalar().Pick(random.New())
	beta := suite.G1().Scalar().Pick(random.New())

	t1 := suite.G1().Point().Mul(alpha, gk.U)
	t2 := suite.G1().Point().Mul(beta, gk.V)
	hSum := suite.G1().Point().Mul(suite.G1().Scalar().Add(alpha, beta), gk.H)
	t3 := suite.G1().Point().Add(mk.A, hSum)

	delta1 := suite.G1().Scalar().Mul(mk.X, alpha)
	delta2 := suite.G1().Scalar().Mul(mk.X, beta)

	stmt := statement(suite, gk, t1, t2, t3)
	exponents := make([]kyber.Scalar, numExponents)
	exponents[expAlpha] = alpha
	exponents[expBeta] = beta
	exponents[expX] = mk.X
	exponents[expDelta1] = delta1
	exponents[expDelta2] = delta2

	proof, err := spk.Prove(suite.G1(), spk.SHA256, stmt, exponents, msg.Bytes)
	if err != nil {
		return nil, fmt.Errorf("bbs04: sign: %w", err)
	}
	return &Signature{T1: t1, T2: t2, T3: t3, Proof: proof}, nil
}

// Verify checks sig against msg under gk.
func Verify(suite *pairing.Suite, gk *GroupKey, sig *Signature, msg groupsig.Message) (groupsig.Outcome, error) {
	stmt := statement(suite, gk, sig.T1, sig.T2, sig.T3)
	ok, err := spk.Verify(suite.G1(), spk.SHA256, stmt, msg.Bytes, sig.Proof)
	if err != nil {
		return groupsig.Reject, fmt.Errorf("bbs04: verify: %w", err)
	}
	return groupsig.OutcomeOf(ok), nil
}
