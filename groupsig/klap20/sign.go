package klap20

import (
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
	"github.com/groupsig-go/groupsig/spk"
)

const (
	expAlpha = iota
	expBeta
	expX
	expDelta1
	expDelta2
	numExponents
)

// Signature is (T1, T2, T3) plus an SPK-REP, identical in structure to
// bbs04.Signature — see its statement() for the derivation this reuses.
type Signature struct {
	T1, T2, T3 kyber.Point
	Proof      *spk.Proof
}

func (s *Signature) SchemeCode() groupsig.Code { return groupsig.KLAP20 }

func (s *Signature) Export() []byte {
	w := groupsig.NewWriter(groupsig.KLAP20)
	t1b, _ := s.T1.MarshalBinary()
	t2b, _ := s.T2.MarshalBinary()
	t3b, _ := s.T3.MarshalBinary()
	w.Field(t1b)
	w.Field(t2b)
	w.Field(t3b)
	cb, _ := s.Proof.Challenge.MarshalBinary()
	w.Field(cb)
	for _, r := range s.Proof.Responses {
		b, _ := r.MarshalBinary()
		w.Field(b)
	}
	return w.Bytes()
}

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

// Sign produces a signature of msg under mk, following the same
// blinding-commitment construction as bbs04.Sign.
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
		return nil, fmt.Errorf("klap20: sign: %w", err)
	}
	return &Signature{T1: t1, T2: t2, T3: t3, Proof: proof}, nil
}

// Verify checks sig against msg under gk.
func Verify(suite *pairing.Suite, gk *GroupKey, sig *Signature, msg groupsig.Message) (groupsig.Outcome, error) {
	stmt := statement(suite, gk, sig.T1, sig.T2, sig.T3)
	ok, err := spk.Verify(suite.G1(), spk.SHA256, stmt, msg.Bytes, sig.Proof)
	if err != nil {
		return groupsig.Reject, fmt.Errorf("klap20: verify: %w", err)
	}
	return groupsig.OutcomeOf(ok), nil
}
