package gl19

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

// Signature is a randomized presentation of a member's credential: A',
// the credential re-randomized by a fresh per-signature exponent r, the
// revealed expiration timestamp L, and an SPK-REP proving knowledge of
// (x, y, s) consistent with A' and the group key without revealing any of
// the three (spec.md §4.8: "reveals l ... proves knowledge of (x,y,s,d)").
type Signature struct {
	Aprime kyber.Point
	L      uint64
	Proof  *spk.Proof
}

func (s *Signature) SchemeCode() groupsig.Code { return groupsig.GL19 }

func (s *Signature) Export() []byte {
	w := groupsig.NewWriter(groupsig.GL19)
	ab, _ := s.Aprime.MarshalBinary()
	w.Field(ab)
	var lBuf [8]byte
	for i := 0; i < 8; i++ {
		lBuf[i] = byte(s.L >> (8 * i))
	}
	w.Field(lBuf[:])
	cb, _ := s.Proof.Challenge.MarshalBinary()
	w.Field(cb)
	for _, r := range s.Proof.Responses {
		b, _ := r.MarshalBinary()
		w.Field(b)
	}
	return w.Bytes()
}

// combinedBase folds the publicly-known expiration exponent d into a
// single base e(g1,g2)·e(h3,g2)^d, so the hidden-message relation below
// only needs one witness (r) for that term instead of two (r and d·r).
func combinedBase(suite *pairing.Suite, gk *GroupKey, l uint64) kyber.Point {
	d := expirationExponent(suite, l)
	return suite.GT().Point().Add(gk.EG1G2, suite.GT().Point().Mul(d, gk.EH3G2))
}

// statement builds the SPK-REP relation Y_target = e(A',ipk), where
// Y_target = e(A',g2)^{-x} · (g1·h3^d, g2)^r · e(h1,g2)^{y·r} · e(h2,g2)^{s·r}
// — the pairing-linearized form of A'^{isk+x} = (g1·h1^y·h2^s·h3^d)^r
// (see member.go's credentialBase), following the same y3-relation
// technique as bbs04.statement and klap20.statement, generalized from one
// hidden message (x only) to three (x, y, s).
func statement(suite *pairing.Suite, gk *GroupKey, aprime kyber.Point, l uint64) (*spk.Statement, kyber.Point) {
	et3g2 := suite.Pair(aprime, gk.G2)
	g1d := combinedBase(suite, gk, l)
	target := suite.Pair(aprime, gk.Ipk)
	return &spk.Statement{
		Y: []kyber.Point{target},
		G: []kyber.Point{et3g2, g1d, gk.EH1G2, gk.EH2G2},
		Relations: []spk.Relation{
			{Group: suite.GT(), Terms: []spk.Term{
				{BaseIndex: 0, ExpIndex: expNegX},
				{BaseIndex: 1, ExpIndex: expR},
				{BaseIndex: 2, ExpIndex: expYR},
				{BaseIndex: 3, ExpIndex: expSR},
			}},
		},
		NumExponents: numExponents,
	}, target
}

// Sign produces a fresh, unlinkable presentation of mk under gk.
func Sign(suite *pairing.Suite, gk *GroupKey, mk *MemberKey, msg groupsig.Message) (*Signature, error) {
	r := suite.G1().Scalar().Pick(random.New())
	aprime := suite.G1().Point().Mul(r, mk.A)

	stmt, _ := statement(suite, gk, aprime, mk.L)
	exponents := make([]kyber.Scalar, numExponents)
	exponents[expNegX] = suite.G1().Scalar().Neg(mk.X)
	exponents[expR] = r
	exponents[expYR] = suite.G1().Scalar().Mul(mk.Y, r)
	exponents[expSR] = suite.G1().Scalar().Mul(mk.S, r)

	proof, err := spk.Prove(suite.G1(), spk.SHA256, stmt, exponents, msg.Bytes)
	if err != nil {
		return nil, fmt.Errorf("gl19: sign: %w", err)
	}
	return &Signature{Aprime: aprime, L: mk.L, Proof: proof}, nil
}

// Verify checks sig against msg under gk.
func Verify(suite *pairing.Suite, gk *GroupKey, sig *Signature, msg groupsig.Message) (groupsig.Outcome, error) {
	stmt, _ := statement(suite, gk, sig.Aprime, sig.L)
	ok, err := spk.Verify(suite.G1(), spk.SHA256, stmt, msg.Bytes, sig.Proof)
	if err != nil {
		return groupsig.Reject, fmt.Errorf("gl19: verify: %w", err)
	}
	return groupsig.OutcomeOf(ok), nil
}

// Reveal extracts the publicly revealed expiration timestamp from sig.
func Reveal(sig *Signature) ([]byte, error) {
	var lBuf [8]byte
	for i := 0; i < 8; i++ {
		lBuf[i] = byte(sig.L >> (8 * i))
	}
	return lBuf[:], nil
}
