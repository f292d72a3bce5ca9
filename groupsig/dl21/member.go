package dl21

import (
	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

// MemberKey is the per-member credential (A, x, y, s): the same shape as
// gl19.MemberKey with the expiration slot dropped. y additionally serves
// as the exponent behind every scope-scoped pseudonym this member reveals
// (sign.go's nym = Hash-to-G1(scope)^y).
type MemberKey struct {
	A    kyber.Point
	X    kyber.Scalar
	Y, S kyber.Scalar
}

func (mk *MemberKey) SchemeCode() groupsig.Code { return groupsig.DL21 }

func (mk *MemberKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.DL21, groupsig.MemberKeyType)
	ab, _ := mk.A.MarshalBinary()
	xb, _ := mk.X.MarshalBinary()
	yb, _ := mk.Y.MarshalBinary()
	sb, _ := mk.S.MarshalBinary()
	w.Field(ab)
	w.Field(xb)
	w.Field(yb)
	w.Field(sb)
	return w.Bytes()
}

func credentialBase(suite *pairing.Suite, gk *GroupKey, y, s kyber.Scalar) kyber.Point {
	b := suite.G1().Point().Add(gk.G1, suite.G1().Point().Mul(y, gk.H1))
	return suite.G1().Point().Add(b, suite.G1().Point().Mul(s, gk.H2))
}

// Join issues a fresh credential, following gl19.Join's single-round
// construction.
func Join(suite *pairing.Suite, gk *GroupKey, ik *IssuerKey) (*MemberKey, error) {
	stream := random.New()
	y := suite.G1().Scalar().Pick(stream)
	s := suite.G1().Scalar().Pick(stream)
	x := suite.G1().Scalar().Pick(stream)

	b := credentialBase(suite, gk, y, s)
	exp := suite.G1().Scalar().Add(ik.Isk, x)
	a := suite.G1().Point().Mul(suite.G1().Scalar().Inv(exp), b)

	return &MemberKey{A: a, X: x, Y: y, S: s}, nil
}
