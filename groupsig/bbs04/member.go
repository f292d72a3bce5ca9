package bbs04

import (
	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

// MemberKey is a member's credential: A = g1^(1/(γ+x)), and the secret x
// tying it to the issuer's key, plus the precomputed e(A,g2) spec.md §3
// calls out ("precomputed e(A,g̃)").
type MemberKey struct {
	A   kyber.Point
	X   kyber.Scalar
	EAG2 kyber.Point
}

func (mk *MemberKey) SchemeCode() groupsig.Code { return groupsig.BBS04 }

// Export encodes (A, x); EAG2 is not stored, since it is fully determined
// by A and the group key's g2 (Join computes it that way).
func (mk *MemberKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.BBS04, groupsig.MemberKeyType)
	ab, _ := mk.A.MarshalBinary()
	xb, _ := mk.X.MarshalBinary()
	w.Field(ab)
	w.Field(xb)
	return w.Bytes()
}

// Join is BBS04's single-round join (spec.md §4.5): the manager picks a
// fresh x and issues A = g1^(1/(γ+x)) directly; there is no interactive
// message exchange to drive. The new member's GML entry is (index, A).
func Join(suite *pairing.Suite, gk *GroupKey, mk *ManagerKey, gml *groupsig.GML) (*MemberKey, error) {
	x := suite.G1().Scalar().Pick(random.New())
	exp := suite.G1().Scalar().Add(mk.Gamma, x)
	a := suite.G1().Point().Mul(suite.G1().Scalar().Inv(exp), gk.G1)

	ab, err := a.MarshalBinary()
	if err != nil {
		return nil, err
	}
	gml.Insert(ab)

	eag2 := suite.Pair(a, gk.G2)
	return &MemberKey{A: a, X: x, EAG2: eag2}, nil
}
