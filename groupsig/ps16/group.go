// Package ps16 implements the Pointcheval-Sanders group signature scheme
// (spec.md §4.6): a 3-message join protocol, opening that additionally
// produces a verifiable proof (the "open-with-proof" property this scheme
// and KLAP20 share), and a single issuer/opener key pair.
package ps16

import (
	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

// GroupKey is (g, g̃, X̃, Ỹ) per spec.md §4.6.
type GroupKey struct {
	G      kyber.Point // g ∈ G1
	G2     kyber.Point // g̃ ∈ G2
	Xtilde kyber.Point // X̃ = g̃^x
	Ytilde kyber.Point // Ỹ = g̃^y
}

func (gk *GroupKey) SchemeCode() groupsig.Code { return groupsig.PS16 }

// Export encodes (g, g̃, X̃, Ỹ) in declaration order.
func (gk *GroupKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.PS16, groupsig.GroupKeyType)
	for _, p := range []kyber.Point{gk.G, gk.G2, gk.Xtilde, gk.Ytilde} {
		b, _ := p.MarshalBinary()
		w.Field(b)
	}
	return w.Bytes()
}

// ManagerKey holds the issuer/opener's private scalars (x, y). PS16 has a
// single authority playing both roles; spec.md §4.6 names no separate
// Opener key the way KLAP20 does.
type ManagerKey struct {
	X kyber.Scalar
	Y kyber.Scalar
}

func (mk *ManagerKey) SchemeCode() groupsig.Code { return groupsig.PS16 }

// Export encodes (x, y).
func (mk *ManagerKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.PS16, groupsig.ManagerKeyType)
	xb, _ := mk.X.MarshalBinary()
	yb, _ := mk.Y.MarshalBinary()
	w.Field(xb)
	w.Field(yb)
	return w.Bytes()
}

// Setup generates a fresh PS16 group, per spec.md §4.6.
func Setup(suite *pairing.Suite) (*GroupKey, *ManagerKey, error) {
	stream := random.New()
	g := suite.G1().Point().Pick(stream)
	g2 := suite.G2().Point().Pick(stream)
	x := suite.G1().Scalar().Pick(stream)
	y := suite.G1().Scalar().Pick(stream)

	gk := &GroupKey{
		G:      g,
		G2:     g2,
		Xtilde: suite.G2().Point().Mul(x, g2),
		Ytilde: suite.G2().Point().Mul(y, g2),
	}
	mk := &ManagerKey{X: x, Y: y}
	return gk, mk, nil
}
