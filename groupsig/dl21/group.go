// Package dl21 implements a BBS+-credential group signature with a
// domain-scoped pseudonym: signing under a scope reveals nym =
// Hash-to-G1(scope)^y, the same for every signature a member makes under
// that scope and different across scopes, plus an SPK-REP tying the
// credential's hidden (x, y, s) to a re-randomized presentation of A, and
// a separate SPK-DLOG tying nym to the same y (spec.md §4.8). Grounded on
// package gl19's credential and re-randomization machinery, which this
// package reuses in shape (without the expiration exponent) and extends
// with the pseudonym and its Link/VerifyLink proof.
package dl21

import (
	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

// GroupKey holds the credential bases g1, h1 (y), h2 (s), and the
// issuer's public key. Unlike gl19.GroupKey there is no expiration base
// and no converter/consumer keys: DL21 has neither an expiring credential
// nor a Blind/Convert/Unblind flow.
type GroupKey struct {
	G1, G2 kyber.Point
	H1, H2 kyber.Point
	Ipk    kyber.Point

	EG1G2, EH1G2, EH2G2 kyber.Point
}

func (gk *GroupKey) SchemeCode() groupsig.Code { return groupsig.DL21 }

func (gk *GroupKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.DL21, groupsig.GroupKeyType)
	for _, p := range []kyber.Point{gk.G1, gk.G2, gk.H1, gk.H2, gk.Ipk} {
		b, _ := p.MarshalBinary()
		w.Field(b)
	}
	return w.Bytes()
}

type IssuerKey struct {
	Isk kyber.Scalar
}

func (ik *IssuerKey) SchemeCode() groupsig.Code { return groupsig.DL21 }

func (ik *IssuerKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.DL21, groupsig.ManagerKeyType)
	b, _ := ik.Isk.MarshalBinary()
	w.Field(b)
	return w.Bytes()
}

// Setup generates fresh group parameters.
func Setup(suite *pairing.Suite) (*GroupKey, *IssuerKey, error) {
	stream := random.New()
	g1 := suite.G1().Point().Pick(stream)
	g2 := suite.G2().Point().Pick(stream)
	h1 := suite.G1().Point().Pick(stream)
	h2 := suite.G1().Point().Pick(stream)
	isk := suite.G1().Scalar().Pick(stream)
	ipk := suite.G2().Point().Mul(isk, g2)

	gk := &GroupKey{
		G1: g1, G2: g2, H1: h1, H2: h2, Ipk: ipk,
		EG1G2: suite.Pair(g1, g2),
		EH1G2: suite.Pair(h1, g2),
		EH2G2: suite.Pair(h2, g2),
	}
	return gk, &IssuerKey{Isk: isk}, nil
}
