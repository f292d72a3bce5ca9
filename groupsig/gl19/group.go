// Package gl19 implements a BBS+-credential group signature with no
// centralized opener: each member's credential binds an issuer-chosen
// serial x together with two hidden secrets (y, s) and an optional
// expiration exponent d, and presenting a signature re-randomizes the
// credential and proves knowledge of (x, y, s), with d entering only as a
// public exponent, via a generic SPK-REP
// (spec.md §4.8). Grounded on package bbs04's blinding-cancellation style
// and package klap20's two-role key split, generalized to several hidden
// message slots instead of one. Anonymity here has no opener to revoke
// it — members who want to later decrypt their own identity out of a
// signature must route through Blind/Convert/Unblind (blind.go), which
// reuses the ecies package the way spec.md §4.9 describes.
package gl19

import (
	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

// GroupKey holds the public parameters: the credential bases (g1, plus
// h1/h2/h3 for the hidden y, s and the optional expiration exponent d),
// the issuer's public key ipk, and the converter/consumer public keys
// Blind/Convert/Unblind address ciphertexts to.
type GroupKey struct {
	G1, G2     kyber.Point
	H1, H2, H3 kyber.Point
	Ipk        kyber.Point // g2^isk

	CPK kyber.Point // converter's public key
	EPK kyber.Point // final consumer's public key

	EG1G2, EH1G2, EH2G2, EH3G2 kyber.Point // precomputed pairings with g2
}

func (gk *GroupKey) SchemeCode() groupsig.Code { return groupsig.GL19 }

func (gk *GroupKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.GL19, groupsig.GroupKeyType)
	for _, p := range []kyber.Point{gk.G1, gk.G2, gk.H1, gk.H2, gk.H3, gk.Ipk, gk.CPK, gk.EPK} {
		b, _ := p.MarshalBinary()
		w.Field(b)
	}
	return w.Bytes()
}

// IssuerKey is the group issuer's secret exponent.
type IssuerKey struct {
	Isk kyber.Scalar
}

func (ik *IssuerKey) SchemeCode() groupsig.Code { return groupsig.GL19 }

func (ik *IssuerKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.GL19, groupsig.ManagerKeyType)
	b, _ := ik.Isk.MarshalBinary()
	w.Field(b)
	return w.Bytes()
}

// BlindingKey is an ElGamal-style keypair held by the converter or the
// final consumer in the Blind/Convert/Unblind flow (spec.md §4.9).
type BlindingKey struct {
	Sk kyber.Scalar
	Pk kyber.Point
}

func (bk *BlindingKey) SchemeCode() groupsig.Code { return groupsig.GL19 }

func (bk *BlindingKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.GL19, groupsig.BlindingKeyType)
	b, _ := bk.Pk.MarshalBinary()
	w.Field(b)
	return w.Bytes()
}

func newBlindingKey(suite *pairing.Suite) *BlindingKey {
	sk := suite.G1().Scalar().Pick(random.New())
	return &BlindingKey{Sk: sk, Pk: suite.G1().Point().Mul(sk, nil)}
}

// Setup generates fresh group parameters together with a converter and a
// final-consumer blinding keypair, returning the group key, the issuer's
// secret, and both blinding keys so a caller can hand the converter its
// own key and keep the consumer's key for itself.
func Setup(suite *pairing.Suite) (*GroupKey, *IssuerKey, *BlindingKey, *BlindingKey, error) {
	stream := random.New()
	g1 := suite.G1().Point().Pick(stream)
	g2 := suite.G2().Point().Pick(stream)
	h1 := suite.G1().Point().Pick(stream)
	h2 := suite.G1().Point().Pick(stream)
	h3 := suite.G1().Point().Pick(stream)
	isk := suite.G1().Scalar().Pick(stream)
	ipk := suite.G2().Point().Mul(isk, g2)

	converter := newBlindingKey(suite)
	consumer := newBlindingKey(suite)

	gk := &GroupKey{
		G1: g1, G2: g2, H1: h1, H2: h2, H3: h3, Ipk: ipk,
		CPK: converter.Pk, EPK: consumer.Pk,
		EG1G2: suite.Pair(g1, g2),
		EH1G2: suite.Pair(h1, g2),
		EH2G2: suite.Pair(h2, g2),
		EH3G2: suite.Pair(h3, g2),
	}
	return gk, &IssuerKey{Isk: isk}, converter, consumer, nil
}
