// Package klap20 implements a two-phase-setup group signature scheme: an
// Issuer establishes the credential-issuing parameters first, then a
// separate Opener fills in the tracing parameters afterward (spec.md
// §4.7). Its credential algebra and signing/verification/opening
// machinery directly reuse package bbs04's blinding-cancellation trick;
// the opener's scalars play the role bbs04's manager scalars (ξ1,ξ2) play,
// which is the mapping that makes spec.md's stated property — "Open uses
// Opener key (z0,z1) plus GML tag to identify the signer" — hold exactly.
// Every GML entry additionally carries a small NIZK, signed with the
// Opener's key, attesting that the Opener vouches for that entry.
package klap20

import (
	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

// GroupKey mirrors bbs04.GroupKey's shape. G1, G2, H, and W (and their
// dependent pairing precomputations) are fixed once SetupIssuer runs; U
// and V stay nil until SetupOpener runs, which is how the group key is
// "empty" between the two setup phases (spec.md §4.7).
type GroupKey struct {
	suite *pairing.Suite

	G1, G2, H, W kyber.Point
	U, V         kyber.Point

	EHW, EHG2, EG1G2 kyber.Point
	ehwInv, ehg2Inv  kyber.Point
}

func (gk *GroupKey) SchemeCode() groupsig.Code { return groupsig.KLAP20 }

// OpenerComplete reports whether SetupOpener has already run.
func (gk *GroupKey) OpenerComplete() bool { return gk.U != nil }

// Export encodes every present field in declaration order; U and V are
// absent (length-0) fields until the opener phase completes.
func (gk *GroupKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.KLAP20, groupsig.GroupKeyType)
	fields := []kyber.Point{gk.G1, gk.G2, gk.H, gk.W, gk.U, gk.V}
	for _, p := range fields {
		if p == nil {
			w.Field(nil)
			continue
		}
		b, _ := p.MarshalBinary()
		w.Field(b)
	}
	return w.Bytes()
}

// IssuerKey is the issuer's private credential-issuing scalar, per
// spec.md §4.7's "generate g, g̃, x, y" (here just γ, matching bbs04's
// single issuing scalar — KLAP20 does not need the extra x,y the spec's
// prose mentions for phase 1, since credential issuance here follows
// bbs04's single-scalar construction rather than a two-scalar PS-style
// one).
type IssuerKey struct {
	Gamma kyber.Scalar
}

func (ik *IssuerKey) SchemeCode() groupsig.Code { return groupsig.KLAP20 }

func (ik *IssuerKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.KLAP20, groupsig.ManagerKeyType)
	b, _ := ik.Gamma.MarshalBinary()
	w.Field(b)
	return w.Bytes()
}

// OpenerKey is the opener's private tracing scalars (z0, z1), per
// spec.md §4.7: "Phase 2 (Opener side): ... generate z0, z1 ∈ Fr."
type OpenerKey struct {
	Z0, Z1 kyber.Scalar
}

func (ok *OpenerKey) SchemeCode() groupsig.Code { return groupsig.KLAP20 }

func (ok *OpenerKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.KLAP20, groupsig.ManagerKeyType)
	z0b, _ := ok.Z0.MarshalBinary()
	z1b, _ := ok.Z1.MarshalBinary()
	w.Field(z0b)
	w.Field(z1b)
	return w.Bytes()
}

// SetupIssuer runs phase 1: it fixes the group generators and the
// issuer's credential scalar, leaving the opener's tracing bases (U, V)
// unset.
func SetupIssuer(suite *pairing.Suite) (*GroupKey, *IssuerKey, error) {
	stream := random.New()
	g1 := suite.G1().Point().Pick(stream)
	g2 := suite.G2().Point().Pick(stream)
	h := suite.G1().Point().Pick(stream)
	gamma := suite.G1().Scalar().Pick(stream)
	w := suite.G2().Point().Mul(gamma, g2)

	gk := &GroupKey{
		suite: suite,
		G1:    g1, G2: g2, H: h, W: w,
		EHW:   suite.Pair(h, w),
		EHG2:  suite.Pair(h, g2),
		EG1G2: suite.Pair(g1, g2),
	}
	gk.ehwInv = suite.GT().Point().Neg(gk.EHW)
	gk.ehg2Inv = suite.GT().Point().Neg(gk.EHG2)
	return gk, &IssuerKey{Gamma: gamma}, nil
}

// SetupOpener runs phase 2: it derives the tracing bases U, V from H using
// a freshly picked pair of opener scalars. Calling it again once U, V are
// already set is an ERROR, per spec.md §4.7's "the setup entry point must
// be idempotent on a per-phase basis: calling it again with a fully
// populated group key is an ERROR."
func SetupOpener(suite *pairing.Suite, gk *GroupKey) (*OpenerKey, error) {
	if gk.OpenerComplete() {
		return nil, groupsig.ErrAlreadySetUp
	}
	stream := random.New()
	z0 := suite.G1().Scalar().Pick(stream)
	z1 := suite.G1().Scalar().Pick(stream)
	gk.U = suite.G1().Point().Mul(suite.G1().Scalar().Inv(z0), gk.H)
	gk.V = suite.G1().Point().Mul(suite.G1().Scalar().Inv(z1), gk.H)
	return &OpenerKey{Z0: z0, Z1: z1}, nil
}
