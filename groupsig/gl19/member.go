package gl19

import (
	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

// MemberKey is the per-member credential (A, x, y, s, d, l): the issued
// BBS+-style credential A over the hidden message slots y, s, d, the
// issuer-chosen serial x (never revealed; signing proves knowledge of it
// inside the SPK), and l, the expiration timestamp d is derived from. A
// member joined with no expiration has l = 0, and Join still sets d to
// expirationExponent(0). Package dl21 has its own MemberKey type with no
// d or l.
type MemberKey struct {
	A    kyber.Point
	X    kyber.Scalar
	Y, S kyber.Scalar
	D    kyber.Scalar
	L    uint64
}

func (mk *MemberKey) SchemeCode() groupsig.Code { return groupsig.GL19 }

func (mk *MemberKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.GL19, groupsig.MemberKeyType)
	ab, _ := mk.A.MarshalBinary()
	xb, _ := mk.X.MarshalBinary()
	yb, _ := mk.Y.MarshalBinary()
	sb, _ := mk.S.MarshalBinary()
	w.Field(ab)
	w.Field(xb)
	w.Field(yb)
	w.Field(sb)
	if mk.D != nil {
		db, _ := mk.D.MarshalBinary()
		w.Field(db)
	} else {
		w.Field(nil)
	}
	var lBuf [8]byte
	for i := 0; i < 8; i++ {
		lBuf[i] = byte(mk.L >> (8 * i))
	}
	w.Field(lBuf[:])
	return w.Bytes()
}

// expirationExponent derives the hidden exponent d tied to an expiration
// timestamp l, by reducing l's encoding into Fr. l = 0 means "no
// expiration".
func expirationExponent(suite *pairing.Suite, l uint64) kyber.Scalar {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(l >> (8 * i))
	}
	return suite.HashToFr(buf[:])
}

// credentialBase computes B = g1 · h1^y · h2^s · h3^d, the value the
// issuer's signature is actually over (spec.md §4.8's "(A, x, y, s[, d])").
func credentialBase(suite *pairing.Suite, gk *GroupKey, y, s, d kyber.Scalar) kyber.Point {
	b := suite.G1().Point().Add(gk.G1, suite.G1().Point().Mul(y, gk.H1))
	b = suite.G1().Point().Add(b, suite.G1().Point().Mul(s, gk.H2))
	b = suite.G1().Point().Add(b, suite.G1().Point().Mul(d, gk.H3))
	return b
}

// Join issues a fresh credential for expiration timestamp l (0 for "no
// expiration"). As in bbs04 and klap20, this is a single-round
// construction: the member's hidden secrets (y, s) are generated and
// folded into the credential in one step rather than over an interactive
// commit/blind-sign exchange.
func Join(suite *pairing.Suite, gk *GroupKey, ik *IssuerKey, l uint64) (*MemberKey, error) {
	stream := random.New()
	y := suite.G1().Scalar().Pick(stream)
	s := suite.G1().Scalar().Pick(stream)
	d := expirationExponent(suite, l)
	x := suite.G1().Scalar().Pick(stream)

	b := credentialBase(suite, gk, y, s, d)
	exp := suite.G1().Scalar().Add(ik.Isk, x)
	a := suite.G1().Point().Mul(suite.G1().Scalar().Inv(exp), b)

	return &MemberKey{A: a, X: x, Y: y, S: s, D: d, L: l}, nil
}
