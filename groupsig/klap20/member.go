package klap20

import (
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
	"github.com/groupsig-go/groupsig/spk"
)

// MemberKey is the per-member credential (A, x), identical in shape to
// bbs04.MemberKey.
type MemberKey struct {
	A    kyber.Point
	X    kyber.Scalar
	EAG2 kyber.Point
}

func (mk *MemberKey) SchemeCode() groupsig.Code { return groupsig.KLAP20 }

func (mk *MemberKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.KLAP20, groupsig.MemberKeyType)
	ab, _ := mk.A.MarshalBinary()
	xb, _ := mk.X.MarshalBinary()
	w.Field(ab)
	w.Field(xb)
	return w.Bytes()
}

// gmlTag is the GML entry payload of spec.md §4.7: the tracing point A,
// an informational tag τ̃ = g̃^x, and an Opener-signed NIZK (SS1, SS2)
// attesting that the opener vouches for this entry. The NIZK proves
// knowledge of the opener's scalars z0, z1 via the relations H = U^z0 and
// H = V^z1, bound to (index ‖ A ‖ τ̃) so it cannot be replayed onto a
// different entry.
type gmlTag struct {
	A, Tau   kyber.Point
	SS1, SS2 *spk.DLogProof
}

func bindMessage(index uint64, a, tau kyber.Point) ([]byte, error) {
	var idxBuf [8]byte
	for i := 0; i < 8; i++ {
		idxBuf[i] = byte(index >> (8 * i))
	}
	ab, err := a.MarshalBinary()
	if err != nil {
		return nil, err
	}
	taub, err := tau.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := append([]byte{}, idxBuf[:]...)
	out = append(out, ab...)
	out = append(out, taub...)
	return out, nil
}

func (t *gmlTag) encode() ([]byte, error) {
	w := groupsig.NewWriter(groupsig.KLAP20)
	ab, err := t.A.MarshalBinary()
	if err != nil {
		return nil, err
	}
	taub, err := t.Tau.MarshalBinary()
	if err != nil {
		return nil, err
	}
	c1b, err := t.SS1.Challenge.MarshalBinary()
	if err != nil {
		return nil, err
	}
	r1b, err := t.SS1.Response.MarshalBinary()
	if err != nil {
		return nil, err
	}
	c2b, err := t.SS2.Challenge.MarshalBinary()
	if err != nil {
		return nil, err
	}
	r2b, err := t.SS2.Response.MarshalBinary()
	if err != nil {
		return nil, err
	}
	w.Field(ab)
	w.Field(taub)
	w.Field(c1b)
	w.Field(r1b)
	w.Field(c2b)
	w.Field(r2b)
	return w.Bytes(), nil
}

func decodeGMLTag(suite *pairing.Suite, buf []byte) (*gmlTag, error) {
	r, err := groupsig.NewReader(buf, groupsig.KLAP20)
	if err != nil {
		return nil, err
	}
	a := suite.G1().Point()
	if err := a.UnmarshalBinary(r.Field()); err != nil {
		return nil, err
	}
	tau := suite.G2().Point()
	if err := tau.UnmarshalBinary(r.Field()); err != nil {
		return nil, err
	}
	c1 := suite.G1().Scalar()
	if err := c1.UnmarshalBinary(r.Field()); err != nil {
		return nil, err
	}
	r1 := suite.G1().Scalar()
	if err := r1.UnmarshalBinary(r.Field()); err != nil {
		return nil, err
	}
	c2 := suite.G1().Scalar()
	if err := c2.UnmarshalBinary(r.Field()); err != nil {
		return nil, err
	}
	r2 := suite.G1().Scalar()
	if err := r2.UnmarshalBinary(r.Field()); err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return &gmlTag{
		A: a, Tau: tau,
		SS1: &spk.DLogProof{Challenge: c1, Response: r1},
		SS2: &spk.DLogProof{Challenge: c2, Response: r2},
	}, nil
}

// Join issues a fresh credential, following bbs04's single-round
// construction, and appends an Opener-attested GML entry for it.
func Join(suite *pairing.Suite, gk *GroupKey, ik *IssuerKey, ok *OpenerKey, gml *groupsig.GML) (*MemberKey, error) {
	if !gk.OpenerComplete() {
		return nil, fmt.Errorf("klap20: join: %w", groupsig.ErrMissingField)
	}
	x := suite.G1().Scalar().Pick(random.New())
	exp := suite.G1().Scalar().Add(ik.Gamma, x)
	a := suite.G1().Point().Mul(suite.G1().Scalar().Inv(exp), gk.G1)
	tau := suite.G2().Point().Mul(x, gk.G2)

	index := uint64(gml.Len())
	msg, err := bindMessage(index, a, tau)
	if err != nil {
		return nil, err
	}
	ss1, err := spk.ProveDLog(suite.G1(), spk.SHA256, gk.U, gk.H, ok.Z0, msg)
	if err != nil {
		return nil, fmt.Errorf("klap20: join: %w", err)
	}
	ss2, err := spk.ProveDLog(suite.G1(), spk.SHA256, gk.V, gk.H, ok.Z1, msg)
	if err != nil {
		return nil, fmt.Errorf("klap20: join: %w", err)
	}
	tag := &gmlTag{A: a, Tau: tau, SS1: ss1, SS2: ss2}
	data, err := tag.encode()
	if err != nil {
		return nil, err
	}
	gml.Insert(data)

	return &MemberKey{A: a, X: x, EAG2: suite.Pair(a, gk.G2)}, nil
}

// VerifyGMLEntry checks that a GML entry's NIZK genuinely vouches for its
// (A, τ̃) pair under the group key, without needing the opener's secret
// scalars.
func VerifyGMLEntry(suite *pairing.Suite, gk *GroupKey, index uint64, data []byte) (bool, error) {
	tag, err := decodeGMLTag(suite, data)
	if err != nil {
		return false, err
	}
	msg, err := bindMessage(index, tag.A, tag.Tau)
	if err != nil {
		return false, err
	}
	ok1, err := spk.VerifyDLog(suite.G1(), spk.SHA256, gk.U, gk.H, msg, tag.SS1)
	if err != nil {
		return false, err
	}
	ok2, err := spk.VerifyDLog(suite.G1(), spk.SHA256, gk.V, gk.H, msg, tag.SS2)
	if err != nil {
		return false, err
	}
	return ok1 && ok2, nil
}
