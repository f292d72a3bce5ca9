package dl21

import (
	"fmt"

	"github.com/drand/kyber"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
	"github.com/groupsig-go/groupsig/spk"
)

// LinkProof is a joint SPK-DLOG that the same y underlies every nym in a
// set of signatures, per spec.md §4.8: "a proof that multiple signatures
// share the same y ... realized as an SPK-DLOG of y over the
// product-of-nyms relation." Each signature contributes its own
// (scopeBase, nym) relation to one spk.Statement, all tied to the same
// single hidden exponent y.
type LinkProof struct {
	Proof *spk.Proof
}

func (p *LinkProof) SchemeCode() groupsig.Code { return groupsig.DL21 }

func (p *LinkProof) Export() []byte {
	w := groupsig.NewWriter(groupsig.DL21)
	cb, _ := p.Proof.Challenge.MarshalBinary()
	w.Field(cb)
	for _, r := range p.Proof.Responses {
		b, _ := r.MarshalBinary()
		w.Field(b)
	}
	return w.Bytes()
}

func linkStatement(suite *pairing.Suite, sigs []*Signature) *spk.Statement {
	stmt := &spk.Statement{NumExponents: 1}
	for _, s := range sigs {
		scopeBase := suite.HashToG1(s.Scope)
		stmt.Y = append(stmt.Y, s.Nym)
		stmt.G = append(stmt.G, scopeBase)
		stmt.Relations = append(stmt.Relations, spk.Relation{
			Group: suite.G1(),
			Terms: []spk.Term{{BaseIndex: uint16(len(stmt.G) - 1), ExpIndex: 0}},
		})
	}
	return stmt
}

// Link proves that every signature in sigs was produced with the same
// member secret y as mk holds, regardless of each signature's scope.
func Link(suite *pairing.Suite, sigs []*Signature, mk *MemberKey, msg []byte) (*LinkProof, error) {
	if len(sigs) == 0 {
		return nil, fmt.Errorf("dl21: link: %w", groupsig.ErrMissingField)
	}
	stmt := linkStatement(suite, sigs)
	proof, err := spk.Prove(suite.G1(), spk.SHA256, stmt, []kyber.Scalar{mk.Y}, msg)
	if err != nil {
		return nil, fmt.Errorf("dl21: link: %w", err)
	}
	return &LinkProof{Proof: proof}, nil
}

// VerifyLink checks a proof produced by Link.
func VerifyLink(suite *pairing.Suite, proof *LinkProof, sigs []*Signature, msg []byte) (groupsig.Outcome, error) {
	stmt := linkStatement(suite, sigs)
	ok, err := spk.Verify(suite.G1(), spk.SHA256, stmt, msg, proof.Proof)
	if err != nil {
		return groupsig.Reject, fmt.Errorf("dl21: verify-link: %w", err)
	}
	return groupsig.OutcomeOf(ok), nil
}
