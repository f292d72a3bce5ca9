package dl21seq

import (
	"fmt"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/dl21"
	"github.com/groupsig-go/groupsig/pairing"
)

// SequentialLink proves that sigs, given in the caller's claimed order,
// all came from mk, by delegating to dl21.Link over their inner
// signatures. Ordering and counter strictness are checked separately by
// VerifySequentialLink, since they are plain data rather than something a
// zero-knowledge proof needs to hide.
func SequentialLink(suite *pairing.Suite, sigs []*Signature, mk *dl21.MemberKey, msg []byte) (*dl21.LinkProof, error) {
	inner := make([]*dl21.Signature, len(sigs))
	for i, s := range sigs {
		inner[i] = s.Inner
	}
	return dl21.Link(suite, inner, mk, msg)
}

// VerifySequentialLink checks proof and additionally enforces that, among
// signatures sharing a scope, counters strictly increase in the order
// given — the "sequential" property DL21SEQ adds over plain DL21 linking.
func VerifySequentialLink(suite *pairing.Suite, proof *dl21.LinkProof, sigs []*Signature, msg []byte) (groupsig.Outcome, error) {
	lastByScope := map[string]uint64{}
	for i, s := range sigs {
		key := string(s.Inner.Scope)
		if last, seen := lastByScope[key]; seen && s.Counter <= last {
			return groupsig.Reject, fmt.Errorf("dl21seq: verify-sequential-link: counter did not increase at index %d", i)
		}
		lastByScope[key] = s.Counter
	}

	inner := make([]*dl21.Signature, len(sigs))
	for i, s := range sigs {
		inner[i] = s.Inner
	}
	return dl21.VerifyLink(suite, proof, inner, msg)
}
