package bbs04

import (
	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

// Open identifies the signer of sig by testing, for each GML entry
// (index, A_i), whether T3·(T1^ξ1 · T2^ξ2)^-1 = A_i, per spec.md §4.5.
// BBS04 has no open-proof, so Open returns only the Identity; the registry's
// Open wrapper reports a nil Proof for this scheme.
func Open(suite *pairing.Suite, sig *Signature, mk *ManagerKey, gml *groupsig.GML) (groupsig.Identity, error) {
	xi1t1 := suite.G1().Point().Mul(mk.Xi1, sig.T1)
	xi2t2 := suite.G1().Point().Mul(mk.Xi2, sig.T2)
	blind := suite.G1().Point().Add(xi1t1, xi2t2)
	candidate := suite.G1().Point().Sub(sig.T3, blind)

	var found groupsig.Identity
	var ok bool
	gml.Iterate(func(e *groupsig.Entry) bool {
		ai := suite.G1().Point()
		if err := ai.UnmarshalBinary(e.Data); err != nil {
			return true
		}
		if ai.Equal(candidate) {
			found = groupsig.NewIndexIdentity(groupsig.BBS04, e.Index)
			ok = true
			return false
		}
		return true
	})
	if !ok {
		return groupsig.Identity{}, groupsig.ErrNotFound
	}
	return found, nil
}
