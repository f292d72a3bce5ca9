package klap20

import (
	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

// Open identifies the signer of sig using the Opener key (z0, z1), per
// spec.md §4.7: cancel the blinding on T3 with T1^z0·T2^z1 and match the
// result against each GML entry's tracing point A.
func Open(suite *pairing.Suite, gk *GroupKey, sig *Signature, ok *OpenerKey, gml *groupsig.GML) (groupsig.Identity, error) {
	z0t1 := suite.G1().Point().Mul(ok.Z0, sig.T1)
	z1t2 := suite.G1().Point().Mul(ok.Z1, sig.T2)
	blind := suite.G1().Point().Add(z0t1, z1t2)
	candidate := suite.G1().Point().Sub(sig.T3, blind)

	var found groupsig.Identity
	matched := false
	gml.Iterate(func(e *groupsig.Entry) bool {
		tag, err := decodeGMLTag(suite, e.Data)
		if err != nil {
			return true
		}
		if tag.A.Equal(candidate) {
			found = groupsig.NewIndexIdentity(groupsig.KLAP20, e.Index)
			matched = true
			return false
		}
		return true
	})
	if !matched {
		return groupsig.Identity{}, groupsig.ErrNotFound
	}
	return found, nil
}
