package ps16

import (
	"github.com/drand/kyber"

	"github.com/groupsig-go/groupsig"
)

// MemberKey is a member's PS16 credential: the secret sk it chose during
// join, the signature (σ1, σ2) the issuer returned over it, and the
// precomputed e(σ1, g̃) spec.md §3 calls for.
type MemberKey struct {
	Sk        kyber.Scalar
	Sigma1    kyber.Point
	Sigma2    kyber.Point
	ESigma1G2 kyber.Point
}

func (mk *MemberKey) SchemeCode() groupsig.Code { return groupsig.PS16 }

// Export encodes (sk, σ1, σ2).
func (mk *MemberKey) Export() []byte {
	w := groupsig.NewKeyWriter(groupsig.PS16, groupsig.MemberKeyType)
	skb, _ := mk.Sk.MarshalBinary()
	s1b, _ := mk.Sigma1.MarshalBinary()
	s2b, _ := mk.Sigma2.MarshalBinary()
	w.Field(skb)
	w.Field(s1b)
	w.Field(s2b)
	return w.Bytes()
}
