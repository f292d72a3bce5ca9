package dl21

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

func setupGroup(t *testing.T) (*pairing.Suite, *GroupKey, *IssuerKey) {
	t.Helper()
	suite := pairing.NewSuite()
	gk, ik, err := Setup(suite)
	require.NoError(t, err)
	return suite, gk, ik
}

func TestDL21HappyPath(t *testing.T) {
	suite, gk, ik := setupGroup(t)

	member, err := Join(suite, gk, ik)
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg, []byte("scope-a"))
	require.NoError(t, err)

	outcome, err := Verify(suite, gk, sig, msg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)
}

func TestDL21SameScopeSameNym(t *testing.T) {
	suite, gk, ik := setupGroup(t)

	member, err := Join(suite, gk, ik)
	require.NoError(t, err)

	sig1, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m1")), []byte("scope-a"))
	require.NoError(t, err)
	sig2, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m2")), []byte("scope-a"))
	require.NoError(t, err)

	require.True(t, sig1.Nym.Equal(sig2.Nym))
	require.False(t, sig1.Aprime.Equal(sig2.Aprime))
}

func TestDL21DifferentScopeDifferentNym(t *testing.T) {
	suite, gk, ik := setupGroup(t)

	member, err := Join(suite, gk, ik)
	require.NoError(t, err)

	sig1, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m1")), []byte("scope-a"))
	require.NoError(t, err)
	sig2, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m1")), []byte("scope-b"))
	require.NoError(t, err)

	require.False(t, sig1.Nym.Equal(sig2.Nym))
}

func TestDL21Identify(t *testing.T) {
	suite, gk, ik := setupGroup(t)

	member, err := Join(suite, gk, ik)
	require.NoError(t, err)
	other, err := Join(suite, gk, ik)
	require.NoError(t, err)

	sig, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("hello")), []byte("scope-a"))
	require.NoError(t, err)

	outcome, err := Identify(suite, sig, member)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)

	outcome, err = Identify(suite, sig, other)
	require.NoError(t, err)
	require.Equal(t, groupsig.Reject, outcome)
}

func TestDL21LinkAcrossScopes(t *testing.T) {
	suite, gk, ik := setupGroup(t)

	member, err := Join(suite, gk, ik)
	require.NoError(t, err)

	sig1, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m1")), []byte("scope-a"))
	require.NoError(t, err)
	sig2, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m2")), []byte("scope-b"))
	require.NoError(t, err)

	linkMsg := []byte("link-context")
	proof, err := Link(suite, []*Signature{sig1, sig2}, member, linkMsg)
	require.NoError(t, err)

	outcome, err := VerifyLink(suite, proof, []*Signature{sig1, sig2}, linkMsg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)
}

func TestDL21LinkRejectsUnrelatedSignature(t *testing.T) {
	suite, gk, ik := setupGroup(t)

	member, err := Join(suite, gk, ik)
	require.NoError(t, err)
	other, err := Join(suite, gk, ik)
	require.NoError(t, err)

	sig1, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m1")), []byte("scope-a"))
	require.NoError(t, err)
	sig2, err := Sign(suite, gk, other, groupsig.NewMessage([]byte("m2")), []byte("scope-b"))
	require.NoError(t, err)

	linkMsg := []byte("link-context")
	proof, err := Link(suite, []*Signature{sig1, sig2}, member, linkMsg)
	require.NoError(t, err)

	outcome, err := VerifyLink(suite, proof, []*Signature{sig1, sig2}, linkMsg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Reject, outcome)
}
