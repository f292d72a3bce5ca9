package dl21seq

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/dl21"
	"github.com/groupsig-go/groupsig/pairing"
)

func setupGroup(t *testing.T) (*pairing.Suite, *dl21.GroupKey, *dl21.IssuerKey) {
	t.Helper()
	suite := pairing.NewSuite()
	gk, ik, err := dl21.Setup(suite)
	require.NoError(t, err)
	return suite, gk, ik
}

func TestDL21SeqHappyPath(t *testing.T) {
	suite, gk, ik := setupGroup(t)
	member, err := dl21.Join(suite, gk, ik)
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg, []byte("scope-a"), 1)
	require.NoError(t, err)

	outcome, err := Verify(suite, gk, sig, msg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)
}

func TestDL21SeqSequentialLinkAccepts(t *testing.T) {
	suite, gk, ik := setupGroup(t)
	member, err := dl21.Join(suite, gk, ik)
	require.NoError(t, err)

	sig1, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m1")), []byte("scope-a"), 1)
	require.NoError(t, err)
	sig2, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m2")), []byte("scope-a"), 2)
	require.NoError(t, err)

	linkMsg := []byte("link-context")
	proof, err := SequentialLink(suite, []*Signature{sig1, sig2}, member, linkMsg)
	require.NoError(t, err)

	outcome, err := VerifySequentialLink(suite, proof, []*Signature{sig1, sig2}, linkMsg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)
}

func TestDL21SeqRejectsNonIncreasingCounter(t *testing.T) {
	suite, gk, ik := setupGroup(t)
	member, err := dl21.Join(suite, gk, ik)
	require.NoError(t, err)

	sig1, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m1")), []byte("scope-a"), 2)
	require.NoError(t, err)
	sig2, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m2")), []byte("scope-a"), 2)
	require.NoError(t, err)

	linkMsg := []byte("link-context")
	proof, err := SequentialLink(suite, []*Signature{sig1, sig2}, member, linkMsg)
	require.NoError(t, err)

	_, err = VerifySequentialLink(suite, proof, []*Signature{sig1, sig2}, linkMsg)
	require.Error(t, err)
}

func TestDL21SeqCounterIsIndependentPerScope(t *testing.T) {
	suite, gk, ik := setupGroup(t)
	member, err := dl21.Join(suite, gk, ik)
	require.NoError(t, err)

	sig1, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m1")), []byte("scope-a"), 5)
	require.NoError(t, err)
	sig2, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("m2")), []byte("scope-b"), 1)
	require.NoError(t, err)

	linkMsg := []byte("link-context")
	proof, err := SequentialLink(suite, []*Signature{sig1, sig2}, member, linkMsg)
	require.NoError(t, err)

	outcome, err := VerifySequentialLink(suite, proof, []*Signature{sig1, sig2}, linkMsg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)
}
