package klap20

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

func setupGroup(t *testing.T) (*pairing.Suite, *GroupKey, *IssuerKey, *OpenerKey) {
	t.Helper()
	suite := pairing.NewSuite()
	gk, ik, err := SetupIssuer(suite)
	require.NoError(t, err)
	ok, err := SetupOpener(suite, gk)
	require.NoError(t, err)
	return suite, gk, ik, ok
}

func TestKLAP20HappyPath(t *testing.T) {
	suite, gk, ik, ok := setupGroup(t)

	gml := groupsig.NewGML(groupsig.KLAP20)
	member, err := Join(suite, gk, ik, ok, gml)
	require.NoError(t, err)
	require.Equal(t, 1, gml.Len())

	entry, present := gml.Get(0)
	require.True(t, present)
	valid, err := VerifyGMLEntry(suite, gk, entry.Index, entry.Data)
	require.NoError(t, err)
	require.True(t, valid)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	outcome, err := Verify(suite, gk, sig, msg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)

	id, err := Open(suite, gk, sig, ok, gml)
	require.NoError(t, err)
	require.Equal(t, uint64(0), id.Index)
}

func TestKLAP20SetupOpenerRejectsReSetup(t *testing.T) {
	suite, gk, _, _ := setupGroup(t)
	_, err := SetupOpener(suite, gk)
	require.ErrorIs(t, err, groupsig.ErrAlreadySetUp)
}

func TestKLAP20JoinBeforeOpenerPhaseFails(t *testing.T) {
	suite := pairing.NewSuite()
	gk, ik, err := SetupIssuer(suite)
	require.NoError(t, err)

	gml := groupsig.NewGML(groupsig.KLAP20)
	_, err = Join(suite, gk, ik, &OpenerKey{}, gml)
	require.ErrorIs(t, err, groupsig.ErrMissingField)
}

func TestKLAP20OpenFailsWithoutMatchingEntry(t *testing.T) {
	suite, gk, ik, ok := setupGroup(t)

	member, err := Join(suite, gk, ik, ok, groupsig.NewGML(groupsig.KLAP20))
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	emptyGML := groupsig.NewGML(groupsig.KLAP20)
	_, err = Open(suite, gk, sig, ok, emptyGML)
	require.ErrorIs(t, err, groupsig.ErrNotFound)
}
