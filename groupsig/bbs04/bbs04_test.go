package bbs04

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

func TestBBS04HappyPath(t *testing.T) {
	suite := pairing.NewSuite()
	gk, mk, err := Setup(suite)
	require.NoError(t, err)

	gml := groupsig.NewGML(groupsig.BBS04)
	member, err := Join(suite, gk, mk, gml)
	require.NoError(t, err)
	require.Equal(t, 1, gml.Len())

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	outcome, err := Verify(suite, gk, sig, msg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)

	id, err := Open(suite, sig, mk, gml)
	require.NoError(t, err)
	require.Equal(t, uint64(0), id.Index)
}

func TestBBS04RejectsWrongGroup(t *testing.T) {
	suite := pairing.NewSuite()
	gk, mk, err := Setup(suite)
	require.NoError(t, err)
	gml := groupsig.NewGML(groupsig.BBS04)
	member, err := Join(suite, gk, mk, gml)
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	otherGK, _, err := Setup(suite)
	require.NoError(t, err)

	outcome, err := Verify(suite, otherGK, sig, msg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Reject, outcome)
}

func TestBBS04OpenFailsWithoutMatchingEntry(t *testing.T) {
	suite := pairing.NewSuite()
	gk, mk, err := Setup(suite)
	require.NoError(t, err)

	emptyGML := groupsig.NewGML(groupsig.BBS04)
	member, err := Join(suite, gk, mk, groupsig.NewGML(groupsig.BBS04))
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	_, err = Open(suite, sig, mk, emptyGML)
	require.ErrorIs(t, err, groupsig.ErrNotFound)
}
