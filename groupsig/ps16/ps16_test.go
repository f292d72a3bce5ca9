package ps16

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

func joinOneMember(t *testing.T, suite *pairing.Suite, gk *GroupKey, mk *ManagerKey, gml *groupsig.GML) *MemberKey {
	t.Helper()

	mgrState := NewJoinState()
	memberState := NewJoinState()

	nonce, err := ManagerChallenge(suite, mgrState)
	require.NoError(t, err)

	resp, sk, err := MemberRespond(suite, gk, memberState, nonce)
	require.NoError(t, err)

	sigma1, sigma2, err := ManagerIssue(suite, gk, mk, mgrState, nonce, resp, gml)
	require.NoError(t, err)

	return FinishJoin(suite, sk, sigma1, sigma2, gk)
}

func TestPS16HappyPath(t *testing.T) {
	suite := pairing.NewSuite()
	gk, mk, err := Setup(suite)
	require.NoError(t, err)

	gml := groupsig.NewGML(groupsig.PS16)
	member := joinOneMember(t, suite, gk, mk, gml)
	require.Equal(t, 1, gml.Len())

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	outcome, err := Verify(suite, gk, sig, msg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)

	id, proof, err := Open(suite, gk, mk, sig, gml)
	require.NoError(t, err)
	require.Equal(t, uint64(0), id.Index)

	openOutcome, err := OpenVerify(suite, gk, sig, proof)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, openOutcome)
}

func TestPS16JoinOutOfOrder(t *testing.T) {
	suite := pairing.NewSuite()
	gk, _, err := Setup(suite)
	require.NoError(t, err)

	memberState := NewJoinState()
	_, _, err = MemberRespond(suite, gk, memberState, suite.G1().Scalar().Zero())
	require.ErrorIs(t, err, groupsig.ErrOutOfOrder)
}

func TestPS16RejectsTamperedSignature(t *testing.T) {
	suite := pairing.NewSuite()
	gk, mk, err := Setup(suite)
	require.NoError(t, err)

	gml := groupsig.NewGML(groupsig.PS16)
	member := joinOneMember(t, suite, gk, mk, gml)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	otherMsg := groupsig.NewMessage([]byte("goodbye"))
	outcome, err := Verify(suite, gk, sig, otherMsg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Reject, outcome)
}

func TestPS16OpenVerifyRejectsTamperedProof(t *testing.T) {
	suite := pairing.NewSuite()
	gk, mk, err := Setup(suite)
	require.NoError(t, err)

	gml := groupsig.NewGML(groupsig.PS16)
	member := joinOneMember(t, suite, gk, mk, gml)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	_, proof, err := Open(suite, gk, mk, sig, gml)
	require.NoError(t, err)

	tampered := &OpenProof{
		Tau:   proof.Tau,
		Proof: proof.Proof,
	}
	tampered.Proof.Response = suite.G1().Scalar().Add(proof.Proof.Response, suite.G1().Scalar().One())

	outcome, err := OpenVerify(suite, gk, sig, tampered)
	require.NoError(t, err)
	require.Equal(t, groupsig.Reject, outcome)
}

func TestPS16OpenFailsWithoutMatchingEntry(t *testing.T) {
	suite := pairing.NewSuite()
	gk, mk, err := Setup(suite)
	require.NoError(t, err)

	member := joinOneMember(t, suite, gk, mk, groupsig.NewGML(groupsig.PS16))

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	emptyGML := groupsig.NewGML(groupsig.PS16)
	_, _, err = Open(suite, gk, mk, sig, emptyGML)
	require.ErrorIs(t, err, groupsig.ErrNotFound)
}
