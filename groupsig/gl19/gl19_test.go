package gl19

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
)

func setupGroup(t *testing.T) (*pairing.Suite, *GroupKey, *IssuerKey, *BlindingKey, *BlindingKey) {
	t.Helper()
	suite := pairing.NewSuite()
	gk, ik, converter, consumer, err := Setup(suite)
	require.NoError(t, err)
	return suite, gk, ik, converter, consumer
}

func TestGL19HappyPath(t *testing.T) {
	suite, gk, ik, _, _ := setupGroup(t)

	member, err := Join(suite, gk, ik, 0)
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	outcome, err := Verify(suite, gk, sig, msg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)
}

func TestGL19WithExpiration(t *testing.T) {
	suite, gk, ik, _, _ := setupGroup(t)

	member, err := Join(suite, gk, ik, 1893456000)
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	outcome, err := Verify(suite, gk, sig, msg)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)

	revealed, err := Reveal(sig)
	require.NoError(t, err)
	var l uint64
	for i := 0; i < 8; i++ {
		l |= uint64(revealed[i]) << (8 * i)
	}
	require.Equal(t, uint64(1893456000), l)
}

func TestGL19RejectsTamperedMessage(t *testing.T) {
	suite, gk, ik, _, _ := setupGroup(t)

	member, err := Join(suite, gk, ik, 0)
	require.NoError(t, err)

	sig, err := Sign(suite, gk, member, groupsig.NewMessage([]byte("hello")))
	require.NoError(t, err)

	outcome, err := Verify(suite, gk, sig, groupsig.NewMessage([]byte("goodbye")))
	require.NoError(t, err)
	require.Equal(t, groupsig.Reject, outcome)
}

func TestGL19SignaturesAreUnlinkable(t *testing.T) {
	suite, gk, ik, _, _ := setupGroup(t)

	member, err := Join(suite, gk, ik, 0)
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig1, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)
	sig2, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	require.False(t, sig1.Aprime.Equal(sig2.Aprime))
}

func TestGL19BlindConvertUnblind(t *testing.T) {
	suite, gk, ik, converter, consumer := setupGroup(t)

	member, err := Join(suite, gk, ik, 0)
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := Sign(suite, gk, member, msg)
	require.NoError(t, err)

	blindSig, err := Blind(suite, gk, member, sig)
	require.NoError(t, err)

	converted, err := Convert(suite, gk, converter, blindSig)
	require.NoError(t, err)

	plain, recoveredSig, err := Unblind(suite, consumer, converted)
	require.NoError(t, err)
	require.Same(t, sig, recoveredSig)

	ab, err := member.A.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, ab, plain)
}
