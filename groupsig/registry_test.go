package groupsig_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/bbs04"
	"github.com/groupsig-go/groupsig/internal/log/testlogger"
	"github.com/groupsig-go/groupsig/pairing"
)

// TestRegistryDispatchLogsFailOutcome exercises the registry's dispatch
// wrappers (not just a single engine's own package) over a real scheme,
// including the Reject path that drives the DEBUG log line in
// groupsig.Verify, and the ErrUnsupported path for an operation bbs04
// does not register (Open uses the manager key path directly in bbs04,
// but Claim is unregistered by every engine in this core).
func TestRegistryDispatchLogsFailOutcome(t *testing.T) {
	logger := testlogger.New(t)
	logger.Infow("starting registry dispatch test")

	suite := pairing.NewSuite()
	gk, mk, err := bbs04.Setup(suite)
	require.NoError(t, err)

	gml := groupsig.NewGML(groupsig.BBS04)
	member, err := bbs04.Join(suite, gk, mk, gml)
	require.NoError(t, err)

	msg := groupsig.NewMessage([]byte("hello"))
	sig, err := groupsig.Sign(msg, member, gk)
	require.NoError(t, err)

	outcome, err := groupsig.Verify(sig, msg, gk)
	require.NoError(t, err)
	require.Equal(t, groupsig.Accept, outcome)

	tamperedMsg := groupsig.NewMessage([]byte("goodbye"))
	outcome, err = groupsig.Verify(sig, tamperedMsg, gk)
	require.NoError(t, err)
	require.Equal(t, groupsig.Reject, outcome, "registry dispatch should surface the engine's FAIL outcome")

	_, err = groupsig.Claim(member, sig)
	require.ErrorIs(t, err, groupsig.ErrUnsupported)
}
