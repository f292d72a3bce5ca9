package groupsig_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/bbs04"
	"github.com/groupsig-go/groupsig/pairing"
)

func TestToStringRoundTripsThroughFromBase64(t *testing.T) {
	suite := pairing.NewSuite()
	gk, _, err := bbs04.Setup(suite)
	require.NoError(t, err)

	s := groupsig.ToString(gk, false)
	require.NotContains(t, s, "\n")

	decoded, err := pairing.FromBase64(s)
	require.NoError(t, err)
	require.Equal(t, gk.Export(), decoded)
}

func TestToStringWrapsAt72Chars(t *testing.T) {
	suite := pairing.NewSuite()
	gk, _, err := bbs04.Setup(suite)
	require.NoError(t, err)

	wrapped := groupsig.ToString(gk, true)
	require.Contains(t, wrapped, "\n")
	for _, line := range strings.Split(wrapped, "\n") {
		require.LessOrEqual(t, len(line), 72)
	}

	decoded, err := pairing.FromBase64(wrapped)
	require.NoError(t, err)
	require.Equal(t, gk.Export(), decoded)
}
