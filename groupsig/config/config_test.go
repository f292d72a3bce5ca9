package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig/bbs04"
	"github.com/groupsig-go/groupsig/config"
	"github.com/groupsig-go/groupsig/pairing"
)

func TestGroupConfigSaveLoadRoundTrip(t *testing.T) {
	suite := pairing.NewSuite()
	gk, mk, err := bbs04.Setup(suite)
	require.NoError(t, err)

	c := config.NewGroupConfig("test-group", gk, mk, nil)
	require.Equal(t, "BBS04", c.Scheme)

	dir := t.TempDir()
	require.NoError(t, c.Save(dir, "group.toml"))

	loaded, err := config.LoadGroupConfig(filepath.Join(dir, "group.toml"))
	require.NoError(t, err)
	require.Equal(t, c.ID, loaded.ID)
	require.Equal(t, c.Scheme, loaded.Scheme)

	groupKeyBytes, err := loaded.GroupKeyBytes()
	require.NoError(t, err)
	require.Equal(t, gk.Export(), groupKeyBytes)

	issuerKeyBytes, err := loaded.IssuerKeyBytes()
	require.NoError(t, err)
	require.Equal(t, mk.Export(), issuerKeyBytes)

	openerKeyBytes, err := loaded.OpenerKeyBytes()
	require.NoError(t, err)
	require.Nil(t, openerKeyBytes)
}
