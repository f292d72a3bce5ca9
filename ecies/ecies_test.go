package ecies

import (
	"crypto/sha256"
	"testing"

	"github.com/drand/kyber/util/random"
	"github.com/stretchr/testify/require"

	"github.com/groupsig-go/groupsig/pairing"
)

func TestECIES(t *testing.T) {
	suite := pairing.NewSuite()
	g := suite.G1()

	priv := g.Scalar().Pick(random.New())
	pub := g.Point().Mul(priv, nil)

	msg := []byte("shake that cipher")
	h := sha256.New
	ct, err := Encrypt(g, h, pub, msg)
	require.NoError(t, err)

	plain, err := Decrypt(g, h, priv, ct)
	require.NoError(t, err)
	require.Equal(t, msg, plain)
}
