// Package ecies implements hybrid encryption over a kyber group: an
// ephemeral-static Diffie-Hellman exchange, an HKDF-derived symmetric key,
// and AES-GCM sealing. GL19's Blind/Convert/Unblind operations (spec.md
// §4.9) use it to hide a signer's identity-carrying group element: it is
// encrypted to the group's converter key and re-encrypted to the consumer
// key, so only the holder of the matching private key can open each step.
package ecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"
	"golang.org/x/crypto/hkdf"

	"github.com/groupsig-go/groupsig/entropy"
)

// DefaultHash is the default hash used to derive the symmetric key.
var DefaultHash = sha256.New

const symmetricKeyLength = 32
const nonceLength = 12

// Ciphertext is the hybrid-encryption envelope: the ephemeral DH point, the
// AES-GCM ciphertext, and its nonce. This replaces the teacher's
// protobuf-defined drand.ECIES message — there is no wire/RPC boundary here,
// so a plain exported struct plays the same role without the protobuf
// dependency.
type Ciphertext struct {
	Ephemeral  []byte
	Ciphertext []byte
	Nonce      []byte
}

// Encrypt performs an ephemeral-static DH exchange against public, derives a
// symmetric key from the shared secret via HKDF, and seals msg with
// AES-GCM.
func Encrypt(g kyber.Group, fn func() hash.Hash, public kyber.Point, msg []byte) (*Ciphertext, error) {
	if fn == nil {
		fn = DefaultHash
	}
	r := g.Scalar().Pick(random.New())
	eph := g.Point().Mul(r, nil)
	ephBuf, err := eph.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("ecies: marshal ephemeral point: %w", err)
	}
	dh := g.Point().Mul(r, public)
	dhBuf, err := dh.MarshalBinary()
	if err != nil {
		return nil, err
	}

	key, err := deriveKey(fn, dhBuf)
	if err != nil {
		return nil, err
	}

	nonce, err := entropy.GetRandom(nil, nonceLength)
	if err != nil {
		return nil, err
	}

	aesgcm, err := newAESGCM(key)
	if err != nil {
		return nil, err
	}
	ciphertext := aesgcm.Seal(nil, nonce, msg, nil)
	return &Ciphertext{
		Ephemeral:  ephBuf,
		Ciphertext: ciphertext,
		Nonce:      nonce,
	}, nil
}

// Decrypt inverts Encrypt given the recipient's private scalar.
func Decrypt(g kyber.Group, fn func() hash.Hash, priv kyber.Scalar, c *Ciphertext) ([]byte, error) {
	if fn == nil {
		fn = DefaultHash
	}
	eph := g.Point()
	if err := eph.UnmarshalBinary(c.Ephemeral); err != nil {
		return nil, fmt.Errorf("ecies: unmarshal ephemeral point: %w", err)
	}
	dh := g.Point().Mul(priv, eph)
	dhBuf, err := dh.MarshalBinary()
	if err != nil {
		return nil, err
	}

	key, err := deriveKey(fn, dhBuf)
	if err != nil {
		return nil, err
	}

	aesgcm, err := newAESGCM(key)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, c.Nonce, c.Ciphertext, nil)
}

func deriveKey(fn func() hash.Hash, secret []byte) ([]byte, error) {
	reader := hkdf.New(fn, secret, nil, nil)
	key := make([]byte, symmetricKeyLength)
	n, err := reader.Read(key)
	if err != nil {
		return nil, err
	} else if n != symmetricKeyLength {
		return nil, errors.New("ecies: not enough bits from the shared secret")
	}
	return key, nil
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
