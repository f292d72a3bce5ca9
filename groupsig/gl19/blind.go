package gl19

import (
	"fmt"

	"github.com/groupsig-go/groupsig/ecies"
	"github.com/groupsig-go/groupsig/pairing"
)

// BlindSignature wraps a Signature together with its signer's credential
// element A, hidden from everyone but the converter behind an ECIES
// envelope addressed to the group's converter key (spec.md §4.9: "an
// ElGamal-style ciphertext wrapping of the signature's identifying
// components").
type BlindSignature struct {
	Sig        *Signature
	Ciphertext *ecies.Ciphertext
}

// ConvertedSignature is a BlindSignature whose envelope has been
// re-addressed by the converter so only the final consumer can open it.
type ConvertedSignature struct {
	Sig        *Signature
	Ciphertext *ecies.Ciphertext
}

// Blind hides mk's credential element behind an ECIES envelope under the
// group's converter key, leaving sig itself untouched.
func Blind(suite *pairing.Suite, gk *GroupKey, mk *MemberKey, sig *Signature) (*BlindSignature, error) {
	ab, err := mk.A.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("gl19: blind: %w", err)
	}
	ct, err := ecies.Encrypt(suite.G1(), nil, gk.CPK, ab)
	if err != nil {
		return nil, fmt.Errorf("gl19: blind: %w", err)
	}
	return &BlindSignature{Sig: sig, Ciphertext: ct}, nil
}

// Convert decrypts blindSig's envelope with the converter's private key
// and re-seals it under the group's final-consumer key, without ever
// exposing the plaintext identity element to the caller.
func Convert(suite *pairing.Suite, gk *GroupKey, converterKey *BlindingKey, blindSig *BlindSignature) (*ConvertedSignature, error) {
	plain, err := ecies.Decrypt(suite.G1(), nil, converterKey.Sk, blindSig.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("gl19: convert: %w", err)
	}
	ct, err := ecies.Encrypt(suite.G1(), nil, gk.EPK, plain)
	if err != nil {
		return nil, fmt.Errorf("gl19: convert: %w", err)
	}
	return &ConvertedSignature{Sig: blindSig.Sig, Ciphertext: ct}, nil
}

// Unblind recovers the signer's credential element A using the final
// consumer's private key. The returned bytes are mk.A's canonical
// encoding; callers compare it against known members' credentials to
// identify the signer.
func Unblind(suite *pairing.Suite, consumerKey *BlindingKey, converted *ConvertedSignature) ([]byte, *Signature, error) {
	plain, err := ecies.Decrypt(suite.G1(), nil, consumerKey.Sk, converted.Ciphertext)
	if err != nil {
		return nil, nil, fmt.Errorf("gl19: unblind: %w", err)
	}
	return plain, converted.Sig, nil
}
