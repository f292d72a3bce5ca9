package spk

import (
	"encoding/binary"
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"
)

// Term is one (base, exponent) pair contributing to a relation's product,
// spec.md §4.2's g_{i(k,j)}^{x_{e(k,j)}}.
type Term struct {
	BaseIndex uint16
	ExpIndex  uint16
}

// Relation describes one y_k = ∏_j g_{i(k,j)}^{x_{e(k,j)}}. All of Group,
// the bases its Terms reference, and y_k itself must live in the same
// kyber.Group — callers constructing a multi-group statement (e.g. BBS04's
// third relation, which is linearized into GT) give each Relation the
// right Group.
type Relation struct {
	Group kyber.Group
	Terms []Term
}

// Statement is the public input to a generic SPK-REP instance: the target
// points Y (one per relation), the shared base pool G, and the Relations
// tying them together. NumExponents bounds how many secret exponents the
// prover must supply.
type Statement struct {
	Y            []kyber.Point
	G            []kyber.Point
	Relations    []Relation
	NumExponents int
}

// Proof is a Fiat–Shamir SPK-REP proof: one challenge (reduced into the
// shared scalar field Fr) and one response per secret exponent.
type Proof struct {
	Challenge kyber.Scalar
	Responses []kyber.Scalar
}

func encodeIndices(stmt *Statement) []byte {
	var buf []byte
	for _, rel := range stmt.Relations {
		for _, t := range rel.Terms {
			var b [4]byte
			binary.LittleEndian.PutUint16(b[0:2], t.BaseIndex)
			binary.LittleEndian.PutUint16(b[2:4], t.ExpIndex)
			buf = append(buf, b[:]...)
		}
	}
	return buf
}

func marshalAll(points []kyber.Point) ([]byte, error) {
	var buf []byte
	for _, p := range points {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("spk: marshal rep element: %w", err)
		}
		buf = append(buf, b...)
	}
	return buf, nil
}

// repChallenge hashes, in the exact order spec.md §4.2 mandates: message,
// all y, all g, all indices, all T. This determinism is load-bearing:
// "Determinism of the hash input order is part of the specification ...
// Cross-scheme proof formats must be byte-equivalent."
func repChallenge(frGroup kyber.Group, alg HashAlgorithm, stmt *Statement, msg []byte, commitments []kyber.Point) (kyber.Scalar, error) {
	h := alg.New()
	h.Write(msg)
	yBuf, err := marshalAll(stmt.Y)
	if err != nil {
		return nil, err
	}
	h.Write(yBuf)
	gBuf, err := marshalAll(stmt.G)
	if err != nil {
		return nil, err
	}
	h.Write(gBuf)
	h.Write(encodeIndices(stmt))
	tBuf, err := marshalAll(commitments)
	if err != nil {
		return nil, err
	}
	h.Write(tBuf)
	return frGroup.Scalar().SetBytes(h.Sum(nil)), nil
}

// termPoint computes g_{t.BaseIndex}^{scalar}.
func termPoint(rel Relation, stmt *Statement, t Term, scalar kyber.Scalar) kyber.Point {
	return rel.Group.Point().Mul(scalar, stmt.G[t.BaseIndex])
}

func commitment(stmt *Statement, rel Relation, exponents []kyber.Scalar) kyber.Point {
	acc := rel.Group.Point().Null()
	for _, t := range rel.Terms {
		acc = rel.Group.Point().Add(acc, termPoint(rel, stmt, t, exponents[t.ExpIndex]))
	}
	return acc
}

// Prove constructs a generic SPK-REP over stmt, given the prover's secret
// exponents (len == stmt.NumExponents) and the frGroup whose scalar field
// every exponent and the challenge live in (Fr is shared across G1/G2/GT
// on a single pairing curve, so any of the three groups' Scalar() works).
func Prove(frGroup kyber.Group, alg HashAlgorithm, stmt *Statement, exponents []kyber.Scalar, msg []byte) (*Proof, error) {
	if len(exponents) != stmt.NumExponents {
		return nil, fmt.Errorf("spk: expected %d exponents, got %d", stmt.NumExponents, len(exponents))
	}
	blinds := make([]kyber.Scalar, stmt.NumExponents)
	for i := range blinds {
		blinds[i] = frGroup.Scalar().Pick(random.New())
	}
	commitments := make([]kyber.Point, len(stmt.Relations))
	for k, rel := range stmt.Relations {
		commitments[k] = commitment(stmt, rel, blinds)
	}
	c, err := repChallenge(frGroup, alg, stmt, msg, commitments)
	if err != nil {
		return nil, err
	}
	responses := make([]kyber.Scalar, stmt.NumExponents)
	for i := range responses {
		responses[i] = frGroup.Scalar().Sub(blinds[i], frGroup.Scalar().Mul(c, exponents[i]))
	}
	return &Proof{Challenge: c, Responses: responses}, nil
}

// Verify checks a generic SPK-REP proof against stmt.
func Verify(frGroup kyber.Group, alg HashAlgorithm, stmt *Statement, msg []byte, proof *Proof) (bool, error) {
	if proof == nil || proof.Challenge == nil || len(proof.Responses) != stmt.NumExponents {
		return false, fmt.Errorf("spk: malformed rep proof")
	}
	commitments := make([]kyber.Point, len(stmt.Relations))
	for k, rel := range stmt.Relations {
		img := rel.Group.Point().Mul(proof.Challenge, stmt.Y[k])
		for _, t := range rel.Terms {
			img = rel.Group.Point().Add(img, termPoint(rel, stmt, t, proof.Responses[t.ExpIndex]))
		}
		commitments[k] = img
	}
	cPrime, err := repChallenge(frGroup, alg, stmt, msg, commitments)
	if err != nil {
		return false, err
	}
	return cPrime.Equal(proof.Challenge), nil
}
