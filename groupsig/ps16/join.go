package ps16

import (
	"fmt"

	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/pairing"
	"github.com/groupsig-go/groupsig/spk"
)

// JoinState tracks which of the three join-protocol steps is next, per
// spec.md §5: "Join-protocol messages are strictly numbered 0..N-1 per
// scheme; invoking a step out of order is ERROR." Each side (manager and
// member) keeps its own JoinState; nothing here transports the messages
// between them — that is the caller's concern, per spec.md §5's "the core
// only produces/consumes byte strings."
type JoinState struct {
	next int
}

// NewJoinState starts a fresh join at step 0.
func NewJoinState() *JoinState { return &JoinState{} }

func (j *JoinState) advance(step int) error {
	if step != j.next {
		return groupsig.ErrOutOfOrder
	}
	j.next++
	return nil
}

// ManagerChallenge is step 0: the manager picks a fresh nonce.
func ManagerChallenge(suite *pairing.Suite, mgrState *JoinState) (kyber.Scalar, error) {
	if err := mgrState.advance(0); err != nil {
		return nil, err
	}
	return suite.G1().Scalar().Pick(random.New()), nil
}

// MemberResponse is step 1: the member picks its secret sk, commits to it
// as Q = g^sk and τ̃ = g̃^sk, and proves knowledge of sk under Q bound to
// the manager's nonce.
type MemberResponse struct {
	Q     kyber.Point
	Tau   kyber.Point
	Proof *spk.DLogProof
}

// MemberRespond runs step 1 for the member, returning both the message to
// send to the manager and the secret sk the member must retain locally to
// finish the join once step 2 completes.
func MemberRespond(suite *pairing.Suite, gk *GroupKey, memberState *JoinState, nonce kyber.Scalar) (*MemberResponse, kyber.Scalar, error) {
	if err := memberState.advance(1); err != nil {
		return nil, nil, err
	}
	sk := suite.G1().Scalar().Pick(random.New())
	q := suite.G1().Point().Mul(sk, gk.G)
	tau := suite.G2().Point().Mul(sk, gk.G2)

	nonceBytes, err := nonce.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	proof, err := spk.ProveDLog(suite.G1(), spk.SHA256, gk.G, q, sk, nonceBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("ps16: join step 1: %w", err)
	}
	return &MemberResponse{Q: q, Tau: tau, Proof: proof}, sk, nil
}

// ManagerIssue is step 2: the manager verifies the member's proof, issues
// the PS16 credential (σ1, σ2), and appends (index, τ̃) to the GML.
func ManagerIssue(suite *pairing.Suite, gk *GroupKey, mk *ManagerKey, mgrState *JoinState, nonce kyber.Scalar, resp *MemberResponse, gml *groupsig.GML) (sigma1, sigma2 kyber.Point, err error) {
	if err := mgrState.advance(2); err != nil {
		return nil, nil, err
	}
	nonceBytes, err := nonce.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	ok, err := spk.VerifyDLog(suite.G1(), spk.SHA256, gk.G, resp.Q, nonceBytes, resp.Proof)
	if err != nil {
		return nil, nil, fmt.Errorf("ps16: join step 2: %w", err)
	}
	if !ok {
		return nil, nil, groupsig.ErrMissingField
	}

	u := suite.G1().Scalar().Pick(random.New())
	sigma1 = suite.G1().Point().Mul(u, gk.G)
	uy := suite.G1().Scalar().Mul(u, mk.Y)
	sigma2 = suite.G1().Point().Add(
		suite.G1().Point().Mul(mk.X, sigma1),
		suite.G1().Point().Mul(uy, resp.Q),
	)

	tauBytes, err := resp.Tau.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	gml.Insert(tauBytes)
	return sigma1, sigma2, nil
}

// FinishJoin builds the member's final key once step 2's output is
// delivered back to it.
func FinishJoin(suite *pairing.Suite, sk kyber.Scalar, sigma1, sigma2 kyber.Point, gk *GroupKey) *MemberKey {
	return &MemberKey{
		Sk:        sk,
		Sigma1:    sigma1,
		Sigma2:    sigma2,
		ESigma1G2: suite.Pair(sigma1, gk.G2),
	}
}
