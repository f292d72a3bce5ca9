package dl21

import (
	"fmt"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/sysenv"
)

func asGroupKey(gk groupsig.GroupKey) (*GroupKey, error) {
	k, ok := gk.(*GroupKey)
	if !ok {
		return nil, fmt.Errorf("dl21: %w", groupsig.ErrSchemeMismatch)
	}
	return k, nil
}

func asMemberKey(mk groupsig.MemberKey) (*MemberKey, error) {
	k, ok := mk.(*MemberKey)
	if !ok {
		return nil, fmt.Errorf("dl21: %w", groupsig.ErrSchemeMismatch)
	}
	return k, nil
}

func asSignature(sig groupsig.Signature) (*Signature, error) {
	s, ok := sig.(*Signature)
	if !ok {
		return nil, fmt.Errorf("dl21: %w", groupsig.ErrSchemeMismatch)
	}
	return s, nil
}

func asSignatures(sigs []groupsig.Signature) ([]*Signature, error) {
	out := make([]*Signature, len(sigs))
	for i, sig := range sigs {
		s, err := asSignature(sig)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func asLinkProof(p groupsig.Proof) (*LinkProof, error) {
	lp, ok := p.(*LinkProof)
	if !ok {
		return nil, fmt.Errorf("dl21: %w", groupsig.ErrSchemeMismatch)
	}
	return lp, nil
}

// bindMessages concatenates every message's bytes into one transcript a
// Link/VerifyLink proof binds to; the dispatch layer's per-message-per-
// signature scope argument has no single-scope equivalent here since each
// dl21 signature already carries its own scope.
func bindMessages(msgs []groupsig.Message) []byte {
	var buf []byte
	for _, m := range msgs {
		buf = append(buf, m.Bytes...)
	}
	return buf
}

//nolint:gochecknoinits // registration into the global scheme registry mirrors
// the teacher's SchemeFromName switch being populated by each constructor.
func init() {
	groupsig.Register(groupsig.DL21, &groupsig.Vtable{
		Sign: func(msg groupsig.Message, mkey groupsig.MemberKey, gkey groupsig.GroupKey) (groupsig.Signature, error) {
			return nil, fmt.Errorf("dl21: sign: %w (call dl21.Sign directly; the dispatch Sign signature carries no scope argument)", groupsig.ErrUnsupported)
		},
		Verify: func(sig groupsig.Signature, msg groupsig.Message, gkey groupsig.GroupKey) (groupsig.Outcome, error) {
			s, err := asSignature(sig)
			if err != nil {
				return groupsig.Reject, err
			}
			gk, err := asGroupKey(gkey)
			if err != nil {
				return groupsig.Reject, err
			}
			return Verify(sysenv.Default().Suite, gk, s, msg)
		},
		Identify: func(sig groupsig.Signature, mkey groupsig.MemberKey, gkey groupsig.GroupKey) (groupsig.Outcome, error) {
			s, err := asSignature(sig)
			if err != nil {
				return groupsig.Reject, err
			}
			mk, err := asMemberKey(mkey)
			if err != nil {
				return groupsig.Reject, err
			}
			return Identify(sysenv.Default().Suite, s, mk)
		},
		Link: func(sigs []groupsig.Signature, msgs []groupsig.Message, mkey groupsig.MemberKey, scope []byte) (groupsig.Proof, error) {
			ss, err := asSignatures(sigs)
			if err != nil {
				return nil, err
			}
			mk, err := asMemberKey(mkey)
			if err != nil {
				return nil, err
			}
			return Link(sysenv.Default().Suite, ss, mk, bindMessages(msgs))
		},
		VerifyLink: func(proof groupsig.Proof, sigs []groupsig.Signature, msgs []groupsig.Message, gkey groupsig.GroupKey, scope []byte) (groupsig.Outcome, error) {
			lp, err := asLinkProof(proof)
			if err != nil {
				return groupsig.Reject, err
			}
			ss, err := asSignatures(sigs)
			if err != nil {
				return groupsig.Reject, err
			}
			return VerifyLink(sysenv.Default().Suite, lp, ss, bindMessages(msgs))
		},
	})
}
