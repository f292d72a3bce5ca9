package gl19

import (
	"fmt"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/sysenv"
)

func asGroupKey(gk groupsig.GroupKey) (*GroupKey, error) {
	k, ok := gk.(*GroupKey)
	if !ok {
		return nil, fmt.Errorf("gl19: %w", groupsig.ErrSchemeMismatch)
	}
	return k, nil
}

func asMemberKey(mk groupsig.MemberKey) (*MemberKey, error) {
	k, ok := mk.(*MemberKey)
	if !ok {
		return nil, fmt.Errorf("gl19: %w", groupsig.ErrSchemeMismatch)
	}
	return k, nil
}

func asSignature(sig groupsig.Signature) (*Signature, error) {
	s, ok := sig.(*Signature)
	if !ok {
		return nil, fmt.Errorf("gl19: %w", groupsig.ErrSchemeMismatch)
	}
	return s, nil
}

// Register installs GL19's vtable. GL19 has no opener, so Open/OpenVerify
// are left nil. Blind/Convert/Unblind are also left nil: the registry's
// generic signatures for them carry no group key or pairing suite, which
// this scheme's ECIES envelopes need, so callers reach blind.go's
// Blind/Convert/Unblind directly instead of through the dispatch layer.
//
//nolint:gochecknoinits // registration into the global scheme registry mirrors
// the teacher's SchemeFromName switch being populated by each constructor.
func init() {
	groupsig.Register(groupsig.GL19, &groupsig.Vtable{
		Sign: func(msg groupsig.Message, mkey groupsig.MemberKey, gkey groupsig.GroupKey) (groupsig.Signature, error) {
			mk, err := asMemberKey(mkey)
			if err != nil {
				return nil, err
			}
			gk, err := asGroupKey(gkey)
			if err != nil {
				return nil, err
			}
			return Sign(sysenv.Default().Suite, gk, mk, msg)
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
		Reveal: func(sig groupsig.Signature) ([]byte, error) {
			s, err := asSignature(sig)
			if err != nil {
				return nil, err
			}
			return Reveal(s)
		},
	})
}
