package klap20

import (
	"fmt"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/sysenv"
)

func asGroupKey(gk groupsig.GroupKey) (*GroupKey, error) {
	k, ok := gk.(*GroupKey)
	if !ok {
		return nil, fmt.Errorf("klap20: %w", groupsig.ErrSchemeMismatch)
	}
	return k, nil
}

func asMemberKey(mk groupsig.MemberKey) (*MemberKey, error) {
	k, ok := mk.(*MemberKey)
	if !ok {
		return nil, fmt.Errorf("klap20: %w", groupsig.ErrSchemeMismatch)
	}
	return k, nil
}

func asSignature(sig groupsig.Signature) (*Signature, error) {
	s, ok := sig.(*Signature)
	if !ok {
		return nil, fmt.Errorf("klap20: %w", groupsig.ErrSchemeMismatch)
	}
	return s, nil
}

func asOpenerKey(ok groupsig.ManagerKey) (*OpenerKey, error) {
	k, ok2 := ok.(*OpenerKey)
	if !ok2 {
		return nil, fmt.Errorf("klap20: %w", groupsig.ErrSchemeMismatch)
	}
	return k, nil
}

// Register installs KLAP20's vtable. Open's ManagerKey argument is the
// scheme's OpenerKey, not its IssuerKey — opening is the opener's
// privilege here, matching spec.md §4.7.
//
//nolint:gochecknoinits // registration into the global scheme registry mirrors
// the teacher's SchemeFromName switch being populated by each constructor.
func init() {
	groupsig.Register(groupsig.KLAP20, &groupsig.Vtable{
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
		Open: func(sig groupsig.Signature, gkey groupsig.GroupKey, okey groupsig.ManagerKey, gml *groupsig.GML) (groupsig.Identity, groupsig.Proof, error) {
			s, err := asSignature(sig)
			if err != nil {
				return groupsig.Identity{}, nil, err
			}
			gk, err := asGroupKey(gkey)
			if err != nil {
				return groupsig.Identity{}, nil, err
			}
			ok, err := asOpenerKey(okey)
			if err != nil {
				return groupsig.Identity{}, nil, err
			}
			id, err := Open(sysenv.Default().Suite, gk, s, ok, gml)
			return id, nil, err
		},
	})
}
