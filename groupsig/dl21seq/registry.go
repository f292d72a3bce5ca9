package dl21seq

import (
	"fmt"

	"github.com/groupsig-go/groupsig"
	"github.com/groupsig-go/groupsig/dl21"
	"github.com/groupsig-go/groupsig/sysenv"
)

func asGroupKey(gk groupsig.GroupKey) (*dl21.GroupKey, error) {
	k, ok := gk.(*dl21.GroupKey)
	if !ok {
		return nil, fmt.Errorf("dl21seq: %w", groupsig.ErrSchemeMismatch)
	}
	return k, nil
}

func asSignature(sig groupsig.Signature) (*Signature, error) {
	s, ok := sig.(*Signature)
	if !ok {
		return nil, fmt.Errorf("dl21seq: %w", groupsig.ErrSchemeMismatch)
	}
	return s, nil
}

// Register installs DL21SEQ's vtable. Sign and Link are left unregistered
// for the same reason as dl21's: the generic dispatch signatures carry no
// scope/counter argument this scheme needs, so callers reach this
// package's Sign/SequentialLink directly.
//
//nolint:gochecknoinits // registration into the global scheme registry mirrors
// the teacher's SchemeFromName switch being populated by each constructor.
func init() {
	groupsig.Register(groupsig.DL21SEQ, &groupsig.Vtable{
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
	})
}
