package groupsig

import (
	"sync"

	"github.com/groupsig-go/groupsig/internal/log"
)

// dispatchLogger is the registry's own named logger. Every dispatch
// wrapper below calls it at DEBUG on a FAIL outcome and at ERROR when the
// lookup/scheme-matching machinery itself errors, so a deployment that
// raises GROUPSIG_TEST_LOGS=DEBUG gets a line per rejected verification
// instead of silence.
var dispatchLogger = log.DefaultLogger().Named("groupsig.registry")

// GroupKey, ManagerKey, MemberKey, Signature and Proof are the marker
// interfaces every concrete scheme's types satisfy so the registry below
// can dispatch on the scheme code carried by the object itself, per
// spec.md §4.1: "Dispatch always begins by matching this code."
type GroupKey interface {
	SchemeCode() Code
	Export() []byte
}

type ManagerKey interface {
	SchemeCode() Code
	Export() []byte
}

type MemberKey interface {
	SchemeCode() Code
	Export() []byte
}

type Signature interface {
	SchemeCode() Code
	Export() []byte
}

type Proof interface {
	SchemeCode() Code
	Export() []byte
}

// Vtable is the per-scheme function table of spec.md §4.1: "a closed set of
// per-type function tables, one per (object-kind × scheme) pair." A
// concrete engine package (bbs04, ps16, klap20, gl19, dl21) populates only
// the fields it supports and leaves the rest nil; the dispatch wrappers
// below turn a nil entry into ErrUnsupported rather than a crash, matching
// "Operations not supported by a scheme must be a recognizable unsupported
// outcome." This generalizes the teacher's crypto/schemes.go, which keys a
// table of *Scheme constructors by name; here the table holds operation
// closures keyed by Code instead, because this registry dispatches on
// already-built objects rather than constructing a new Scheme up front.
type Vtable struct {
	Sign          func(msg Message, mk MemberKey, gk GroupKey) (Signature, error)
	Verify        func(sig Signature, msg Message, gk GroupKey) (Outcome, error)
	Open          func(sig Signature, gk GroupKey, ok ManagerKey, gml *GML) (Identity, Proof, error)
	OpenVerify    func(proof Proof, sig Signature, gk GroupKey) (Outcome, error)
	Reveal        func(sig Signature) ([]byte, error)
	Trace         func(sig Signature, gk GroupKey, crl *CRL) (Outcome, error)
	Identify      func(sig Signature, mk MemberKey, gk GroupKey) (Outcome, error)
	Link          func(sigs []Signature, msgs []Message, mk MemberKey, scope []byte) (Proof, error)
	VerifyLink    func(proof Proof, sigs []Signature, msgs []Message, gk GroupKey, scope []byte) (Outcome, error)
	Blind         func(sig Signature, bk interface{}) (interface{}, error)
	Convert       func(blindSig interface{}, converterKey interface{}) (interface{}, error)
	Unblind       func(converted interface{}, bk interface{}) (Identity, Signature, error)
	Claim         func(mk MemberKey, sig Signature) (Proof, error)
	ProveEquality func(sigs []Signature, mk MemberKey) (Proof, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[Code]*Vtable{}
)

// Register installs the vtable for a scheme. Engine packages call this
// from an init() function, the same way the teacher's schemeIDs slice is
// populated by each NewPedersenBLS* constructor being wired into
// SchemeFromName's switch.
func Register(code Code, vt *Vtable) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[code] = vt
}

func lookup(code Code) (*Vtable, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	vt, ok := registry[code]
	if !ok {
		return nil, ErrSchemeMismatch
	}
	return vt, nil
}

func sameScheme(codes ...Code) error {
	for i := 1; i < len(codes); i++ {
		if codes[i] != codes[0] {
			return ErrSchemeMismatch
		}
	}
	return nil
}

// logDispatchErr logs err at ERROR (it always aborts the call before the
// underlying engine even runs) and passes it through unchanged, so call
// sites can wrap a return statement without an extra branch.
func logDispatchErr(op string, code Code, err error) error {
	if err != nil {
		dispatchLogger.Errorw("dispatch failed", "op", op, "scheme", code.String(), "error", err)
	}
	return err
}

// logOutcome logs a FAIL outcome at DEBUG and passes outcome through
// unchanged, matching DESIGN.md's promise that a rejected verification
// leaves a diagnostic trail instead of silence.
func logOutcome(op string, code Code, outcome Outcome) Outcome {
	if outcome == Reject {
		dispatchLogger.Debugw("dispatch outcome FAIL", "op", op, "scheme", code.String())
	}
	return outcome
}

// Sign produces a signature of msg under mk, dispatching on mk's scheme.
func Sign(msg Message, mk MemberKey, gk GroupKey) (Signature, error) {
	if err := sameScheme(mk.SchemeCode(), gk.SchemeCode()); err != nil {
		return nil, logDispatchErr("Sign", mk.SchemeCode(), err)
	}
	vt, err := lookup(mk.SchemeCode())
	if err != nil {
		return nil, logDispatchErr("Sign", mk.SchemeCode(), err)
	}
	if vt.Sign == nil {
		return nil, logDispatchErr("Sign", mk.SchemeCode(), ErrUnsupported)
	}
	sig, err := vt.Sign(msg, mk, gk)
	if err != nil {
		return nil, logDispatchErr("Sign", mk.SchemeCode(), err)
	}
	return sig, nil
}

// Verify checks sig against msg under gk.
func Verify(sig Signature, msg Message, gk GroupKey) (Outcome, error) {
	if err := sameScheme(sig.SchemeCode(), gk.SchemeCode()); err != nil {
		return Reject, logDispatchErr("Verify", sig.SchemeCode(), err)
	}
	vt, err := lookup(sig.SchemeCode())
	if err != nil {
		return Reject, logDispatchErr("Verify", sig.SchemeCode(), err)
	}
	if vt.Verify == nil {
		return Reject, logDispatchErr("Verify", sig.SchemeCode(), ErrUnsupported)
	}
	outcome, err := vt.Verify(sig, msg, gk)
	if err != nil {
		return Reject, logDispatchErr("Verify", sig.SchemeCode(), err)
	}
	return logOutcome("Verify", sig.SchemeCode(), outcome), nil
}

// Open identifies the issuer of sig, consulting gml with the opener key ok.
func Open(sig Signature, gk GroupKey, ok ManagerKey, gml *GML) (Identity, Proof, error) {
	if err := sameScheme(sig.SchemeCode(), gk.SchemeCode(), ok.SchemeCode(), gml.Scheme); err != nil {
		return Identity{}, nil, logDispatchErr("Open", sig.SchemeCode(), err)
	}
	vt, err := lookup(sig.SchemeCode())
	if err != nil {
		return Identity{}, nil, logDispatchErr("Open", sig.SchemeCode(), err)
	}
	if vt.Open == nil {
		return Identity{}, nil, logDispatchErr("Open", sig.SchemeCode(), ErrUnsupported)
	}
	id, proof, err := vt.Open(sig, gk, ok, gml)
	if err != nil {
		return Identity{}, nil, logDispatchErr("Open", sig.SchemeCode(), err)
	}
	return id, proof, nil
}

// OpenVerify checks a proof produced by Open, without needing the opener
// key or the GML (spec.md §4.6: "verifiable opening").
func OpenVerify(proof Proof, sig Signature, gk GroupKey) (Outcome, error) {
	if err := sameScheme(proof.SchemeCode(), sig.SchemeCode(), gk.SchemeCode()); err != nil {
		return Reject, logDispatchErr("OpenVerify", proof.SchemeCode(), err)
	}
	vt, err := lookup(proof.SchemeCode())
	if err != nil {
		return Reject, logDispatchErr("OpenVerify", proof.SchemeCode(), err)
	}
	if vt.OpenVerify == nil {
		return Reject, logDispatchErr("OpenVerify", proof.SchemeCode(), ErrUnsupported)
	}
	outcome, err := vt.OpenVerify(proof, sig, gk)
	if err != nil {
		return Reject, logDispatchErr("OpenVerify", proof.SchemeCode(), err)
	}
	return logOutcome("OpenVerify", proof.SchemeCode(), outcome), nil
}

// Reveal extracts a publicly revealed field from sig (e.g. GL19's
// credential expiration), if the scheme has one.
func Reveal(sig Signature) ([]byte, error) {
	vt, err := lookup(sig.SchemeCode())
	if err != nil {
		return nil, logDispatchErr("Reveal", sig.SchemeCode(), err)
	}
	if vt.Reveal == nil {
		return nil, logDispatchErr("Reveal", sig.SchemeCode(), ErrUnsupported)
	}
	b, err := vt.Reveal(sig)
	if err != nil {
		return nil, logDispatchErr("Reveal", sig.SchemeCode(), err)
	}
	return b, nil
}

// Trace checks sig's signer against a revocation list, for schemes that
// support revocation-by-trapdoor.
func Trace(sig Signature, gk GroupKey, crl *CRL) (Outcome, error) {
	if err := sameScheme(sig.SchemeCode(), gk.SchemeCode(), crl.Scheme); err != nil {
		return Reject, logDispatchErr("Trace", sig.SchemeCode(), err)
	}
	vt, err := lookup(sig.SchemeCode())
	if err != nil {
		return Reject, logDispatchErr("Trace", sig.SchemeCode(), err)
	}
	if vt.Trace == nil {
		return Reject, logDispatchErr("Trace", sig.SchemeCode(), ErrUnsupported)
	}
	outcome, err := vt.Trace(sig, gk, crl)
	if err != nil {
		return Reject, logDispatchErr("Trace", sig.SchemeCode(), err)
	}
	return logOutcome("Trace", sig.SchemeCode(), outcome), nil
}

// Identify lets a member test locally whether it issued sig (spec.md
// §4.8, DL21/GL19 "Identify"). Of the engines in this core only DL21
// registers it; GL19 yields ErrUnsupported.
func Identify(sig Signature, mk MemberKey, gk GroupKey) (Outcome, error) {
	if err := sameScheme(sig.SchemeCode(), mk.SchemeCode(), gk.SchemeCode()); err != nil {
		return Reject, logDispatchErr("Identify", sig.SchemeCode(), err)
	}
	vt, err := lookup(sig.SchemeCode())
	if err != nil {
		return Reject, logDispatchErr("Identify", sig.SchemeCode(), err)
	}
	if vt.Identify == nil {
		return Reject, logDispatchErr("Identify", sig.SchemeCode(), ErrUnsupported)
	}
	outcome, err := vt.Identify(sig, mk, gk)
	if err != nil {
		return Reject, logDispatchErr("Identify", sig.SchemeCode(), err)
	}
	return logOutcome("Identify", sig.SchemeCode(), outcome), nil
}

// Link produces a proof that every signature in sigs was issued by the
// same member (spec.md §4.8, DL21 "Link"). The DL21 engine does not check
// that the signatures share a scope: each signature carries its own scope,
// signatures under different scopes are linked alike, and the scope
// argument is not used.
func Link(sigs []Signature, msgs []Message, mk MemberKey, scope []byte) (Proof, error) {
	if len(sigs) == 0 {
		return nil, logDispatchErr("Link", mk.SchemeCode(), ErrMissingField)
	}
	codes := make([]Code, 0, len(sigs)+1)
	codes = append(codes, mk.SchemeCode())
	for _, s := range sigs {
		codes = append(codes, s.SchemeCode())
	}
	if err := sameScheme(codes...); err != nil {
		return nil, logDispatchErr("Link", mk.SchemeCode(), err)
	}
	vt, err := lookup(mk.SchemeCode())
	if err != nil {
		return nil, logDispatchErr("Link", mk.SchemeCode(), err)
	}
	if vt.Link == nil {
		return nil, logDispatchErr("Link", mk.SchemeCode(), ErrUnsupported)
	}
	proof, err := vt.Link(sigs, msgs, mk, scope)
	if err != nil {
		return nil, logDispatchErr("Link", mk.SchemeCode(), err)
	}
	return proof, nil
}

// VerifyLink checks a proof produced by Link.
func VerifyLink(proof Proof, sigs []Signature, msgs []Message, gk GroupKey, scope []byte) (Outcome, error) {
	codes := []Code{proof.SchemeCode(), gk.SchemeCode()}
	for _, s := range sigs {
		codes = append(codes, s.SchemeCode())
	}
	if err := sameScheme(codes...); err != nil {
		return Reject, logDispatchErr("VerifyLink", proof.SchemeCode(), err)
	}
	vt, err := lookup(proof.SchemeCode())
	if err != nil {
		return Reject, logDispatchErr("VerifyLink", proof.SchemeCode(), err)
	}
	if vt.VerifyLink == nil {
		return Reject, logDispatchErr("VerifyLink", proof.SchemeCode(), ErrUnsupported)
	}
	outcome, err := vt.VerifyLink(proof, sigs, msgs, gk, scope)
	if err != nil {
		return Reject, logDispatchErr("VerifyLink", proof.SchemeCode(), err)
	}
	return logOutcome("VerifyLink", proof.SchemeCode(), outcome), nil
}

// Claim and ProveEquality are named by spec.md §1 as part of the stable
// operation set but are explicitly noted in spec.md §9 as stubbed or
// incomplete in the original source ("do not implement speculatively").
// They are wired into the registry so the dispatch surface is complete,
// but no engine in this core registers an implementation; calling them
// always yields ErrUnsupported.
func Claim(mk MemberKey, sig Signature) (Proof, error) {
	if err := sameScheme(mk.SchemeCode(), sig.SchemeCode()); err != nil {
		return nil, logDispatchErr("Claim", mk.SchemeCode(), err)
	}
	vt, err := lookup(mk.SchemeCode())
	if err != nil {
		return nil, logDispatchErr("Claim", mk.SchemeCode(), err)
	}
	if vt.Claim == nil {
		return nil, logDispatchErr("Claim", mk.SchemeCode(), ErrUnsupported)
	}
	proof, err := vt.Claim(mk, sig)
	if err != nil {
		return nil, logDispatchErr("Claim", mk.SchemeCode(), err)
	}
	return proof, nil
}

func ProveEquality(sigs []Signature, mk MemberKey) (Proof, error) {
	codes := []Code{mk.SchemeCode()}
	for _, s := range sigs {
		codes = append(codes, s.SchemeCode())
	}
	if err := sameScheme(codes...); err != nil {
		return nil, logDispatchErr("ProveEquality", mk.SchemeCode(), err)
	}
	vt, err := lookup(mk.SchemeCode())
	if err != nil {
		return nil, logDispatchErr("ProveEquality", mk.SchemeCode(), err)
	}
	if vt.ProveEquality == nil {
		return nil, logDispatchErr("ProveEquality", mk.SchemeCode(), ErrUnsupported)
	}
	proof, err := vt.ProveEquality(sigs, mk)
	if err != nil {
		return nil, logDispatchErr("ProveEquality", mk.SchemeCode(), err)
	}
	return proof, nil
}
