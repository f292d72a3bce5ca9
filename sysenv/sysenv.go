// Package sysenv holds the process-wide context every engine package draws
// on: the pairing suite and the randomness source, mirroring spec.md §5's
// "sysenv_init(seed)/sysenv_free" singleton. Grounded on the teacher's
// entropy package (entropy/entropy.go), whose EntropySource indirection
// this reuses verbatim rather than reimplementing.
package sysenv

import (
	"fmt"
	"sync"

	"github.com/groupsig-go/groupsig/entropy"
	"github.com/groupsig-go/groupsig/pairing"
)

// Env is the process-wide environment: the pairing suite shared by every
// scheme engine, and the entropy source random scalars are drawn from.
// spec.md §5: "a single process-wide pairing context is shared read-only
// across goroutines once initialized; initialization itself is not
// goroutine-safe and must complete before any concurrent use begins."
type Env struct {
	Suite  *pairing.Suite
	Source entropy.EntropySource
}

var (
	mu      sync.RWMutex
	current *Env
)

// Init installs the process-wide environment. source may be nil, in which
// case crypto/rand.Reader is used (entropy.GetRandom's own fallback).
// Calling Init again replaces the environment; spec.md §5 leaves re-init
// behavior to the caller; this implementation treats it as a plain
// reassignment rather than an error, since nothing in this core calls Init
// more than once outside tests.
func Init(source entropy.EntropySource) *Env {
	mu.Lock()
	defer mu.Unlock()
	current = &Env{
		Suite:  pairing.NewSuite(),
		Source: source,
	}
	return current
}

// Default lazily initializes the environment with crypto/rand on first use
// and returns it thereafter, so callers that never need a custom entropy
// source (the common case) don't have to call Init explicitly.
func Default() *Env {
	mu.RLock()
	env := current
	mu.RUnlock()
	if env != nil {
		return env
	}
	return Init(nil)
}

// Free tears down the process-wide environment, per spec.md §5's
// "sysenv_free" counterpart to Init. After Free, the next call to Default
// or to GetRandom lazily re-initializes with the default entropy source.
func Free() {
	mu.Lock()
	defer mu.Unlock()
	current = nil
}

// GetRandom draws n bytes of randomness from the environment's entropy
// source, falling back to crypto/rand.Reader on any failure, exactly as
// entropy.GetRandom documents.
func GetRandom(n uint32) ([]byte, error) {
	env := Default()
	b, err := entropy.GetRandom(env.Source, n)
	if err != nil {
		return nil, fmt.Errorf("sysenv: %w", err)
	}
	return b, nil
}
