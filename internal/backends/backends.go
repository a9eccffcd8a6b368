// Package backends provides the VerifierAdapter implementations scored by
// the compliance harness: the reference verification equations under their
// policy variants, the strict CGN20 Algorithm 2 checker, and the Go standard
// library verifier.
//
// Backends are registered in an explicit collection; there is no runtime
// discovery. Adding a backend means adding a constructor here and listing it
// in All.
package backends

import (
	"crypto/ed25519"

	"github.com/mahdiidarabi/eddsa-speccheck/pkg/speccheck"
)

// verifyFunc adapts a plain verification function to the adapter interface.
type verifyFunc struct {
	name string
	fn   func(pub, msg, sig []byte) (bool, error)
}

func (v *verifyFunc) Name() string { return v.name }

func (v *verifyFunc) Verify(pub, msg, sig []byte) speccheck.Outcome {
	ok, err := v.fn(pub, msg, sig)
	if err != nil {
		return speccheck.OutcomeError
	}
	if ok {
		return speccheck.OutcomeAccept
	}
	return speccheck.OutcomeReject
}

// NewRefCofactored is the reference cofactored verifier; it re-serializes R
// and A before hashing.
func NewRefCofactored() speccheck.VerifierAdapter {
	return &verifyFunc{name: "ref-cofactored", fn: func(pub, msg, sig []byte) (bool, error) {
		ok, err := speccheck.VerifyCofactored(pub, msg, sig, false)
		if err != nil {
			// Refusing to decode is a policy outcome, not a backend fault.
			return false, nil
		}
		return ok, nil
	}}
}

// NewRefCofactorless is the reference cofactorless verifier with the
// re-serializing hash.
func NewRefCofactorless() speccheck.VerifierAdapter {
	return &verifyFunc{name: "ref-cofactorless", fn: func(pub, msg, sig []byte) (bool, error) {
		ok, err := speccheck.VerifyCofactorless(pub, msg, sig, false)
		if err != nil {
			return false, nil
		}
		return ok, nil
	}}
}

// NewRefCofactorlessRaw hashes the received encodings of R and A without
// re-serializing, the convention vectors 9 and 11 were ground for.
func NewRefCofactorlessRaw() speccheck.VerifierAdapter {
	return &verifyFunc{name: "ref-cofactorless-raw", fn: func(pub, msg, sig []byte) (bool, error) {
		ok, err := speccheck.VerifyCofactorless(pub, msg, sig, true)
		if err != nil {
			return false, nil
		}
		return ok, nil
	}}
}

// NewRefPreReduced applies the cofactor to each term with 8k and 8s reduced
// mod L first, the mistake vector 5 exposes.
func NewRefPreReduced() speccheck.VerifierAdapter {
	return &verifyFunc{name: "ref-cofactored-prereduced", fn: func(pub, msg, sig []byte) (bool, error) {
		ok, err := speccheck.VerifyPreReducedCofactored(pub, msg, sig)
		if err != nil {
			return false, nil
		}
		return ok, nil
	}}
}

// NewAlgorithm2 is the strict CGN20 Algorithm 2 verifier.
func NewAlgorithm2() speccheck.VerifierAdapter {
	return &verifyFunc{name: "algorithm2", fn: func(pub, msg, sig []byte) (bool, error) {
		return speccheck.VerifyStrict(pub, msg, sig)
	}}
}

// NewGoStdlib wraps crypto/ed25519.Verify: cofactorless, raw-bytes hash,
// S<L enforced, R compared by canonical byte equality.
func NewGoStdlib() speccheck.VerifierAdapter {
	return &verifyFunc{name: "go-stdlib", fn: func(pub, msg, sig []byte) (bool, error) {
		if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
			return false, nil
		}
		return ed25519.Verify(ed25519.PublicKey(pub), msg, sig), nil
	}}
}

// All returns the full registered backend set.
func All() []speccheck.VerifierAdapter {
	return []speccheck.VerifierAdapter{
		NewRefCofactored(),
		NewRefCofactorless(),
		NewRefCofactorlessRaw(),
		NewRefPreReduced(),
		NewAlgorithm2(),
		NewGoStdlib(),
	}
}

// Select filters the registry by name; an empty filter selects everything.
func Select(names []string) []speccheck.VerifierAdapter {
	all := All()
	if len(names) == 0 {
		return all
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []speccheck.VerifierAdapter
	for _, b := range all {
		if wanted[b.Name()] {
			out = append(out, b)
		}
	}
	return out
}
