// Package speccheck generates a fixed set of Ed25519 edge-case test vectors
// that probe ambiguities in the EdDSA verification equation (cofactored vs.
// cofactorless), and scores pluggable verifier backends against them.
//
// The vector set is exactly 12 entries, chosen to exercise known divergence
// points in EdDSA verification semantics: small-order and mixed-order points,
// scalars at or beyond the subgroup order L, and non-canonical point
// encodings. The constructions follow "Taming the many EdDSAs" (Chalkias,
// Garillot, Nikolaenko; ia.cr/2020/1244). Generation is fully deterministic:
// all scalars and messages are derived from fixed labels, so regenerating the
// set always yields byte-identical vectors.
//
// Basic usage:
//
//	vectors, err := speccheck.BuildVectors()
//	if err != nil {
//		// construction failure: the set is all-or-nothing
//	}
//	harness := speccheck.NewHarness().WithTimeout(2 * time.Second)
//	matrix, err := harness.RunAll(ctx, speccheck.Wires(vectors), backends)
//
// A backend is anything implementing VerifierAdapter; divergence between
// backends on the same vector is the measured signal, not an error.
package speccheck
