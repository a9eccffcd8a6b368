package backends

import (
	"context"
	"testing"

	"github.com/mahdiidarabi/eddsa-speccheck/pkg/speccheck"
)

// The deployed-behavior matrix over the fixed vector set. One character per
// vector, V for accept and X for reject; rows are keyed by backend name.
var wantMatrix = map[string]string{
	"algorithm2":                "XXVVVVXXXXXX",
	"go-stdlib":                 "VVVVXXXXXXXV",
	"ref-cofactored":            "VVVVVVVVVXVV",
	"ref-cofactored-prereduced": "XXXXXXVVVXVX",
	"ref-cofactorless":          "VVVVXXVVVXVX",
	"ref-cofactorless-raw":      "VVVVXXVVXVXV",
}

func TestBackendMatrix(t *testing.T) {
	vectors, err := speccheck.BuildVectors()
	if err != nil {
		t.Fatalf("BuildVectors failed: %v", err)
	}

	harness := speccheck.NewHarness()
	matrix, err := harness.RunAll(context.Background(), speccheck.Wires(vectors), All())
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	if len(matrix.Backends()) != len(wantMatrix) {
		t.Fatalf("ran %d backends, want %d", len(matrix.Backends()), len(wantMatrix))
	}
	for _, name := range matrix.Backends() {
		want, ok := wantMatrix[name]
		if !ok {
			t.Errorf("unexpected backend %q", name)
			continue
		}
		for i := 0; i < matrix.VectorCount(); i++ {
			outcome, ok := matrix.Outcome(name, i)
			if !ok {
				t.Errorf("%s: missing cell %d", name, i)
				continue
			}
			if outcome.Symbol() != string(want[i]) {
				t.Errorf("%s, vector %d: got %s, want %c", name, i, outcome.Symbol(), want[i])
			}
		}
	}
}

// Every reference backend treats a refusal to decode as a rejection, never as
// a backend fault.
func TestReferenceBackendsRejectMalformed(t *testing.T) {
	shortSig := make([]byte, 63)
	pub := make([]byte, 32)
	pub[0] = 1

	refs := []speccheck.VerifierAdapter{
		NewRefCofactored(),
		NewRefCofactorless(),
		NewRefCofactorlessRaw(),
		NewRefPreReduced(),
		NewGoStdlib(),
	}
	for _, b := range refs {
		if got := b.Verify(pub, []byte("m"), shortSig); got != speccheck.OutcomeReject {
			t.Errorf("%s: short signature gave %s, want reject", b.Name(), got)
		}
	}
}

func TestSelect(t *testing.T) {
	if got := len(Select(nil)); got != len(All()) {
		t.Errorf("empty filter selected %d backends", got)
	}

	picked := Select([]string{"go-stdlib", "algorithm2"})
	if len(picked) != 2 {
		t.Fatalf("selected %d backends, want 2", len(picked))
	}
	for _, b := range picked {
		if b.Name() != "go-stdlib" && b.Name() != "algorithm2" {
			t.Errorf("unexpected backend %q", b.Name())
		}
	}

	if got := Select([]string{"no-such-backend"}); len(got) != 0 {
		t.Errorf("unknown name selected %d backends", len(got))
	}
}
