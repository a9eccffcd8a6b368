package speccheck

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestBuildVectorsCardinality(t *testing.T) {
	vectors, err := BuildVectors()
	if err != nil {
		t.Fatalf("BuildVectors failed: %v", err)
	}
	if len(vectors) != VectorCount {
		t.Fatalf("got %d vectors, want %d", len(vectors), VectorCount)
	}
	for i := range vectors {
		if vectors[i].Index != i {
			t.Errorf("vector %d carries index %d", i, vectors[i].Index)
		}
		if len(vectors[i].Message) != 32 {
			t.Errorf("vector %d: message is %d bytes", i, len(vectors[i].Message))
		}
	}
}

func TestBuildVectorsDeterministic(t *testing.T) {
	first, err := BuildVectors()
	if err != nil {
		t.Fatalf("BuildVectors failed: %v", err)
	}
	second, err := BuildVectors()
	if err != nil {
		t.Fatalf("BuildVectors failed: %v", err)
	}
	for i := range first {
		a, b := first[i].Wire(), second[i].Wire()
		if !bytes.Equal(a.Message, b.Message) ||
			!bytes.Equal(a.PublicKey, b.PublicKey) ||
			!bytes.Equal(a.Signature, b.Signature) {
			t.Errorf("vector %d differs between runs", i)
		}
	}
}

func TestBuildVectorsConditionTable(t *testing.T) {
	vectors, err := BuildVectors()
	if err != nil {
		t.Fatalf("BuildVectors failed: %v", err)
	}

	table := []struct {
		sClass       RangeClass
		aClass       OrderClass
		aCanonical   bool
		rClass       OrderClass
		rCanonical   bool
		cofactored   bool
		cofactorless bool
	}{
		{ScalarZero, OrderSmall, true, OrderSmall, true, true, true},
		{ScalarReduced, OrderSmall, true, OrderMixed, true, true, true},
		{ScalarReduced, OrderMixed, true, OrderSmall, true, true, true},
		{ScalarReduced, OrderMixed, true, OrderMixed, true, true, true},
		{ScalarReduced, OrderMixed, true, OrderMixed, true, true, false},
		{ScalarPreReduced, OrderMixed, true, OrderFull, true, true, false},
		{ScalarExceedsOrder, OrderFull, true, OrderFull, true, true, true},
		{ScalarFarExceedsOrder, OrderFull, true, OrderFull, true, true, true},
		{ScalarReduced, OrderMixed, true, OrderSmall, false, true, true},
		{ScalarReduced, OrderMixed, true, OrderSmall, false, true, true},
		{ScalarReduced, OrderSmall, false, OrderMixed, true, true, true},
		{ScalarReduced, OrderSmall, false, OrderMixed, true, true, true},
	}

	for i, want := range table {
		tv := &vectors[i]
		if tv.S.Class != want.sClass {
			t.Errorf("vector %d: S class %s, want %s", i, tv.S.Class, want.sClass)
		}
		if tv.PublicKey.Class != want.aClass || tv.PublicKey.Canonical != want.aCanonical {
			t.Errorf("vector %d: A %s/canonical=%t, want %s/%t",
				i, tv.PublicKey.Class, tv.PublicKey.Canonical, want.aClass, want.aCanonical)
		}
		if tv.R.Class != want.rClass || tv.R.Canonical != want.rCanonical {
			t.Errorf("vector %d: R %s/canonical=%t, want %s/%t",
				i, tv.R.Class, tv.R.Canonical, want.rClass, want.rCanonical)
		}
		if tv.ExpectedCofactored != want.cofactored || tv.ExpectedCofactorless != want.cofactorless {
			t.Errorf("vector %d: flags %t/%t, want %t/%t",
				i, tv.ExpectedCofactored, tv.ExpectedCofactorless, want.cofactored, want.cofactorless)
		}
	}
}

func TestBuildVectorsKnownEncodings(t *testing.T) {
	vectors, err := BuildVectors()
	if err != nil {
		t.Fatalf("BuildVectors failed: %v", err)
	}

	// Vector 0: A is the torsion generator, R its negation, S zero.
	if !bytes.Equal(vectors[0].PublicKeyBytes(), eightTorsion[1][:]) {
		t.Errorf("vector 0: public key %x", vectors[0].PublicKeyBytes())
	}
	if !bytes.Equal(vectors[0].SignatureBytes()[32:], make([]byte, 32)) {
		t.Error("vector 0: S is not zero")
	}
	wantMsg, _ := hex.DecodeString("56c7ce4e57a5fa77d75d1a75eb52bbed9f46c9e82f2eeb14e24b5194546eac86")
	if !bytes.Equal(vectors[0].Message, wantMsg) {
		t.Errorf("vector 0: message %x", vectors[0].Message)
	}

	// Vectors 8 and 9 share a message and wire R, the non-canonical order-2
	// form; only S differs.
	if !bytes.Equal(vectors[8].Message, vectors[9].Message) {
		t.Error("vectors 8 and 9 should share a message")
	}
	if !bytes.Equal(vectors[8].SignatureBytes()[:32], torsionNonCanonical[2][:]) {
		t.Errorf("vector 8: wire R %x", vectors[8].SignatureBytes()[:32])
	}
	if bytes.Equal(vectors[8].SignatureBytes(), vectors[9].SignatureBytes()) {
		t.Error("vectors 8 and 9 should differ in S")
	}

	// Vectors 10 and 11 share the public key and signature, only the message
	// moves the challenge parity.
	if !bytes.Equal(vectors[10].PublicKeyBytes(), torsionNonCanonical[2][:]) {
		t.Errorf("vector 10: public key %x", vectors[10].PublicKeyBytes())
	}
	if !bytes.Equal(vectors[10].SignatureBytes(), vectors[11].SignatureBytes()) {
		t.Error("vectors 10 and 11 should share a signature")
	}
	if bytes.Equal(vectors[10].Message, vectors[11].Message) {
		t.Error("vectors 10 and 11 should differ in message")
	}
}

// The S >= L encodings must still verify under a reducing verifier, which is
// exactly what makes them a strong-unforgeability break.
func TestOversizedVectorsReduceToHonest(t *testing.T) {
	vectors, err := BuildVectors()
	if err != nil {
		t.Fatalf("BuildVectors failed: %v", err)
	}
	for _, i := range []int{6, 7} {
		tv := &vectors[i]
		ok, err := VerifyCofactorless(tv.PublicKeyBytes(), tv.Message, tv.SignatureBytes(), false)
		if err != nil {
			t.Fatalf("vector %d: %v", i, err)
		}
		if !ok {
			t.Errorf("vector %d: reducing verifier rejected", i)
		}

		// Swapping in the reduced S gives the honest signature.
		honest := append(tv.R.Bytes(), tv.S.Reduced().Bytes()...)
		ok, err = VerifyStrict(tv.PublicKeyBytes(), tv.Message, honest)
		if err != nil {
			t.Fatalf("vector %d: %v", i, err)
		}
		if !ok {
			t.Errorf("vector %d: reduced form fails strict verification", i)
		}
	}
}
