package speccheck

import (
	"bytes"
	"encoding/hex"
	"testing"

	"filippo.io/edwards25519"
)

func TestReducedScalarDeterministic(t *testing.T) {
	a, err := ReducedScalar("test/label")
	if err != nil {
		t.Fatalf("ReducedScalar failed: %v", err)
	}
	b, err := ReducedScalar("test/label")
	if err != nil {
		t.Fatalf("ReducedScalar failed: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("same label produced different scalars")
	}
	c, err := ReducedScalar("test/other-label")
	if err != nil {
		t.Fatalf("ReducedScalar failed: %v", err)
	}
	if bytes.Equal(a.Bytes(), c.Bytes()) {
		t.Error("different labels produced the same scalar")
	}
	if a.Class != ScalarReduced {
		t.Errorf("expected class reduced, got %s", a.Class)
	}
}

func TestExceedsOrderEncoding(t *testing.T) {
	s, err := ReducedScalar("test/exceeds")
	if err != nil {
		t.Fatalf("ReducedScalar failed: %v", err)
	}
	big, err := ExceedsOrder(s)
	if err != nil {
		t.Fatalf("ExceedsOrder failed: %v", err)
	}

	if big.Class != ScalarExceedsOrder {
		t.Errorf("expected class exceeds-order, got %s", big.Class)
	}
	if big.Bytes()[31]&0x80 != 0 {
		t.Error("S+L should keep the top bit clear")
	}

	want := littleEndianToBig(s.Bytes())
	want.Add(want, Ed25519SubgroupOrder)
	if littleEndianToBig(big.Bytes()).Cmp(want) != 0 {
		t.Error("encoding is not S+L")
	}
	if !bytes.Equal(big.Reduced().Bytes(), s.Reduced().Bytes()) {
		t.Error("reduced value changed")
	}
}

func TestFarExceedsOrderEncoding(t *testing.T) {
	s, err := ReducedScalar("test/far-exceeds")
	if err != nil {
		t.Fatalf("ReducedScalar failed: %v", err)
	}
	big, err := FarExceedsOrder(s)
	if err != nil {
		t.Fatalf("FarExceedsOrder failed: %v", err)
	}

	if big.Class != ScalarFarExceedsOrder {
		t.Errorf("expected class far-exceeds-order, got %s", big.Class)
	}
	if big.Bytes()[31]&0x80 == 0 {
		t.Error("S+mL should set the high bit")
	}
	if !bytes.Equal(big.Reduced().Bytes(), s.Reduced().Bytes()) {
		t.Error("reduced value changed")
	}
}

func TestReduceToScalarAtOrder(t *testing.T) {
	enc, err := bigToLittleEndian(Ed25519SubgroupOrder)
	if err != nil {
		t.Fatalf("encoding L failed: %v", err)
	}

	// The canonical decoder must refuse the encoding of L itself.
	if _, err := edwards25519.NewScalar().SetCanonicalBytes(enc[:]); err == nil {
		t.Error("SetCanonicalBytes accepted L")
	}

	// The permissive decoder reduces it to zero.
	s, err := reduceToScalar(enc[:])
	if err != nil {
		t.Fatalf("reduceToScalar failed: %v", err)
	}
	if !isZeroScalar(s) {
		t.Error("L should reduce to the zero scalar")
	}
}

func TestSplitsOnCofactorReduction(t *testing.T) {
	one := edwards25519.NewScalar()
	oneBytes := make([]byte, 32)
	oneBytes[0] = 1
	if _, err := one.SetCanonicalBytes(oneBytes); err != nil {
		t.Fatal(err)
	}
	// 8*1 = 8 is a multiple of eight, so reduction order cannot matter.
	if SplitsOnCofactorReduction(one) {
		t.Error("k=1 should not split")
	}

	// k = 8^-1 mod L: k = 1 mod 8 and 8k reduces to 1, which is not a
	// multiple of eight.
	invEightBytes, err := hex.DecodeString("792fdce229e50661d0da1c7db39dd30700000000000000000000000000000006")
	if err != nil {
		t.Fatal(err)
	}
	invEight, err := edwards25519.NewScalar().SetCanonicalBytes(invEightBytes)
	if err != nil {
		t.Fatalf("decoding 8^-1: %v", err)
	}
	if !SplitsOnCofactorReduction(invEight) {
		t.Error("k=8^-1 should split")
	}
}

func TestZeroScalar(t *testing.T) {
	z := ZeroScalar()
	if z.Class != ScalarZero {
		t.Errorf("expected class zero, got %s", z.Class)
	}
	if !isZeroScalar(z.Reduced()) {
		t.Error("zero scalar is not zero")
	}
}
