package speccheck

import "testing"

func TestIsCanonicalPointEncoding(t *testing.T) {
	for i, enc := range eightTorsion {
		if !IsCanonicalPointEncoding(enc[:]) {
			t.Errorf("torsion table entry %d flagged non-canonical", i)
		}
	}
	for i, enc := range torsionNonCanonical {
		if IsCanonicalPointEncoding(enc[:]) {
			t.Errorf("non-canonical form %d flagged canonical", i)
		}
	}
	if IsCanonicalPointEncoding(make([]byte, 31)) {
		t.Error("31-byte input flagged canonical")
	}
}

func TestVerifyStrictRejectsSmallOrderKey(t *testing.T) {
	two, err := SmallOrderPoint(4)
	if err != nil {
		t.Fatal(err)
	}
	sig := make([]byte, 64)
	copy(sig, eightTorsion[0][:]) // R = identity, S = 0

	ok, err := VerifyStrict(two.Bytes(), []byte("msg"), sig)
	if err != nil {
		t.Fatalf("VerifyStrict errored: %v", err)
	}
	if ok {
		t.Error("small-order public key accepted")
	}
}

func TestVerifyStrictRejectsNonCanonicalR(t *testing.T) {
	base, err := ReducedScalar("test/strict-base")
	if err != nil {
		t.Fatal(err)
	}
	pub, err := FullOrderPoint(base.Reduced())
	if err != nil {
		t.Fatal(err)
	}
	sig := make([]byte, 64)
	copy(sig, torsionNonCanonical[2][:])

	ok, err := VerifyStrict(pub.Bytes(), []byte("msg"), sig)
	if err != nil {
		t.Fatalf("VerifyStrict errored: %v", err)
	}
	if ok {
		t.Error("non-canonical R accepted")
	}
}
