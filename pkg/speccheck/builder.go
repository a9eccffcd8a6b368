package speccheck

import (
	"crypto/sha512"
	"strconv"

	"filippo.io/edwards25519"
)

// The builder assembles the fixed 12-vector set. Every scalar and message is
// derived from a fixed label, and the message grinds walk a deterministic
// counter sequence, so two runs always produce byte-identical vectors.
//
// Torsion variants: vectors 0-5 use the order-8 generator (table index 1),
// so their grind conditions come down to k = 1 mod 8; vectors 8-11 use the
// order-2 element (index 4), whose only non-canonical serialization is the
// sign-bit form EC FF..FF.
const (
	torsionOrder8 = 1
	torsionOrder2 = 4

	labelPrefix = "eddsa-speccheck"

	// Upper bound on grind iterations. The rarest condition holds with
	// probability 1/64 per candidate message, so hitting this bound means a
	// construction defect, not bad luck.
	maxGrind = 1 << 16
)

// BuildVectors generates the complete ordered vector set. The set is
// all-or-nothing: any construction or self-check failure aborts with
// ErrConstruction.
func BuildVectors() ([]TestVector, error) {
	var vectors []TestVector
	add := func(tvs []TestVector, err error) error {
		if err != nil {
			return err
		}
		for _, tv := range tvs {
			tv.Index = len(vectors)
			vectors = append(vectors, tv)
		}
		return nil
	}

	builders := []func() ([]TestVector, error){
		buildZeroSmallSmall,     // 0
		buildNonZeroSmallMixed,  // 1
		buildNonZeroMixedSmall,  // 2
		buildMixedMixedPair,     // 3, 4
		buildPreReduced,         // 5
		buildLargeS,             // 6
		buildReallyLargeS,       // 7
		buildNonCanonicalRPair,  // 8, 9
		buildNonCanonicalAPair,  // 10, 11
	}
	for _, build := range builders {
		if err := add(build()); err != nil {
			return nil, err
		}
	}
	if len(vectors) != VectorCount {
		return nil, constructionErrorf("built %d vectors, want %d", len(vectors), VectorCount)
	}
	for i := range vectors {
		if err := selfCheck(&vectors[i]); err != nil {
			return nil, err
		}
	}
	return vectors, nil
}

// Vector 0: S=0, small A, small R. A is a torsion point T, R = -T, so the
// residual is (k-1)T; grinding for k = 1 mod 8 makes both policies accept.
func buildZeroSmallSmall() ([]TestVector, error) {
	t, err := SmallOrderPoint(torsionOrder8)
	if err != nil {
		return nil, err
	}
	a := t
	r := negatedPoint(t, OrderSmall)
	s := ZeroScalar()

	msg, err := grindMessage("v0/msg", func(msg []byte) bool {
		k := computeChallenge(r.CanonicalBytes(), a.CanonicalBytes(), msg)
		return cofactorlessHolds(a.p, r.p, s.Reduced(), k)
	})
	if err != nil {
		return nil, err
	}
	return []TestVector{{
		Message: msg, PublicKey: a, R: r, S: s,
		ExpectedCofactored: true, ExpectedCofactorless: true,
		Comment: "small A and R",
	}}, nil
}

// Vector 1: 0<S<L, small A, mixed R. R = [S]B - T cancels the torsion of
// A = T whenever k = 1 mod 8.
func buildNonZeroSmallMixed() ([]TestVector, error) {
	s, err := ReducedScalar(labelPrefix + "/v1/s")
	if err != nil {
		return nil, err
	}
	t, err := SmallOrderPoint(torsionOrder8)
	if err != nil {
		return nil, err
	}
	a := t
	r := offsetBasePoint(s.Reduced(), t.p, true)

	msg, err := grindMessage("v1/msg", func(msg []byte) bool {
		k := computeChallenge(r.CanonicalBytes(), a.CanonicalBytes(), msg)
		return cofactorlessHolds(a.p, r.p, s.Reduced(), k)
	})
	if err != nil {
		return nil, err
	}
	return []TestVector{{
		Message: msg, PublicKey: a, R: r, S: s,
		ExpectedCofactored: true, ExpectedCofactorless: true,
		Comment: "small A only",
	}}, nil
}

// Vector 2: 0<S<L, mixed A, small R. The leaked-key construction: R is a
// torsion point, A = [a]B - T, and S is solved as k*a once the grind makes
// the torsion cancel.
func buildNonZeroMixedSmall() ([]TestVector, error) {
	priv, err := ReducedScalar(labelPrefix + "/v2/a")
	if err != nil {
		return nil, err
	}
	t, err := SmallOrderPoint(torsionOrder8)
	if err != nil {
		return nil, err
	}
	r := t
	a := offsetBasePoint(priv.Reduced(), t.p, true)

	var solved *edwards25519.Scalar
	msg, err := grindMessage("v2/msg", func(msg []byte) bool {
		k := computeChallenge(r.CanonicalBytes(), a.CanonicalBytes(), msg)
		s := edwards25519.NewScalar().Multiply(k, priv.Reduced())
		if cofactorlessHolds(a.p, r.p, s, k) {
			solved = s
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return []TestVector{{
		Message: msg, PublicKey: a, R: r, S: newScalar(solved, ScalarReduced),
		ExpectedCofactored: true, ExpectedCofactorless: true,
		Comment: "small R only",
	}}, nil
}

// Vectors 3 and 4: 0<S<L, mixed A, mixed R. Both are honest signatures for
// the full-order component; vector 3 is ground so the torsion cancels under
// cofactorless too, while vector 4 deliberately leaves the equality
// unenforced and diverges.
func buildMixedMixedPair() ([]TestVector, error) {
	priv, err := ReducedScalar(labelPrefix + "/v34/a")
	if err != nil {
		return nil, err
	}
	t, err := SmallOrderPoint(torsionOrder8)
	if err != nil {
		return nil, err
	}
	a, err := MixedOrderPoint(priv.Reduced(), torsionOrder8)
	if err != nil {
		return nil, err
	}
	nonce := deriveNonce(labelPrefix + "/v34/nonce")

	sign := func(msg []byte) (*Point, *Scalar, *edwards25519.Scalar) {
		rScalar := nonceScalar(nonce, msg)
		r := offsetBasePoint(rScalar, t.p, true)
		k := computeChallenge(r.CanonicalBytes(), a.CanonicalBytes(), msg)
		s := edwards25519.NewScalar().Multiply(k, priv.Reduced())
		s.Add(s, rScalar)
		return r, newScalar(s, ScalarReduced), k
	}

	var r3 *Point
	var s3 *Scalar
	msg3, err := grindMessage("v3/msg", func(msg []byte) bool {
		r, s, k := sign(msg)
		if cofactorlessHolds(a.p, r.p, s.Reduced(), k) {
			r3, s3 = r, s
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	var r4 *Point
	var s4 *Scalar
	msg4, err := grindMessage("v4/msg", func(msg []byte) bool {
		r, s, k := sign(msg)
		if !cofactorlessHolds(a.p, r.p, s.Reduced(), k) {
			r4, s4 = r, s
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	return []TestVector{
		{
			Message: msg3, PublicKey: a, R: r3, S: s3,
			ExpectedCofactored: true, ExpectedCofactorless: true,
			Comment: "succeeds unless full order is checked",
		},
		{
			Message: msg4, PublicKey: a, R: r4, S: s4,
			ExpectedCofactored: true, ExpectedCofactorless: false,
			Comment: "cofactored only",
		},
	}, nil
}

// Vector 5: 0<S<L, mixed A, full-order R. Ground so that 8k reduces to a
// value that is not a multiple of eight: verifiers that pre-reduce the
// cofactored scalars reject what plain cofactored verification accepts.
func buildPreReduced() ([]TestVector, error) {
	priv, err := ReducedScalar(labelPrefix + "/v5/a")
	if err != nil {
		return nil, err
	}
	a, err := MixedOrderPoint(priv.Reduced(), torsionOrder8)
	if err != nil {
		return nil, err
	}
	nonce := deriveNonce(labelPrefix + "/v5/nonce")

	var r *Point
	var s *Scalar
	msg, err := grindMessage("v5/msg", func(msg []byte) bool {
		rScalar := nonceScalar(nonce, msg)
		rPt, err := FullOrderPoint(rScalar)
		if err != nil {
			return false
		}
		k := computeChallenge(rPt.CanonicalBytes(), a.CanonicalBytes(), msg)
		if !SplitsOnCofactorReduction(k) {
			return false
		}
		sv := edwards25519.NewScalar().Multiply(k, priv.Reduced())
		sv.Add(sv, rScalar)
		r = rPt
		s = markPreReduced(newScalar(sv, ScalarReduced))
		return true
	})
	if err != nil {
		return nil, err
	}
	return []TestVector{{
		Message: msg, PublicKey: a, R: r, S: s,
		ExpectedCofactored: true, ExpectedCofactorless: false,
		Comment: "fails cofactored iff 8k is pre-reduced",
	}}, nil
}

// Vector 6: S>L. An honest full-order signature whose S is re-encoded as
// S+L, still with the top bit clear. Verifiers that bound-check S<L reject;
// reducing verifiers accept. Breaks strong unforgeability.
func buildLargeS() ([]TestVector, error) {
	return buildOversizedS("v6", ExceedsOrder, "S+L, top bit clear")
}

// Vector 7: S>>L. Same construction with S+m*L pushed past 2^255, so the
// encoding has its high bit set and defeats the common top-bit shortcut for
// the S<L check.
func buildReallyLargeS() ([]TestVector, error) {
	return buildOversizedS("v7", FarExceedsOrder, "S+mL, high bit set")
}

func buildOversizedS(label string, oversize func(*Scalar) (*Scalar, error), comment string) ([]TestVector, error) {
	priv, err := ReducedScalar(labelPrefix + "/" + label + "/a")
	if err != nil {
		return nil, err
	}
	a, err := FullOrderPoint(priv.Reduced())
	if err != nil {
		return nil, err
	}
	nonce := deriveNonce(labelPrefix + "/" + label + "/nonce")
	msg := messageAt(label+"/msg", 0)

	rScalar := nonceScalar(nonce, msg)
	r, err := FullOrderPoint(rScalar)
	if err != nil {
		return nil, err
	}
	k := computeChallenge(r.CanonicalBytes(), a.CanonicalBytes(), msg)
	sv := edwards25519.NewScalar().Multiply(k, priv.Reduced())
	sv.Add(sv, rScalar)

	s, err := oversize(newScalar(sv, ScalarReduced))
	if err != nil {
		return nil, err
	}
	return []TestVector{{
		Message: msg, PublicKey: a, R: r, S: s,
		ExpectedCofactored: true, ExpectedCofactorless: true,
		Comment: comment,
	}}, nil
}

// Vectors 8 and 9: non-canonical R. R is the order-2 point serialized as
// EC FF..FF, A = [a]B + T2. One message satisfies the cofactorless identity
// under both hash conventions; vector 8 solves S with the re-serialized
// encoding of R, vector 9 with the raw bytes.
func buildNonCanonicalRPair() ([]TestVector, error) {
	priv, err := ReducedScalar(labelPrefix + "/v89/a")
	if err != nil {
		return nil, err
	}
	t2, err := SmallOrderPoint(torsionOrder2)
	if err != nil {
		return nil, err
	}
	r, err := NonCanonicalEncoding(t2)
	if err != nil {
		return nil, err
	}
	// T2 is self-inverse, so [a]B + T2 == [a]B - T2.
	a, err := MixedOrderPoint(priv.Reduced(), torsionOrder2)
	if err != nil {
		return nil, err
	}

	// The residual is (1+k)T2: the torsion cancels iff k is odd. Both
	// conventions must land on odd challenges for the same message.
	var kCanon, kRaw *edwards25519.Scalar
	msg, err := grindMessage("v89/msg", func(msg []byte) bool {
		kCanon = computeChallenge(r.CanonicalBytes(), a.CanonicalBytes(), msg)
		kRaw = computeChallenge(r.Bytes(), a.CanonicalBytes(), msg)
		return kCanon.Bytes()[0]&1 == 1 && kRaw.Bytes()[0]&1 == 1
	})
	if err != nil {
		return nil, err
	}

	s8 := edwards25519.NewScalar().Multiply(kCanon, priv.Reduced())
	s9 := edwards25519.NewScalar().Multiply(kRaw, priv.Reduced())
	return []TestVector{
		{
			Message: msg, PublicKey: a, R: r, S: newScalar(s8, ScalarReduced),
			ExpectedCofactored: true, ExpectedCofactorless: true,
			Comment: "non-canonical R, reduced for hash",
		},
		{
			Message: msg, PublicKey: a, R: r, S: newScalar(s9, ScalarReduced),
			ExpectedCofactored: true, ExpectedCofactorless: true,
			Comment: "non-canonical R, not reduced for hash",
		},
	}, nil
}

// Vectors 10 and 11: non-canonical A. A is the order-2 point serialized as
// EC FF..FF, R = [S]B - T2 with a fixed S. Vector 10's message makes only
// the re-serializing hash cancel the torsion, vector 11's only the raw one;
// cofactored verification accepts both either way.
func buildNonCanonicalAPair() ([]TestVector, error) {
	s, err := ReducedScalar(labelPrefix + "/v1011/s")
	if err != nil {
		return nil, err
	}
	t2, err := SmallOrderPoint(torsionOrder2)
	if err != nil {
		return nil, err
	}
	a, err := NonCanonicalEncoding(t2)
	if err != nil {
		return nil, err
	}
	r := offsetBasePoint(s.Reduced(), t2.p, true)

	challenges := func(msg []byte) (kCanon, kRaw *edwards25519.Scalar) {
		kCanon = computeChallenge(r.CanonicalBytes(), a.CanonicalBytes(), msg)
		kRaw = computeChallenge(r.CanonicalBytes(), a.Bytes(), msg)
		return
	}

	msg10, err := grindMessage("v10/msg", func(msg []byte) bool {
		kCanon, kRaw := challenges(msg)
		return kCanon.Bytes()[0]&1 == 1 && kRaw.Bytes()[0]&1 == 0
	})
	if err != nil {
		return nil, err
	}
	msg11, err := grindMessage("v11/msg", func(msg []byte) bool {
		kCanon, kRaw := challenges(msg)
		return kRaw.Bytes()[0]&1 == 1 && kCanon.Bytes()[0]&1 == 0
	})
	if err != nil {
		return nil, err
	}

	return []TestVector{
		{
			Message: msg10, PublicKey: a, R: r, S: s,
			ExpectedCofactored: true, ExpectedCofactorless: true,
			Comment: "non-canonical A, reduced for hash",
		},
		{
			Message: msg11, PublicKey: a, R: r, S: s,
			ExpectedCofactored: true, ExpectedCofactorless: true,
			Comment: "non-canonical A, not reduced for hash",
		},
	}, nil
}

// selfCheck verifies a built vector against the reference implementations
// under the hash convention it was ground for. A mismatch means the
// construction is defective, so the whole run aborts.
func selfCheck(tv *TestVector) error {
	raw := rawHashVector(tv.Index)
	pub, msg, sig := tv.PublicKeyBytes(), tv.Message, tv.SignatureBytes()

	cofd, err := VerifyCofactored(pub, msg, sig, raw)
	if err != nil {
		return constructionErrorf("vector %d: cofactored self-check: %v", tv.Index, err)
	}
	cofl, err := VerifyCofactorless(pub, msg, sig, raw)
	if err != nil {
		return constructionErrorf("vector %d: cofactorless self-check: %v", tv.Index, err)
	}
	if cofd != tv.ExpectedCofactored || cofl != tv.ExpectedCofactorless {
		return constructionErrorf("vector %d: self-check got cofactored=%t cofactorless=%t, want %t/%t",
			tv.Index, cofd, cofl, tv.ExpectedCofactored, tv.ExpectedCofactorless)
	}
	if tv.S.Class == ScalarPreReduced {
		pre, err := VerifyPreReducedCofactored(pub, msg, sig)
		if err != nil {
			return constructionErrorf("vector %d: pre-reduced self-check: %v", tv.Index, err)
		}
		if pre {
			return constructionErrorf("vector %d: pre-reduced cofactored unexpectedly accepts", tv.Index)
		}
	}
	return nil
}

// rawHashVector reports whether the vector's expectation flags are stated
// under the raw-bytes hash convention.
func rawHashVector(index int) bool {
	return index == 9 || index == 11
}

// messageAt derives the deterministic candidate message for a grind label
// and counter.
func messageAt(label string, counter int) []byte {
	digest := sha512.Sum512([]byte(labelPrefix + "/" + label + "#" + strconv.Itoa(counter)))
	return digest[:32]
}

func grindMessage(label string, ok func(msg []byte) bool) ([]byte, error) {
	for counter := 0; counter < maxGrind; counter++ {
		msg := messageAt(label, counter)
		if ok(msg) {
			return msg, nil
		}
	}
	return nil, constructionErrorf("grind %q exhausted %d candidates", label, maxGrind)
}

// deriveNonce fixes the 32-byte signing nonce for a vector family.
func deriveNonce(label string) []byte {
	digest := sha512.Sum512([]byte(label))
	return digest[:32]
}

// nonceScalar is the standard EdDSA nonce derivation r = H(nonce || M)
// reduced mod L.
func nonceScalar(nonce, msg []byte) *edwards25519.Scalar {
	h := sha512.New()
	h.Write(nonce)
	h.Write(msg)
	r, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		panic("speccheck: nonce reduction: " + err.Error())
	}
	return r
}

// offsetBasePoint returns [base]B - T (or [base]B + T when subtract is
// false) wrapped as a mixed-order point.
func offsetBasePoint(base *edwards25519.Scalar, t *edwards25519.Point, subtract bool) *Point {
	e := edwards25519.NewIdentityPoint().ScalarBaseMult(base)
	if subtract {
		e.Subtract(e, t)
	} else {
		e.Add(e, t)
	}
	return newCanonicalPoint(e, OrderMixed)
}

func negatedPoint(p *Point, class OrderClass) *Point {
	return newCanonicalPoint(edwards25519.NewIdentityPoint().Negate(p.p), class)
}
