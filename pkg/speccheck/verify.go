package speccheck

import (
	"crypto/sha512"

	"filippo.io/edwards25519"
)

// computeChallenge derives k = SHA-512(R || A || M) reduced mod L. Callers
// choose which encodings of R and A to feed: the canonical re-serialized
// form or the raw wire bytes. The two differ exactly on non-canonical
// encodings, which is the divergence vectors 8-11 measure.
func computeChallenge(rBytes, aBytes, message []byte) *edwards25519.Scalar {
	h := sha512.New()
	h.Write(rBytes)
	h.Write(aBytes)
	h.Write(message)
	digest := h.Sum(nil)
	k, err := edwards25519.NewScalar().SetUniformBytes(digest)
	if err != nil {
		// SetUniformBytes only fails on a wrong input length.
		panic("speccheck: challenge reduction: " + err.Error())
	}
	return k
}

// decodePoint decodes a compressed point permissively: non-canonical field
// representatives are accepted and reduced, matching most deployed
// implementations rather than RFC 8032.
func decodePoint(b []byte) (*edwards25519.Point, error) {
	if len(b) != 32 {
		return nil, encodingErrorf("point must be 32 bytes, got %d", len(b))
	}
	return edwards25519.NewIdentityPoint().SetBytes(b)
}

// residual computes R + kA - sB, the quantity both verification equations
// test against the identity.
func residual(a, r *edwards25519.Point, s, k *edwards25519.Scalar) *edwards25519.Point {
	negA := edwards25519.NewIdentityPoint().Negate(a)
	// kA' + sB with A' = -A gives sB - kA; subtract from R afterwards.
	p := edwards25519.NewIdentityPoint().VarTimeDoubleScalarBaseMult(k, negA, s)
	return edwards25519.NewIdentityPoint().Subtract(r, p)
}

// cofactoredHolds checks [8](R + kA - sB) == identity.
func cofactoredHolds(a, r *edwards25519.Point, s, k *edwards25519.Scalar) bool {
	res := residual(a, r, s, k)
	return isIdentity(res.MultByCofactor(res))
}

// cofactorlessHolds checks R + kA - sB == identity.
func cofactorlessHolds(a, r *edwards25519.Point, s, k *edwards25519.Scalar) bool {
	return isIdentity(residual(a, r, s, k))
}

// preReducedCofactoredHolds checks [8]R == [8k mod L](-A) + [8s mod L]B,
// i.e. the cofactor applied to each term with the scalars reduced before the
// multiplication. On points with a torsion component this disagrees with
// cofactoredHolds whenever 8k does not reduce to a multiple of eight.
func preReducedCofactoredHolds(a, r *edwards25519.Point, s, k *edwards25519.Scalar) bool {
	eightK := edwards25519.NewScalar().Multiply(scalarEight, k)
	eightS := edwards25519.NewScalar().Multiply(scalarEight, s)
	negA := edwards25519.NewIdentityPoint().Negate(a)
	rhs := edwards25519.NewIdentityPoint().VarTimeDoubleScalarBaseMult(eightK, negA, eightS)
	lhs := edwards25519.NewIdentityPoint().MultByCofactor(r)
	return lhs.Equal(rhs) == 1
}

// splitSignature returns the R and S halves of a 64-byte signature.
func splitSignature(sig []byte) (rBytes, sBytes []byte, err error) {
	if len(sig) != 64 {
		return nil, nil, encodingErrorf("signature must be 64 bytes, got %d", len(sig))
	}
	return sig[:32], sig[32:], nil
}

// decodeForVerify performs the permissive wire decoding shared by the
// reference verifiers.
func decodeForVerify(pub, sig []byte) (a, r *edwards25519.Point, s *edwards25519.Scalar, rRaw []byte, err error) {
	rBytes, sBytes, err := splitSignature(sig)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	a, err = decodePoint(pub)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	r, err = decodePoint(rBytes)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	s, err = reduceToScalar(sBytes)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return a, r, s, rBytes, nil
}

// VerifyCofactored runs the cofactored verification equation over wire
// bytes. With rawHash the challenge is computed over the received encodings;
// otherwise R and A are re-serialized canonically first.
func VerifyCofactored(pub, message, sig []byte, rawHash bool) (bool, error) {
	a, r, s, rRaw, err := decodeForVerify(pub, sig)
	if err != nil {
		return false, err
	}
	k := challengeFor(a, r, pub, rRaw, message, rawHash)
	return cofactoredHolds(a, r, s, k), nil
}

// VerifyCofactorless runs the cofactorless verification equation over wire
// bytes.
func VerifyCofactorless(pub, message, sig []byte, rawHash bool) (bool, error) {
	a, r, s, rRaw, err := decodeForVerify(pub, sig)
	if err != nil {
		return false, err
	}
	k := challengeFor(a, r, pub, rRaw, message, rawHash)
	return cofactorlessHolds(a, r, s, k), nil
}

// VerifyPreReducedCofactored runs the cofactored equation with the scalars
// 8k and 8s reduced mod L before the point multiplications.
func VerifyPreReducedCofactored(pub, message, sig []byte) (bool, error) {
	a, r, s, _, err := decodeForVerify(pub, sig)
	if err != nil {
		return false, err
	}
	k := computeChallenge(r.Bytes(), a.Bytes(), message)
	return preReducedCofactoredHolds(a, r, s, k), nil
}

func challengeFor(a, r *edwards25519.Point, pubRaw, rRaw, message []byte, rawHash bool) *edwards25519.Scalar {
	if rawHash {
		return computeChallenge(rRaw, pubRaw, message)
	}
	return computeChallenge(r.Bytes(), a.Bytes(), message)
}
