package speccheck

import "filippo.io/edwards25519"

// Byte-level canonicity checks from CGN20 Algorithm 2. A canonical encoding
// has its field element strictly below 2^255-19 and is not one of the two
// small-order forms that smuggle a set sign bit past the range check.

// IsCanonicalPointEncoding reports whether b is a canonical RFC 8032 point
// encoding.
func IsCanonicalPointEncoding(b []byte) bool {
	return len(b) == 32 && hasCanonicalY(b) && !isSignBitSpecialCase(b)
}

func hasCanonicalY(b []byte) bool {
	if b[0] < 237 {
		return true
	}
	for i := 1; i <= 30; i++ {
		if b[i] != 255 {
			return true
		}
	}
	return (b[31] | 128) != 255
}

// The two encodings with y < p but a sign bit on x = 0: (-0, 1) and
// (-0, -1), tables 1 and 2 in CGN20.
func isSignBitSpecialCase(b []byte) bool {
	return isNegativeZeroOne(b) || isNegativeZeroMinusOne(b)
}

func isNegativeZeroOne(b []byte) bool {
	if b[0] != 0x01 || b[31] != 0x80 {
		return false
	}
	for i := 1; i <= 30; i++ {
		if b[i] != 0x00 {
			return false
		}
	}
	return true
}

func isNegativeZeroMinusOne(b []byte) bool {
	if b[0] != 0xec {
		return false
	}
	for i := 1; i <= 31; i++ {
		if b[i] != 0xff {
			return false
		}
	}
	return true
}

// VerifyStrict implements CGN20 Algorithm 2: reject non-canonical encodings
// of A and R, reject S >= L, reject a small-order public key, then run the
// cofactored equation.
func VerifyStrict(pub, message, sig []byte) (bool, error) {
	rBytes, sBytes, err := splitSignature(sig)
	if err != nil {
		return false, err
	}
	if !IsCanonicalPointEncoding(pub) || !IsCanonicalPointEncoding(rBytes) {
		return false, nil
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(sBytes)
	if err != nil {
		// S >= L.
		return false, nil
	}
	a, err := decodePoint(pub)
	if err != nil {
		return false, nil
	}
	r, err := decodePoint(rBytes)
	if err != nil {
		return false, nil
	}
	if isIdentity(edwards25519.NewIdentityPoint().MultByCofactor(a)) {
		// Small-order public keys break non-repudiation.
		return false, nil
	}
	k := computeChallenge(r.Bytes(), a.Bytes(), message)
	return cofactoredHolds(a, r, s, k), nil
}
