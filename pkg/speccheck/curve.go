package speccheck

import (
	"math/big"

	"filippo.io/edwards25519"
)

// Ed25519SubgroupOrder is L, the prime order of the main Ed25519 subgroup:
// 2^252 + 27742317777372353535851937790883648493.
var Ed25519SubgroupOrder, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// Ed25519FieldPrime is p = 2^255 - 19, the prime of the underlying field.
var Ed25519FieldPrime, _ = new(big.Int).SetString(
	"57896044618658097711785492504343953926634992332820282019728792003956564819949", 10)

// scalarEight is the scalar 8 mod L, used by the pre-reduced cofactored check.
var scalarEight = func() *edwards25519.Scalar {
	var b [32]byte
	b[0] = 8
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic("speccheck: scalar constant 8: " + err.Error())
	}
	return s
}()

func isIdentity(p *edwards25519.Point) bool {
	return p.Equal(edwards25519.NewIdentityPoint()) == 1
}

// littleEndianToBig interprets b as an unsigned little-endian integer.
func littleEndianToBig(b []byte) *big.Int {
	buf := make([]byte, len(b))
	for i := range b {
		buf[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(buf)
}

// bigToLittleEndian encodes n as a 32-byte little-endian value. n must be
// non-negative and fit in 256 bits.
func bigToLittleEndian(n *big.Int) ([32]byte, error) {
	var out [32]byte
	if n.Sign() < 0 || n.BitLen() > 256 {
		return out, encodingErrorf("integer does not fit in 32 bytes: %s", n.String())
	}
	be := n.Bytes()
	for i := range be {
		out[len(be)-1-i] = be[i]
	}
	return out, nil
}

// reduceToScalar reduces a 32-byte little-endian integer mod L and returns it
// as an edwards25519 scalar. This is the permissive decoding path: unlike a
// canonical-bytes decoder it never rejects, and unlike a top-bit-masking
// decoder it reduces the full 256-bit value.
func reduceToScalar(b []byte) (*edwards25519.Scalar, error) {
	if len(b) != 32 {
		return nil, encodingErrorf("scalar must be 32 bytes, got %d", len(b))
	}
	n := littleEndianToBig(b)
	n.Mod(n, Ed25519SubgroupOrder)
	enc, err := bigToLittleEndian(n)
	if err != nil {
		return nil, err
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(enc[:])
	if err != nil {
		return nil, encodingErrorf("reduced scalar rejected: %v", err)
	}
	return s, nil
}
