package speccheck

import "encoding/hex"

// The 8-torsion subgroup E[8] of Curve25519 is cyclic; entry i below is the
// compressed encoding of [i]P for a generator P of E[8]. E[4] is the points
// at indices 0,2,4,6 and E[2] the points at indices 0,4. Index 0 is the
// neutral element.
var eightTorsion = [8][32]byte{
	mustEncoding("0100000000000000000000000000000000000000000000000000000000000000"), // (0,1), order 1
	mustEncoding("c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac037a"), // order 8
	mustEncoding("0000000000000000000000000000000000000000000000000000000000000080"), // order 4
	mustEncoding("26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc05"), // order 8
	mustEncoding("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"), // (0,-1), order 2
	mustEncoding("26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc85"), // order 8
	mustEncoding("0000000000000000000000000000000000000000000000000000000000000000"), // order 4
	mustEncoding("c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac03fa"), // order 8
}

// Non-canonical serializations of torsion points for which one exists:
// either the y coordinate is encoded as y+p, or the sign bit is set on a
// point with x = 0.
var torsionNonCanonical = [6][32]byte{
	mustEncoding("0100000000000000000000000000000000000000000000000000000000000080"), // (-0, 1), order 1
	mustEncoding("eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"), // (-0, 2^255-18), order 1
	mustEncoding("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"), // (-0, -1), order 2
	mustEncoding("eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"), // (0, 2^255-18), order 1
	mustEncoding("edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"), // (-sqrt(-1), 2^255-19), order 4
	mustEncoding("edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"), // (sqrt(-1), 2^255-19), order 4
}

func mustEncoding(s string) [32]byte {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		panic("speccheck: bad point encoding constant: " + s)
	}
	var out [32]byte
	copy(out[:], b)
	return out
}
