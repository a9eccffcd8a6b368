package speccheck

import (
	"math/big"

	"filippo.io/edwards25519"
)

// OrderClass classifies a curve point by the order of its components.
type OrderClass int

const (
	// OrderSmall points lie entirely in the order-8 torsion subgroup.
	OrderSmall OrderClass = iota
	// OrderMixed points have a non-zero full-order component plus a
	// non-zero torsion component.
	OrderMixed
	// OrderFull points lie entirely in the prime-order subgroup.
	OrderFull
)

func (c OrderClass) String() string {
	switch c {
	case OrderSmall:
		return "small"
	case OrderMixed:
		return "mixed"
	case OrderFull:
		return "full"
	default:
		return "unknown"
	}
}

// Point is a curve element together with its 32-byte wire encoding and
// order-class metadata. The encoding may be non-canonical, in which case
// Canonical is false and Bytes returns the out-of-range representative
// rather than the RFC 8032 form.
type Point struct {
	p         *edwards25519.Point
	encoding  [32]byte
	Class     OrderClass
	Canonical bool
}

// Bytes returns the wire encoding of the point, respecting its canonicity
// flag.
func (p *Point) Bytes() []byte {
	out := make([]byte, 32)
	copy(out, p.encoding[:])
	return out
}

// CanonicalBytes returns the canonical RFC 8032 encoding regardless of the
// wire form.
func (p *Point) CanonicalBytes() []byte {
	return p.p.Bytes()
}

// Element returns the underlying curve element.
func (p *Point) Element() *edwards25519.Point {
	return p.p
}

func newCanonicalPoint(e *edwards25519.Point, class OrderClass) *Point {
	p := &Point{p: e, Class: class, Canonical: true}
	copy(p.encoding[:], e.Bytes())
	return p
}

// SmallOrderPoint returns the torsion-subgroup element at the given table
// index (0-7). Index 0 is the neutral element; vectors only request it when
// a row explicitly calls for the identity.
func SmallOrderPoint(variant int) (*Point, error) {
	if variant < 0 || variant >= len(eightTorsion) {
		return nil, constructionErrorf("small-order variant %d out of range [0,%d]", variant, len(eightTorsion)-1)
	}
	e, err := edwards25519.NewIdentityPoint().SetBytes(eightTorsion[variant][:])
	if err != nil {
		return nil, constructionErrorf("torsion point %d rejected by decoder: %v", variant, err)
	}
	return newCanonicalPoint(e, OrderSmall), nil
}

// MixedOrderPoint returns [base]B + T where T is the non-zero torsion
// element at torsionVariant. The result has both a full-order and a torsion
// component, so its class is OrderMixed.
func MixedOrderPoint(base *edwards25519.Scalar, torsionVariant int) (*Point, error) {
	if torsionVariant == 0 {
		return nil, constructionErrorf("mixed-order point requires a non-zero torsion component")
	}
	t, err := SmallOrderPoint(torsionVariant)
	if err != nil {
		return nil, err
	}
	if isZeroScalar(base) {
		return nil, constructionErrorf("mixed-order point requires a non-zero base multiple")
	}
	e := edwards25519.NewIdentityPoint().ScalarBaseMult(base)
	e.Add(e, t.p)
	return newCanonicalPoint(e, OrderMixed), nil
}

// FullOrderPoint returns [base]B, a point of the prime-order subgroup.
func FullOrderPoint(base *edwards25519.Scalar) (*Point, error) {
	if isZeroScalar(base) {
		return nil, constructionErrorf("full-order point requires a non-zero base multiple")
	}
	e := edwards25519.NewIdentityPoint().ScalarBaseMult(base)
	return newCanonicalPoint(e, OrderFull), nil
}

// NonCanonicalEncoding re-encodes pt using a representative a spec-conformant
// decoder must reject: the field coordinate plus the modulus when that still
// fits in 255 bits, otherwise the sign bit set on a point whose x coordinate
// is zero. A decoder that silently reduces recovers an equivalent point.
func NonCanonicalEncoding(pt *Point) (*Point, error) {
	if !pt.Canonical {
		return nil, constructionErrorf("point is already non-canonical")
	}
	enc := pt.encoding
	sign := enc[31] & 0x80
	enc[31] &= 0x7f
	y := littleEndianToBig(enc[:])

	shifted := new(big.Int).Add(y, Ed25519FieldPrime)
	if shifted.BitLen() <= 255 {
		raw, err := bigToLittleEndian(shifted)
		if err != nil {
			return nil, err
		}
		raw[31] |= sign
		return nonCanonicalFrom(pt, raw)
	}

	// y+p does not fit; the only remaining non-canonical form is the sign
	// bit on a zero x coordinate.
	if sign != 0 {
		return nil, constructionErrorf("no non-canonical encoding exists for this point")
	}
	raw := pt.encoding
	raw[31] |= 0x80
	flipped, err := edwards25519.NewIdentityPoint().SetBytes(raw[:])
	if err != nil || flipped.Equal(pt.p) != 1 {
		return nil, constructionErrorf("no non-canonical encoding exists for this point")
	}
	return nonCanonicalFrom(pt, raw)
}

func nonCanonicalFrom(pt *Point, raw [32]byte) (*Point, error) {
	decoded, err := edwards25519.NewIdentityPoint().SetBytes(raw[:])
	if err != nil {
		return nil, constructionErrorf("non-canonical form rejected by reducing decoder: %v", err)
	}
	if decoded.Equal(pt.p) != 1 {
		return nil, constructionErrorf("non-canonical form decodes to a different point")
	}
	return &Point{p: pt.p, encoding: raw, Class: pt.Class, Canonical: false}, nil
}

func isZeroScalar(s *edwards25519.Scalar) bool {
	for _, b := range s.Bytes() {
		if b != 0 {
			return false
		}
	}
	return true
}
