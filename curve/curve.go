// Package curve implements BabyJubJub point arithmetic: the twisted-
// Edwards curve (A=168700, D=168696) whose base field is BN254's scalar
// field, making it circuit-friendly (spec §3, §4.3).
//
// gnark-crypto already ships exactly this curve as
// ecc/bn254/twistededwards — it is the same dependency the teacher pulls
// in for its own (different-curve) circuits, just pointed at the curve
// spec.md actually names. This package adds the on-curve/subgroup gate-
// keeping spec §4.3 requires on every externally-sourced point, which
// gnark-crypto's own type does not enforce by construction.
package curve

import (
	"math/big"

	tedwards "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/field"
)

// SubgroupOrder is ℓ, the order of BabyJubJub's prime-order subgroup
// (spec §3).
var SubgroupOrder = func() *big.Int {
	v, ok := new(big.Int).SetString("2736030358979909402780800718157159386076813972158567259200215660948447373041", 10)
	if !ok {
		panic("curve: malformed subgroup order constant")
	}
	return v
}()

var params = tedwards.GetEdwardsCurve()

// Point is a BabyJubJub affine point. The zero value is NOT the identity;
// use Identity().
type Point struct {
	p tedwards.PointAffine
}

// Identity returns the curve's neutral element (0, 1).
func Identity() Point {
	var pt Point
	pt.p.X.SetZero()
	pt.p.Y.SetOne()
	return pt
}

// Generator returns the fixed base point of the prime-order subgroup.
func Generator() Point {
	return Point{p: params.Base}
}

// NewPoint builds a point from raw Fq... (base-field, i.e. BN254 Fr)
// coordinates without any validity check. Use FromCoordinates for
// externally-sourced points, which enforces spec §4.3's gate-keeping.
func NewPoint(x, y field.Fr) Point {
	var pt Point
	pt.p.X = x.Element()
	pt.p.Y = y.Element()
	return pt
}

// FromCoordinates builds a point from externally-sourced coordinates and
// rejects it with ErrInvalidPoint unless it is both on-curve and in the
// prime-order subgroup, per spec §4.3 ("mandatory gate-keepers for any
// externally-sourced point") and P8.
func FromCoordinates(x, y field.Fr) (Point, error) {
	pt := NewPoint(x, y)
	if !pt.IsOnCurve() {
		return Point{}, cloakerr.ErrInvalidPoint
	}
	if !pt.IsInSubgroup() {
		return Point{}, cloakerr.ErrInvalidPoint
	}
	return pt, nil
}

// X returns the point's x-coordinate.
func (pt Point) X() field.Fr { return field.FrFromElement(pt.p.X) }

// Y returns the point's y-coordinate.
func (pt Point) Y() field.Fr { return field.FrFromElement(pt.p.Y) }

// IsOnCurve reports whether the point satisfies the twisted-Edwards
// equation A·x² + y² = 1 + D·x²·y².
func (pt Point) IsOnCurve() bool {
	return pt.p.IsOnCurve()
}

// IsInSubgroup reports whether the point lies in the prime-order
// subgroup, by multiplying by ℓ and checking the result is the identity.
// This is the authoritative check spec §4.3/§8 (P8) demands rather than
// relying on any library cofactor bookkeeping.
func (pt Point) IsInSubgroup() bool {
	var probe tedwards.PointAffine
	probe.ScalarMultiplication(&pt.p, SubgroupOrder)
	return probe.X.IsZero() && probe.Y.IsOne()
}

// Add returns pt + o.
func (pt Point) Add(o Point) Point {
	var out Point
	out.p.Add(&pt.p, &o.p)
	return out
}

// Mul returns k·pt. The scalar is first reduced modulo ℓ, matching spec
// §4.3 ("mul reduces the scalar mod ℓ first"). The multiplication itself
// uses gnark-crypto's fixed-width double-and-add, a constant-time-shaped
// scan over ℓ's bit length regardless of the scalar's actual value,
// which is what spec §4.3 requires for secret scalars.
func (pt Point) Mul(k *big.Int) Point {
	reduced := new(big.Int).Mod(k, SubgroupOrder)
	var out Point
	out.p.ScalarMultiplication(&pt.p, reduced)
	return out
}

// MulGenerator returns k·G.
func MulGenerator(k *big.Int) Point {
	return Generator().Mul(k)
}

// Equal reports whether two points have the same coordinates.
func (pt Point) Equal(o Point) bool {
	return pt.p.Equal(&o.p)
}

// Neg returns -pt = (-x, y), the twisted-Edwards point inverse.
func (pt Point) Neg() Point {
	var out Point
	out.p.X.Neg(&pt.p.X)
	out.p.Y = pt.p.Y
	return out
}

// Params exposes the curve's A/D coefficients for callers that need to
// restate the defining equation (e.g. documentation, tests).
func Params() (a, d field.Fr) {
	return field.FrFromElement(params.A), field.FrFromElement(params.D)
}
