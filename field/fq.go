package field

import (
	"math/big"

	bn254fp "github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// Fq is a base field element: only G1/G2 pairing-proof point coordinates
// live here (proof.Formatted's A/B/C). It MUST NOT be used for anything
// Fr is used for — see legacy.go for the bug this guards against.
type Fq struct {
	e bn254fp.Element
}

// QModulus returns q, the BN254 base field order.
func QModulus() *big.Int {
	return bn254fp.Modulus()
}

// FqFromBytes reduces a big-endian 32-byte value modulo q.
func FqFromBytes(b []byte) Fq {
	var f Fq
	f.e.SetBytes(b)
	return f
}

// FqFromBigInt reduces an arbitrary big.Int modulo q.
func FqFromBigInt(v *big.Int) Fq {
	var f Fq
	f.e.SetBigInt(v)
	return f
}

// Bytes serializes the element as 32 big-endian bytes.
func (f Fq) Bytes() [32]byte {
	return f.e.Bytes()
}

// BigInt returns the element as a big.Int in [0, q).
func (f Fq) BigInt() *big.Int {
	return f.e.BigInt(new(big.Int))
}

// Neg returns -f mod q, used by proof.Formatted to negate the A point.
func (f Fq) Neg() Fq {
	var out Fq
	out.e.Neg(&f.e)
	return out
}

// FqFromElement wraps an already-reduced gnark-crypto base-field element.
func FqFromElement(e bn254fp.Element) Fq { return Fq{e: e} }
