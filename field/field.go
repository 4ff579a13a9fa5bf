// Package field implements the two BN254 field moduli the rest of the
// engine builds on: Fr (the scalar field, order r) and Fq (the base
// field, order q), plus the token-mint reduction routine shared with the
// on-chain program.
//
// spec.md §9 documents a latent bug in the original TypeScript codebase:
// two copies of field.ts exist, one reducing by Fr and one by Fq, and the
// wrong one was wired into token-mint handling. legacy.go keeps that
// vestigial Fq-reducing path, unexported and unused by anything real, so
// the distinction stays visible instead of disappearing in translation.
package field

import (
	"math/big"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Fr is a scalar field element: all hash outputs, commitments, nullifiers
// and BabyJubJub point coordinates live here. It is the field Poseidon
// and the arithmetic circuits operate over.
type Fr struct {
	e bn254fr.Element
}

// Modulus returns p, the BN254 scalar field order.
func Modulus() *big.Int {
	return bn254fr.Modulus()
}

// FrFromBytes reduces a big-endian 32-byte value modulo p, matching the
// on-chain program's reducing conversion.
func FrFromBytes(b []byte) Fr {
	var f Fr
	f.e.SetBytes(b)
	return f
}

// FrFromBytesStrict requires b already represent a canonical element of
// [0, p); it fails with ErrNotCanonical otherwise.
func FrFromBytesStrict(b []byte) (Fr, error) {
	bi := new(big.Int).SetBytes(b)
	if bi.Cmp(Modulus()) >= 0 {
		return Fr{}, cloakerr.ErrNotCanonical
	}
	var f Fr
	f.e.SetBigInt(bi)
	return f, nil
}

// FrFromBigInt reduces an arbitrary big.Int modulo p.
func FrFromBigInt(v *big.Int) Fr {
	var f Fr
	f.e.SetBigInt(v)
	return f
}

// FrFromUint64 embeds a u64 (e.g. a leaf_index) as an Fr element.
func FrFromUint64(v uint64) Fr {
	var f Fr
	f.e.SetUint64(v)
	return f
}

// Bytes serializes the element as 32 big-endian bytes, no leading sign.
func (f Fr) Bytes() [32]byte {
	return f.e.Bytes()
}

// BigInt returns the element as a big.Int in [0, p).
func (f Fr) BigInt() *big.Int {
	return f.e.BigInt(new(big.Int))
}

// Element exposes the underlying gnark-crypto element for packages (curve,
// poseidon) that need to do field arithmetic directly.
func (f Fr) Element() bn254fr.Element { return f.e }

// FrFromElement wraps an already-reduced gnark-crypto element.
func FrFromElement(e bn254fr.Element) Fr { return Fr{e: e} }

// Equal reports whether two elements are the same residue.
func (f Fr) Equal(o Fr) bool { return f.e.Equal(&o.e) }

// IsZero reports whether f is the additive identity.
func (f Fr) IsZero() bool { return f.e.IsZero() }

// ReduceTokenMint reduces a 32-byte external token-mint identifier by
// subtracting the modulus up to four times, exactly matching the
// on-chain program's subroutine (spec §4.1). It differs from plain
// FrFromBytes only in being documented as the shared, cross-system
// routine other components must call for mint IDs specifically.
func ReduceTokenMint(mintID [32]byte) Fr {
	v := new(big.Int).SetBytes(mintID[:])
	p := Modulus()
	for i := 0; i < 4 && v.Cmp(p) >= 0; i++ {
		v.Sub(v, p)
	}
	// SetBigInt below is a full Montgomery reduction in case the
	// four-subtraction loop didn't fully reduce an out-of-range input
	// (the bound in spec §4.1 is "up to four times", not "exactly
	// reduced"); we still want a canonical Fr out.
	var f Fr
	f.e.SetBigInt(v)
	return f
}
