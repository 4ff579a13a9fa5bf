// Package proof re-serializes a Groth16 proof from the external prover's
// (G1, G2, G1) triple into the 256-byte layout the on-chain pairing
// verifier expects: A negated, and G2 coordinates with the imaginary
// part first (spec §4.11).
package proof

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/field"
)

// Size is the fixed length of the on-chain verifier's proof buffer.
const Size = 256

// Formatted is the 256-byte on-chain proof layout, held as typed
// coordinates until Serialize is called.
type Formatted struct {
	AX, AYNeg      field.Fq
	BXImag, BXReal field.Fq
	BYImag, BYReal field.Fq
	CX, CY         field.Fq
}

// Format negates A.y (mod q) and swaps each G2 coordinate's imaginary
// and real components ahead of the real part, per spec §4.11. Skipping
// the negation here is exactly the mistake spec §4.11 warns about: the
// prover itself happily accepts the unnegated witness, only the
// on-chain pairing check would reject it.
func Format(piA bn254.G1Affine, piB bn254.G2Affine, piC bn254.G1Affine) Formatted {
	return Formatted{
		AX:     field.FqFromElement(piA.X),
		AYNeg:  field.FqFromElement(piA.Y).Neg(),
		BXImag: field.FqFromElement(piB.X.A1),
		BXReal: field.FqFromElement(piB.X.A0),
		BYImag: field.FqFromElement(piB.Y.A1),
		BYReal: field.FqFromElement(piB.Y.A0),
		CX:     field.FqFromElement(piC.X),
		CY:     field.FqFromElement(piC.Y),
	}
}

// Serialize writes the 256-byte big-endian buffer in the exact field
// order spec §4.11 lays out.
func (f Formatted) Serialize() [Size]byte {
	var out [Size]byte
	fields := [8]field.Fq{f.AX, f.AYNeg, f.BXImag, f.BXReal, f.BYImag, f.BYReal, f.CX, f.CY}
	for i, el := range fields {
		b := el.Bytes()
		copy(out[i*32:(i+1)*32], b[:])
	}
	return out
}

// Parse is the inverse of Serialize, used for wire transport and tests.
func Parse(buf []byte) (Formatted, error) {
	if len(buf) != Size {
		return Formatted{}, cloakerr.ErrInvalidScalar
	}
	read := func(i int) field.Fq {
		return field.FqFromBytes(buf[i*32 : (i+1)*32])
	}
	return Formatted{
		AX:     read(0),
		AYNeg:  read(1),
		BXImag: read(2),
		BXReal: read(3),
		BYImag: read(4),
		BYReal: read(5),
		CX:     read(6),
		CY:     read(7),
	}, nil
}
