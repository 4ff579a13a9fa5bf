// Package poseidon wraps the circom-compatible Poseidon permutation used
// throughout the engine for commitments, nullifiers, and hash-to-scalar.
//
// spec.md §4.2 requires "the exact circom-compatible BN254 parameters" —
// the same round constants and width-dependent MDS matrices the
// arithmetic circuits use. github.com/iden3/go-iden3-crypto/poseidon is
// the canonical Go implementation of exactly that parameter set (it is
// what circomlib's own reference Go tooling uses); gnark-crypto ships a
// different hash (Poseidon2) tuned for recursion, with different round
// constants, so it cannot substitute here.
package poseidon

import (
	"fmt"
	"math/big"

	iposeidon "github.com/iden3/go-iden3-crypto/poseidon"

	"github.com/craft-ec/cloakcraft-sub003/field"
)

// maxInputs mirrors spec §4.2: hash(inputs[1..=5]).
const maxInputs = 5

// Hash hashes between one and five Fr elements. It panics if called with
// zero or more than five inputs — that is a programmer error, not a data
// error, so every call site in this module is expected to pass a fixed,
// known-correct arity.
func Hash(inputs ...field.Fr) field.Fr {
	if len(inputs) == 0 || len(inputs) > maxInputs {
		panic(fmt.Sprintf("poseidon: hash takes 1 to %d inputs, got %d", maxInputs, len(inputs)))
	}
	args := make([]*big.Int, len(inputs))
	for i, in := range inputs {
		args[i] = in.BigInt()
	}
	out, err := iposeidon.Hash(args)
	if err != nil {
		// go-iden3-crypto only errors on arity, which we've already
		// checked above, or on nil elements, which field.Fr can't be.
		panic(fmt.Sprintf("poseidon: unexpected hash error: %v", err))
	}
	return field.FrFromBigInt(out)
}

// HashDomain prepends the single-byte domain separator as the first field
// element, then hashes it together with up to four more inputs
// (spec §4.2: hash_domain(d, inputs[1..=4])).
func HashDomain(domain byte, inputs ...field.Fr) field.Fr {
	if len(inputs) > maxInputs-1 {
		panic(fmt.Sprintf("poseidon: hash_domain takes up to %d inputs, got %d", maxInputs-1, len(inputs)))
	}
	all := make([]field.Fr, 0, len(inputs)+1)
	all = append(all, field.FrFromUint64(uint64(domain)))
	all = append(all, inputs...)
	return Hash(all...)
}
