// Package boundary gives concrete Go shape to the five external
// collaborator traits of spec §6: CommitmentSource, MerkleProvider,
// ValidityProvider, NullifierOracle, and ProverBackend.
//
// None of these are implemented here — the on-chain program, indexer,
// and prover runtime are explicitly out of scope (spec §1) — but the
// client engine needs a concrete interface to code against, and the wire
// shapes of the records flowing across the boundary need a home. A
// reference in-memory implementation of each, built only for tests, lives
// in boundary/memory.
package boundary

import (
	"context"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// CommitmentRecord is one entry of the on-chain encrypted-note stream.
type CommitmentRecord struct {
	Commitment    [32]byte
	LeafIndex     uint64
	PoolID        [32]byte
	EncryptedNote []byte
	AccountHash   string
	Slot          uint64
}

// CommitmentSource streams commitment records starting after the given
// cursor. A zero cursor starts from the beginning. Implementations may
// return records out of leaf-index order across independent calls;
// callers (NoteScanner) tolerate that.
type CommitmentSource interface {
	Stream(ctx context.Context, sinceCursor uint64) (<-chan CommitmentRecord, <-chan error)
}

// MerkleProof is the Merkle inclusion witness for one compressed account,
// padded to the fixed depth of 32 (spec §5).
type MerkleProof struct {
	Root        [32]byte
	Path        [32][32]byte
	PathIndices [32]byte
	LeafIndex   uint64
}

// MerkleProvider resolves the Merkle inclusion witness for an account.
type MerkleProvider interface {
	MerkleProof(ctx context.Context, accountHash string) (MerkleProof, error)
}

// ValidityProof is the compressed-account validity proof format: the same
// 256-byte Groth16 layout as proof.Formatted, but without the A-negation
// (spec §6: "that is a prover-to-verifier transform, not a storage one").
type ValidityProof struct {
	A           [64]byte
	B           [128]byte
	C           [64]byte
	RootIndices []uint32
	TreeRefs    []string
}

// ValidityProvider resolves a validity proof for a set of new and
// existing compressed-account addresses.
type ValidityProvider interface {
	ValidityProof(ctx context.Context, newAddresses [][32]byte, existingHashes [][32]byte) (ValidityProof, error)
}

// NullifierOracle reports which of a batch of candidate nullifier
// addresses already exist on-chain (i.e. are spent).
type NullifierOracle interface {
	BatchExists(ctx context.Context, addresses [][32]byte) (map[[32]byte]bool, error)
}

// ProverBackend drives the external Groth16 prover: given a circuit name
// and its witness input mapping, it produces the three curve points of a
// proof. The prover itself — gnark, a remote proving service, whatever —
// is a black box per spec §1.
type ProverBackend interface {
	Prove(ctx context.Context, circuitName string, inputs map[string]FieldInput) (bn254.G1Affine, bn254.G2Affine, bn254.G1Affine, error)
}

// FieldInput is one entry of a witness input mapping: either a single
// scalar or a vector of scalars (spec §4.10).
type FieldInput struct {
	Scalar *Scalar
	Vector []Scalar
}

// Scalar is a witness-builder-facing alias kept distinct from field.Fr so
// this package never needs to import the field package just to name a
// type; a field.Fr is converted to it with Fr.Bytes() (32 bytes,
// big-endian).
type Scalar = [32]byte

// ScalarInput builds a single-value FieldInput.
func ScalarInput(s Scalar) FieldInput { return FieldInput{Scalar: &s} }

// VectorInput builds a vector-valued FieldInput.
func VectorInput(s []Scalar) FieldInput { return FieldInput{Vector: s} }
