// Package witness translates a typed, per-circuit operation request into
// the named public/private `FieldInput` map the external prover consumes
// (spec §4.10). One request struct and one Build function exist per
// circuit, following the teacher's BuildWitnessF10 shape: a typed struct
// populated field-by-field through small scalar/array converters.
package witness

import (
	"github.com/google/uuid"

	"github.com/craft-ec/cloakcraft-sub003/boundary"
	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/curve"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/internal/obslog"
	"github.com/craft-ec/cloakcraft-sub003/nullifier"
	"github.com/craft-ec/cloakcraft-sub003/stealth"
)

// MerkleDepth is the fixed path depth every circuit expects (spec §4.10,
// §5).
const MerkleDepth = 32

// MerklePath is a zero-padded inclusion path: Siblings[i] is the sibling
// hash at depth i, Indices[i] is 0/1 (left/right), with padding entries
// always Indices[i]=0 past the real path's length.
type MerklePath struct {
	Siblings [MerkleDepth]field.Fr
	Indices  [MerkleDepth]byte
}

// PadMerklePath zero-pads a possibly-shorter real path out to MerkleDepth,
// per spec §4.10's "Merkle path padding" rule.
func PadMerklePath(siblings []field.Fr, indices []byte) MerklePath {
	var mp MerklePath
	for i := 0; i < MerkleDepth; i++ {
		if i < len(siblings) {
			mp.Siblings[i] = siblings[i]
			mp.Indices[i] = indices[i]
		} else {
			mp.Siblings[i] = field.FrFromUint64(0)
			mp.Indices[i] = 0
		}
	}
	return mp
}

// InputNote is the common shape of a note being spent: its opening, its
// owner's base spending key, its stealth ephemeral pubkey if it was
// received at a one-time address, and its Merkle position.
type InputNote struct {
	StealthPubX field.Fr
	Amount      uint64
	Randomness  field.Fr
	SpendingKey field.Fr
	Ephemeral   *curve.Point // non-nil if the note carries a stealth ephemeral pubkey
	NullifierKey field.Fr
	Commitment  field.Fr
	LeafIndex   uint64
	Path        MerklePath
}

// EffectiveSpendingKey derives stealth_spending_key via the stealth
// protocol when the note carries an ephemeral pubkey, and returns the
// base sk otherwise — spec §4.10's "effective spending key" rule: the
// circuit's private scalar is never the base sk when a stealth ephemeral
// pubkey is present.
func (n InputNote) EffectiveSpendingKey() field.Fr {
	if n.Ephemeral != nil {
		return stealth.Scan(n.SpendingKey, *n.Ephemeral)
	}
	return n.SpendingKey
}

// Nullifier derives this input's spending nullifier.
func (n InputNote) Nullifier() field.Fr {
	return nullifier.Spending(n.NullifierKey, n.Commitment, n.LeafIndex)
}

// OutputNote is a freshly constructed output: its opening is returned to
// the caller so the same randomness can be used verbatim as the ECIES
// plaintext's randomness field (spec §4.10's "randomness discipline").
type OutputNote struct {
	StealthPubX field.Fr
	Amount      uint64
	Randomness  field.Fr
}

func toScalar(f field.Fr) boundary.Scalar { return f.Bytes() }

func toScalarU64(v uint64) boundary.Scalar { return field.FrFromUint64(v).Bytes() }

func toScalarBit(b bool) boundary.Scalar {
	if b {
		return field.FrFromUint64(1).Bytes()
	}
	return field.FrFromUint64(0).Bytes()
}

func toVector(xs []field.Fr) []boundary.Scalar {
	out := make([]boundary.Scalar, len(xs))
	for i, x := range xs {
		out[i] = toScalar(x)
	}
	return out
}

func toIndicesVector(idx [MerkleDepth]byte) []boundary.Scalar {
	xs := make([]field.Fr, MerkleDepth)
	for i, b := range idx {
		xs[i] = field.FrFromUint64(uint64(b))
	}
	return toVector(xs)
}

func pathVectors(p MerklePath) (siblings, indices []boundary.Scalar) {
	return toVector(p.Siblings[:]), toIndicesVector(p.Indices)
}

// ReducePoolID reduces a 32-byte external pool identifier to Fr via the
// shared token-mint-style reduction routine (spec §4.10's "pool id
// reduction" rule).
func ReducePoolID(poolID [32]byte) field.Fr {
	return field.ReduceTokenMint(poolID)
}

// MaskStateHash applies the state-hash masking rule for remove-liquidity
// circuits: an external keccak output's first byte is masked &= 0x1F to
// guarantee Fr-validity (spec §4.10).
func MaskStateHash(hash [32]byte) field.Fr {
	masked := hash
	masked[0] &= 0x1F
	return field.FrFromBytes(masked[:])
}

// checkBalance verifies sum(outputs) + unshield + fee == input, over
// uint64, returning ErrUnbalanced on mismatch. Overflow in the caller's
// own accounting is the caller's problem; this only checks equality of
// the values supplied.
func checkBalance(input uint64, outputsAndFees ...uint64) error {
	var sum uint64
	for _, v := range outputsAndFees {
		sum += v
	}
	if sum != input {
		return cloakerr.ErrUnbalanced
	}
	return nil
}

func inputFields(prefix string, in InputNote, effectiveKey field.Fr, m map[string]boundary.FieldInput) {
	siblings, indices := pathVectors(in.Path)
	m[prefix+"_stealth_pub_x"] = boundary.ScalarInput(toScalar(in.StealthPubX))
	m[prefix+"_amount"] = boundary.ScalarInput(toScalarU64(in.Amount))
	m[prefix+"_randomness"] = boundary.ScalarInput(toScalar(in.Randomness))
	m[prefix+"_spending_key"] = boundary.ScalarInput(toScalar(effectiveKey))
	m[prefix+"_merkle_path"] = boundary.VectorInput(siblings)
	m[prefix+"_merkle_path_indices"] = boundary.VectorInput(indices)
	m[prefix+"_leaf_index"] = boundary.ScalarInput(toScalarU64(in.LeafIndex))
}

// logBuilt records a debug-level trace of one witness build, tagged
// with a fresh correlation id so a caller building many witnesses in one
// session (e.g. a consolidation batch) can line up logs with the
// resulting proof requests.
func logBuilt(circuit string) {
	obslog.Default().Debug().Str("circuit", circuit).Str("trace_id", uuid.NewString()).Msg("witness built")
}

func outputFields(prefix string, out OutputNote, m map[string]boundary.FieldInput) {
	m[prefix+"_stealth_pub_x"] = boundary.ScalarInput(toScalar(out.StealthPubX))
	m[prefix+"_amount"] = boundary.ScalarInput(toScalarU64(out.Amount))
	m[prefix+"_randomness"] = boundary.ScalarInput(toScalar(out.Randomness))
}
