package witness

import (
	"github.com/craft-ec/cloakcraft-sub003/boundary"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/note"
)

// TransferRequest builds the witness for transfer/1x2: one input note
// split into two outputs, with optional unshield and a fee.
type TransferRequest struct {
	MerkleRoot     [32]byte
	TokenMint      [32]byte
	Input          InputNote
	Output1        OutputNote
	Output2        OutputNote
	UnshieldAmount uint64
	FeeAmount      uint64
}

// TransferResult carries the precomputed output commitments and input
// nullifier alongside the witness map, so the caller can build the
// ECIES-encrypted notes and the on-chain instruction from the same
// values the circuit was fed.
type TransferResult struct {
	Witness      map[string]boundary.FieldInput
	OutCommit1   [32]byte
	OutCommit2   [32]byte
	Nullifier    [32]byte
}

// BuildTransfer validates the balance constraint (input = out1 + out2 +
// unshield + fee) and assembles the transfer/1x2 witness.
func BuildTransfer(req TransferRequest) (TransferResult, error) {
	if err := checkBalance(req.Input.Amount, req.Output1.Amount, req.Output2.Amount, req.UnshieldAmount, req.FeeAmount); err != nil {
		return TransferResult{}, err
	}
	tokenMint := field.ReduceTokenMint(req.TokenMint)

	out1 := note.Standard{StealthPubX: req.Output1.StealthPubX, TokenMint: tokenMint, Amount: req.Output1.Amount, Randomness: req.Output1.Randomness}
	out2 := note.Standard{StealthPubX: req.Output2.StealthPubX, TokenMint: tokenMint, Amount: req.Output2.Amount, Randomness: req.Output2.Randomness}

	effKey := req.Input.EffectiveSpendingKey()
	nf := req.Input.Nullifier()

	m := map[string]boundary.FieldInput{
		"merkle_root":        boundary.ScalarInput(req.MerkleRoot),
		"nullifier":           boundary.ScalarInput(nf.Bytes()),
		"out_commitment_1":    boundary.ScalarInput(out1.Commitment().Bytes()),
		"out_commitment_2":    boundary.ScalarInput(out2.Commitment().Bytes()),
		"token_mint":          boundary.ScalarInput(tokenMint.Bytes()),
		"transfer_amount":     boundary.ScalarInput(toScalarU64(req.Output1.Amount)),
		"unshield_amount":     boundary.ScalarInput(toScalarU64(req.UnshieldAmount)),
		"fee_amount":          boundary.ScalarInput(toScalarU64(req.FeeAmount)),
	}
	inputFields("in", req.Input, effKey, m)
	outputFields("out_1", req.Output1, m)
	outputFields("out_2", req.Output2, m)

	logBuilt("transfer/1x2")
	return TransferResult{
		Witness:    m,
		OutCommit1: out1.Commitment().Bytes(),
		OutCommit2: out2.Commitment().Bytes(),
		Nullifier:  nf.Bytes(),
	}, nil
}
