package witness

import (
	"strconv"

	"github.com/craft-ec/cloakcraft-sub003/boundary"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/note"
)

// ConsolidateRequest builds the witness for consolidate/3x1: up to three
// input notes of the same mint folded into a single output note.
type ConsolidateRequest struct {
	MerkleRoot [32]byte
	TokenMint  [32]byte
	Inputs     [3]InputNote
	Output     OutputNote
}

// ConsolidateResult mirrors TransferResult for the 3-input/1-output
// shape.
type ConsolidateResult struct {
	Witness    map[string]boundary.FieldInput
	OutCommit  [32]byte
	Nullifiers [3][32]byte
}

// BuildConsolidate validates input = output (consolidation moves no
// value) and assembles the consolidate/3x1 witness.
func BuildConsolidate(req ConsolidateRequest) (ConsolidateResult, error) {
	var total uint64
	for _, in := range req.Inputs {
		total += in.Amount
	}
	if err := checkBalance(total, req.Output.Amount); err != nil {
		return ConsolidateResult{}, err
	}
	tokenMint := field.ReduceTokenMint(req.TokenMint)
	out := note.Standard{StealthPubX: req.Output.StealthPubX, TokenMint: tokenMint, Amount: req.Output.Amount, Randomness: req.Output.Randomness}

	m := map[string]boundary.FieldInput{
		"merkle_root": boundary.ScalarInput(req.MerkleRoot),
		"out_commitment": boundary.ScalarInput(out.Commitment().Bytes()),
		"token_mint":     boundary.ScalarInput(tokenMint.Bytes()),
	}
	outputFields("out", req.Output, m)

	var nullifiers [3][32]byte
	for i, in := range req.Inputs {
		prefix := "in_" + strconv.Itoa(i+1)
		effKey := in.EffectiveSpendingKey()
		inputFields(prefix, in, effKey, m)
		nf := in.Nullifier()
		nullifiers[i] = nf.Bytes()
		m["nullifier_"+strconv.Itoa(i+1)] = boundary.ScalarInput(nf.Bytes())
	}

	logBuilt("consolidate/3x1")
	return ConsolidateResult{
		Witness:    m,
		OutCommit:  out.Commitment().Bytes(),
		Nullifiers: nullifiers,
	}, nil
}
