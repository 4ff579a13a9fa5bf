package witness

import (
	"github.com/craft-ec/cloakcraft-sub003/boundary"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/note"
)

// SwapRequest builds the witness for swap/swap: spend one note, swap
// within a pool, and produce an output note plus a change note.
// TokenMintIn is the mint of the note being spent (and of Change, since
// unswapped dust stays in the input token); TokenMintOut is the mint of
// the token being bought (and of Output).
type SwapRequest struct {
	MerkleRoot   [32]byte
	PoolID       [32]byte
	TokenMintIn  [32]byte
	TokenMintOut [32]byte
	Input        InputNote
	SwapInAmount uint64
	SwapAToB     bool
	FeeBps       uint64
	Output       OutputNote
	Change       OutputNote
	MinOutput    uint64
}

// SwapResult carries the precomputed output/change commitments and the
// input nullifier.
type SwapResult struct {
	Witness         map[string]boundary.FieldInput
	OutCommit       [32]byte
	ChangeCommit    [32]byte
	Nullifier       [32]byte
}

// BuildSwap assembles the swap/swap witness. The swapped-amount
// bookkeeping (price, slippage) is off-circuit and already folded into
// Output/Change/MinOutput by the caller; the builder only enforces that
// the spent note covers SwapInAmount plus whatever remains as change.
func BuildSwap(req SwapRequest) (SwapResult, error) {
	if err := checkBalance(req.Input.Amount, req.SwapInAmount, req.Change.Amount); err != nil {
		return SwapResult{}, err
	}
	poolID := ReducePoolID(req.PoolID)
	mintIn := field.ReduceTokenMint(req.TokenMintIn)
	mintOut := field.ReduceTokenMint(req.TokenMintOut)
	out := note.Standard{StealthPubX: req.Output.StealthPubX, TokenMint: mintOut, Amount: req.Output.Amount, Randomness: req.Output.Randomness}
	change := note.Standard{StealthPubX: req.Change.StealthPubX, TokenMint: mintIn, Amount: req.Change.Amount, Randomness: req.Change.Randomness}

	effKey := req.Input.EffectiveSpendingKey()
	nf := req.Input.Nullifier()

	m := map[string]boundary.FieldInput{
		"merkle_root":        boundary.ScalarInput(req.MerkleRoot),
		"nullifier":           boundary.ScalarInput(nf.Bytes()),
		"pool_id":             boundary.ScalarInput(poolID.Bytes()),
		"token_mint_in":       boundary.ScalarInput(mintIn.Bytes()),
		"token_mint_out":      boundary.ScalarInput(mintOut.Bytes()),
		"out_commitment":      boundary.ScalarInput(out.Commitment().Bytes()),
		"change_commitment":   boundary.ScalarInput(change.Commitment().Bytes()),
		"min_output":          boundary.ScalarInput(toScalarU64(req.MinOutput)),
		"swap_in_amount":      boundary.ScalarInput(toScalarU64(req.SwapInAmount)),
		"swap_a_to_b":         boundary.ScalarInput(toScalarBit(req.SwapAToB)),
		"fee_bps":             boundary.ScalarInput(toScalarU64(req.FeeBps)),
	}
	inputFields("in", req.Input, effKey, m)
	outputFields("out", req.Output, m)
	outputFields("change", req.Change, m)

	logBuilt("swap/swap")
	return SwapResult{
		Witness:      m,
		OutCommit:    out.Commitment().Bytes(),
		ChangeCommit: change.Commitment().Bytes(),
		Nullifier:    nf.Bytes(),
	}, nil
}

// AddLiquidityRequest builds the witness for swap/add_liquidity: two
// input notes (one per side of the pool) deposited for an LP share.
// TokenMintA/TokenMintB are the two pool-leg mints, each binding the
// matching input/change pair.
type AddLiquidityRequest struct {
	MerkleRoot [32]byte
	PoolID     [32]byte
	TokenMintA [32]byte
	TokenMintB [32]byte
	InputA     InputNote
	InputB     InputNote
	DepositA   uint64
	DepositB   uint64
	LPOutput   note.LP
	ChangeA    OutputNote
	ChangeB    OutputNote
}

// AddLiquidityResult carries the precomputed commitments and nullifiers.
type AddLiquidityResult struct {
	Witness        map[string]boundary.FieldInput
	LPCommit       [32]byte
	ChangeACommit  [32]byte
	ChangeBCommit  [32]byte
	NullifierA     [32]byte
	NullifierB     [32]byte
}

// BuildAddLiquidity assembles the swap/add_liquidity witness.
func BuildAddLiquidity(req AddLiquidityRequest) (AddLiquidityResult, error) {
	if err := checkBalance(req.InputA.Amount, req.DepositA, req.ChangeA.Amount); err != nil {
		return AddLiquidityResult{}, err
	}
	if err := checkBalance(req.InputB.Amount, req.DepositB, req.ChangeB.Amount); err != nil {
		return AddLiquidityResult{}, err
	}
	poolID := ReducePoolID(req.PoolID)
	mintA := field.ReduceTokenMint(req.TokenMintA)
	mintB := field.ReduceTokenMint(req.TokenMintB)
	changeA := note.Standard{StealthPubX: req.ChangeA.StealthPubX, TokenMint: mintA, Amount: req.ChangeA.Amount, Randomness: req.ChangeA.Randomness}
	changeB := note.Standard{StealthPubX: req.ChangeB.StealthPubX, TokenMint: mintB, Amount: req.ChangeB.Amount, Randomness: req.ChangeB.Randomness}

	effKeyA := req.InputA.EffectiveSpendingKey()
	effKeyB := req.InputB.EffectiveSpendingKey()
	nfA := req.InputA.Nullifier()
	nfB := req.InputB.Nullifier()

	m := map[string]boundary.FieldInput{
		"merkle_root":          boundary.ScalarInput(req.MerkleRoot),
		"nullifier_a":          boundary.ScalarInput(nfA.Bytes()),
		"nullifier_b":          boundary.ScalarInput(nfB.Bytes()),
		"pool_id":              boundary.ScalarInput(poolID.Bytes()),
		"token_mint_a":         boundary.ScalarInput(mintA.Bytes()),
		"token_mint_b":         boundary.ScalarInput(mintB.Bytes()),
		"lp_commitment":        boundary.ScalarInput(req.LPOutput.Commitment().Bytes()),
		"change_commitment_a":  boundary.ScalarInput(changeA.Commitment().Bytes()),
		"change_commitment_b":  boundary.ScalarInput(changeB.Commitment().Bytes()),
		"deposit_a":            boundary.ScalarInput(toScalarU64(req.DepositA)),
		"deposit_b":            boundary.ScalarInput(toScalarU64(req.DepositB)),
	}
	inputFields("in_a", req.InputA, effKeyA, m)
	inputFields("in_b", req.InputB, effKeyB, m)
	outputFields("change_a", req.ChangeA, m)
	outputFields("change_b", req.ChangeB, m)
	m["lp_stealth_pub_x"] = boundary.ScalarInput(toScalar(req.LPOutput.StealthPubX))
	m["lp_amount"] = boundary.ScalarInput(toScalar(req.LPOutput.LPAmount))
	m["lp_randomness"] = boundary.ScalarInput(toScalar(req.LPOutput.Randomness))

	logBuilt("swap/add_liquidity")
	return AddLiquidityResult{
		Witness:       m,
		LPCommit:      req.LPOutput.Commitment().Bytes(),
		ChangeACommit: changeA.Commitment().Bytes(),
		ChangeBCommit: changeB.Commitment().Bytes(),
		NullifierA:    nfA.Bytes(),
		NullifierB:    nfB.Bytes(),
	}, nil
}

// RemoveLiquidityRequest builds the witness for swap/remove_liquidity:
// burn an LP note for two withdrawn output notes, with the pool's
// before/after state bound in as masked keccak-derived hashes.
// TokenMintA/TokenMintB are the two pool-leg mints withdrawn into
// OutputA/OutputB respectively.
type RemoveLiquidityRequest struct {
	LPInput       InputNote
	PoolID        [32]byte
	TokenMintA    [32]byte
	TokenMintB    [32]byte
	OutputA       OutputNote
	OutputB       OutputNote
	OldStateHash  [32]byte
	NewStateHash  [32]byte
}

// RemoveLiquidityResult carries the precomputed commitments and
// nullifier.
type RemoveLiquidityResult struct {
	Witness       map[string]boundary.FieldInput
	OutACommit    [32]byte
	OutBCommit    [32]byte
	LPNullifier   [32]byte
}

// BuildRemoveLiquidity assembles the swap/remove_liquidity witness,
// masking the old/new state hashes per spec §4.10.
func BuildRemoveLiquidity(req RemoveLiquidityRequest) (RemoveLiquidityResult, error) {
	poolID := ReducePoolID(req.PoolID)
	mintA := field.ReduceTokenMint(req.TokenMintA)
	mintB := field.ReduceTokenMint(req.TokenMintB)
	outA := note.Standard{StealthPubX: req.OutputA.StealthPubX, TokenMint: mintA, Amount: req.OutputA.Amount, Randomness: req.OutputA.Randomness}
	outB := note.Standard{StealthPubX: req.OutputB.StealthPubX, TokenMint: mintB, Amount: req.OutputB.Amount, Randomness: req.OutputB.Randomness}

	effKey := req.LPInput.EffectiveSpendingKey()
	lpNullifier := req.LPInput.Nullifier()

	m := map[string]boundary.FieldInput{
		"lp_nullifier":     boundary.ScalarInput(lpNullifier.Bytes()),
		"pool_id":          boundary.ScalarInput(poolID.Bytes()),
		"token_mint_a":     boundary.ScalarInput(mintA.Bytes()),
		"token_mint_b":     boundary.ScalarInput(mintB.Bytes()),
		"out_commitment_a": boundary.ScalarInput(outA.Commitment().Bytes()),
		"out_commitment_b": boundary.ScalarInput(outB.Commitment().Bytes()),
		"old_state_hash":   boundary.ScalarInput(toScalar(MaskStateHash(req.OldStateHash))),
		"new_state_hash":   boundary.ScalarInput(toScalar(MaskStateHash(req.NewStateHash))),
	}
	inputFields("lp_in", req.LPInput, effKey, m)
	outputFields("out_a", req.OutputA, m)
	outputFields("out_b", req.OutputB, m)

	logBuilt("swap/remove_liquidity")
	return RemoveLiquidityResult{
		Witness:     m,
		OutACommit:  outA.Commitment().Bytes(),
		OutBCommit:  outB.Commitment().Bytes(),
		LPNullifier: lpNullifier.Bytes(),
	}, nil
}
