package witness

import (
	"github.com/craft-ec/cloakcraft-sub003/boundary"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/note"
)

// OpenPositionRequest builds the witness for perps/open_position: spend
// a collateral note, open a leveraged position, and return any unused
// collateral as a change note.
type OpenPositionRequest struct {
	MerkleRoot    [32]byte
	Input         InputNote
	PerpsPoolID   [32]byte
	MarketID      [32]byte
	IsLong        bool
	Margin        uint64
	Leverage      uint64
	PositionFee   uint64
	ChangeAmount  uint64
	Size          field.Fr
	EntryPrice    field.Fr
	PositionRandomness field.Fr
	Change        OutputNote
}

// OpenPositionResult carries the precomputed position/change commitments
// and input nullifier.
type OpenPositionResult struct {
	Witness          map[string]boundary.FieldInput
	PositionCommit   [32]byte
	ChangeCommit     [32]byte
	Nullifier        [32]byte
}

// BuildOpenPosition assembles the perps/open_position witness.
func BuildOpenPosition(req OpenPositionRequest) (OpenPositionResult, error) {
	if err := checkBalance(req.Input.Amount, req.Margin, req.PositionFee, req.ChangeAmount); err != nil {
		return OpenPositionResult{}, err
	}
	marketID := field.ReduceTokenMint(req.MarketID)
	perpsPoolID := ReducePoolID(req.PerpsPoolID)

	position := note.Position{
		StealthPubX: req.Input.StealthPubX,
		MarketID:    marketID,
		IsLong:      req.IsLong,
		Margin:      field.FrFromUint64(req.Margin),
		Size:        req.Size,
		Leverage:    field.FrFromUint64(req.Leverage),
		EntryPrice:  req.EntryPrice,
		Randomness:  req.PositionRandomness,
	}
	change := note.Standard{StealthPubX: req.Change.StealthPubX, TokenMint: field.ReduceTokenMint(req.MarketID), Amount: req.Change.Amount, Randomness: req.Change.Randomness}

	effKey := req.Input.EffectiveSpendingKey()
	nf := req.Input.Nullifier()

	m := map[string]boundary.FieldInput{
		"merkle_root":         boundary.ScalarInput(req.MerkleRoot),
		"nullifier":            boundary.ScalarInput(nf.Bytes()),
		"perps_pool_id":        boundary.ScalarInput(perpsPoolID.Bytes()),
		"market_id":            boundary.ScalarInput(marketID.Bytes()),
		"position_commitment":  boundary.ScalarInput(position.Commitment().Bytes()),
		"change_commitment":    boundary.ScalarInput(change.Commitment().Bytes()),
		"is_long":              boundary.ScalarInput(toScalarBit(req.IsLong)),
		"margin":               boundary.ScalarInput(toScalarU64(req.Margin)),
		"leverage":             boundary.ScalarInput(toScalarU64(req.Leverage)),
		"position_fee":         boundary.ScalarInput(toScalarU64(req.PositionFee)),
		"change_amount":        boundary.ScalarInput(toScalarU64(req.ChangeAmount)),
		"position_size":        boundary.ScalarInput(toScalar(req.Size)),
		"entry_price":          boundary.ScalarInput(toScalar(req.EntryPrice)),
		"position_randomness":  boundary.ScalarInput(toScalar(req.PositionRandomness)),
	}
	inputFields("in", req.Input, effKey, m)
	outputFields("change", req.Change, m)

	logBuilt("perps/open_position")
	return OpenPositionResult{
		Witness:        m,
		PositionCommit: position.Commitment().Bytes(),
		ChangeCommit:   change.Commitment().Bytes(),
		Nullifier:      nf.Bytes(),
	}, nil
}

// ClosePositionRequest builds the witness for perps/close_position:
// settle a position at exit and produce a single settlement output.
type ClosePositionRequest struct {
	MerkleRoot    [32]byte
	Position      InputNote
	PerpsPoolID   [32]byte
	IsLong        bool
	ExitPrice     field.Fr
	CloseFee      uint64
	PnLAmount     uint64
	IsProfit      bool
	Settlement    OutputNote
}

// ClosePositionResult carries the precomputed settlement output
// commitment and the position nullifier.
type ClosePositionResult struct {
	Witness           map[string]boundary.FieldInput
	SettlementCommit  [32]byte
	PositionNullifier [32]byte
}

// BuildClosePosition assembles the perps/close_position witness.
func BuildClosePosition(req ClosePositionRequest) (ClosePositionResult, error) {
	perpsPoolID := ReducePoolID(req.PerpsPoolID)
	settlement := note.Standard{
		StealthPubX: req.Settlement.StealthPubX,
		TokenMint:   perpsPoolID,
		Amount:      req.Settlement.Amount,
		Randomness:  req.Settlement.Randomness,
	}

	effKey := req.Position.EffectiveSpendingKey()
	nf := req.Position.Nullifier()

	m := map[string]boundary.FieldInput{
		"merkle_root":       boundary.ScalarInput(req.MerkleRoot),
		"position_nullifier": boundary.ScalarInput(nf.Bytes()),
		"perps_pool_id":      boundary.ScalarInput(perpsPoolID.Bytes()),
		"out_commitment":     boundary.ScalarInput(settlement.Commitment().Bytes()),
		"is_long":            boundary.ScalarInput(toScalarBit(req.IsLong)),
		"exit_price":         boundary.ScalarInput(toScalar(req.ExitPrice)),
		"close_fee":          boundary.ScalarInput(toScalarU64(req.CloseFee)),
		"pnl_amount":         boundary.ScalarInput(toScalarU64(req.PnLAmount)),
		"is_profit":          boundary.ScalarInput(toScalarBit(req.IsProfit)),
	}
	inputFields("position", req.Position, effKey, m)
	outputFields("out", req.Settlement, m)

	logBuilt("perps/close_position")
	return ClosePositionResult{
		Witness:           m,
		SettlementCommit:  settlement.Commitment().Bytes(),
		PositionNullifier: nf.Bytes(),
	}, nil
}

// PerpsAddLiquidityRequest builds the witness for perps/add_liquidity:
// deposit collateral into a perps LP pool for one of its token legs.
type PerpsAddLiquidityRequest struct {
	MerkleRoot      [32]byte
	Input           InputNote
	PerpsPoolID     [32]byte
	TokenIndex      uint64
	DepositAmount   uint64
	LPAmountMinted  uint64
	FeeAmount       uint64
	LPOutput        note.LP
}

// PerpsAddLiquidityResult carries the precomputed LP commitment and
// input nullifier.
type PerpsAddLiquidityResult struct {
	Witness   map[string]boundary.FieldInput
	LPCommit  [32]byte
	Nullifier [32]byte
}

// BuildPerpsAddLiquidity assembles the perps/add_liquidity witness.
func BuildPerpsAddLiquidity(req PerpsAddLiquidityRequest) (PerpsAddLiquidityResult, error) {
	if err := checkBalance(req.Input.Amount, req.DepositAmount); err != nil {
		return PerpsAddLiquidityResult{}, err
	}
	perpsPoolID := ReducePoolID(req.PerpsPoolID)
	effKey := req.Input.EffectiveSpendingKey()
	nf := req.Input.Nullifier()

	m := map[string]boundary.FieldInput{
		"merkle_root":     boundary.ScalarInput(req.MerkleRoot),
		"nullifier":        boundary.ScalarInput(nf.Bytes()),
		"perps_pool_id":    boundary.ScalarInput(perpsPoolID.Bytes()),
		"lp_commitment":    boundary.ScalarInput(req.LPOutput.Commitment().Bytes()),
		"token_index":      boundary.ScalarInput(toScalarU64(req.TokenIndex)),
		"deposit_amount":   boundary.ScalarInput(toScalarU64(req.DepositAmount)),
		"lp_amount_minted": boundary.ScalarInput(toScalarU64(req.LPAmountMinted)),
		"fee_amount":       boundary.ScalarInput(toScalarU64(req.FeeAmount)),
		"lp_stealth_pub_x": boundary.ScalarInput(toScalar(req.LPOutput.StealthPubX)),
		"lp_randomness":    boundary.ScalarInput(toScalar(req.LPOutput.Randomness)),
	}
	inputFields("in", req.Input, effKey, m)

	logBuilt("perps/add_liquidity")
	return PerpsAddLiquidityResult{
		Witness:   m,
		LPCommit:  req.LPOutput.Commitment().Bytes(),
		Nullifier: nf.Bytes(),
	}, nil
}

// PerpsRemoveLiquidityRequest builds the witness for
// perps/remove_liquidity: burn (or partially burn) an LP note, returning
// an output note plus a change LP note for any unburned remainder.
// TokenMintA/TokenMintB are the pool's two legs; TokenIndex selects
// which one Output is denominated in (0 -> TokenMintA, otherwise
// TokenMintB).
type PerpsRemoveLiquidityRequest struct {
	MerkleRoot      [32]byte
	LPInput         InputNote
	PerpsPoolID     [32]byte
	TokenMintA      [32]byte
	TokenMintB      [32]byte
	TokenIndex      uint64
	WithdrawAmount  uint64
	LPAmountBurned  uint64
	FeeAmount       uint64
	Output          OutputNote
	ChangeLP        note.LP
}

// PerpsRemoveLiquidityResult carries the precomputed output/change-LP
// commitments and the LP nullifier.
type PerpsRemoveLiquidityResult struct {
	Witness          map[string]boundary.FieldInput
	OutCommit        [32]byte
	ChangeLPCommit   [32]byte
	LPNullifier      [32]byte
}

// BuildPerpsRemoveLiquidity assembles the perps/remove_liquidity witness.
func BuildPerpsRemoveLiquidity(req PerpsRemoveLiquidityRequest) (PerpsRemoveLiquidityResult, error) {
	perpsPoolID := ReducePoolID(req.PerpsPoolID)
	mintA := field.ReduceTokenMint(req.TokenMintA)
	mintB := field.ReduceTokenMint(req.TokenMintB)
	outMint := mintA
	if req.TokenIndex != 0 {
		outMint = mintB
	}
	out := note.Standard{
		StealthPubX: req.Output.StealthPubX,
		TokenMint:   outMint,
		Amount:      req.Output.Amount,
		Randomness:  req.Output.Randomness,
	}

	effKey := req.LPInput.EffectiveSpendingKey()
	lpNullifier := req.LPInput.Nullifier()

	m := map[string]boundary.FieldInput{
		"merkle_root":       boundary.ScalarInput(req.MerkleRoot),
		"lp_nullifier":       boundary.ScalarInput(lpNullifier.Bytes()),
		"perps_pool_id":      boundary.ScalarInput(perpsPoolID.Bytes()),
		"token_mint_a":       boundary.ScalarInput(mintA.Bytes()),
		"token_mint_b":       boundary.ScalarInput(mintB.Bytes()),
		"out_commitment":     boundary.ScalarInput(out.Commitment().Bytes()),
		"token_index":        boundary.ScalarInput(toScalarU64(req.TokenIndex)),
		"withdraw_amount":    boundary.ScalarInput(toScalarU64(req.WithdrawAmount)),
		"lp_amount_burned":   boundary.ScalarInput(toScalarU64(req.LPAmountBurned)),
		"fee_amount":         boundary.ScalarInput(toScalarU64(req.FeeAmount)),
		"change_lp_commitment": boundary.ScalarInput(req.ChangeLP.Commitment().Bytes()),
		"change_lp_amount":     boundary.ScalarInput(toScalar(req.ChangeLP.LPAmount)),
		"change_lp_randomness": boundary.ScalarInput(toScalar(req.ChangeLP.Randomness)),
	}
	inputFields("lp_in", req.LPInput, effKey, m)
	outputFields("out", req.Output, m)

	logBuilt("perps/remove_liquidity")
	return PerpsRemoveLiquidityResult{
		Witness:        m,
		OutCommit:      out.Commitment().Bytes(),
		ChangeLPCommit: req.ChangeLP.Commitment().Bytes(),
		LPNullifier:    lpNullifier.Bytes(),
	}, nil
}
