package witness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/note"
)

func TestBuildSwapBalances(t *testing.T) {
	in := inputNote(500, fr(1))
	req := SwapRequest{
		PoolID:       [32]byte{1},
		TokenMintIn:  [32]byte{0xA},
		TokenMintOut: [32]byte{0xB},
		Input:        in,
		SwapInAmount: 450,
		Output:       OutputNote{StealthPubX: fr(2), Amount: 450, Randomness: fr(3)},
		Change:       OutputNote{StealthPubX: fr(4), Amount: 50, Randomness: fr(5)},
		MinOutput:    400,
	}
	res, err := BuildSwap(req)
	require.NoError(t, err)
	require.Equal(t, res.Nullifier, in.Nullifier().Bytes())
	require.Contains(t, res.Witness, "swap_in_amount")
	require.NotEqual(t, res.Witness["token_mint_in"].Scalar, res.Witness["token_mint_out"].Scalar)
	require.NotEqual(t, res.OutCommit, res.ChangeCommit)
}

func TestBuildAddLiquidityRejectsUnbalancedSideA(t *testing.T) {
	req := AddLiquidityRequest{
		PoolID:     [32]byte{2},
		TokenMintA: [32]byte{0xA},
		TokenMintB: [32]byte{0xB},
		InputA:     inputNote(100, fr(1)),
		InputB:     inputNote(200, fr(1)),
		DepositA:   90,
		DepositB:   200,
		LPOutput:   note.LP{StealthPubX: fr(6), PoolID: fr(7), LPAmount: fr(8), Randomness: fr(9)},
		ChangeA:    OutputNote{StealthPubX: fr(10), Amount: 5, Randomness: fr(11)},
		ChangeB:    OutputNote{StealthPubX: fr(12), Amount: 0, Randomness: fr(13)},
	}
	_, err := BuildAddLiquidity(req)
	require.ErrorIs(t, err, cloakerr.ErrUnbalanced)
}

func TestBuildAddLiquidityBalances(t *testing.T) {
	req := AddLiquidityRequest{
		PoolID:     [32]byte{2},
		TokenMintA: [32]byte{0xA},
		TokenMintB: [32]byte{0xB},
		InputA:     inputNote(100, fr(1)),
		InputB:     inputNote(200, fr(1)),
		DepositA:   90,
		DepositB:   200,
		LPOutput:   note.LP{StealthPubX: fr(6), PoolID: fr(7), LPAmount: fr(8), Randomness: fr(9)},
		ChangeA:    OutputNote{StealthPubX: fr(10), Amount: 10, Randomness: fr(11)},
		ChangeB:    OutputNote{StealthPubX: fr(12), Amount: 0, Randomness: fr(13)},
	}
	res, err := BuildAddLiquidity(req)
	require.NoError(t, err)
	require.Equal(t, res.NullifierA, req.InputA.Nullifier().Bytes())
	require.Equal(t, res.NullifierB, req.InputB.Nullifier().Bytes())
	require.Equal(t, res.LPCommit, req.LPOutput.Commitment().Bytes())
	require.NotEqual(t, res.Witness["token_mint_a"].Scalar, res.Witness["token_mint_b"].Scalar)
}

func TestBuildRemoveLiquidityMasksStateHashes(t *testing.T) {
	req := RemoveLiquidityRequest{
		LPInput:      inputNote(0, fr(1)),
		PoolID:       [32]byte{3},
		TokenMintA:   [32]byte{0xA},
		TokenMintB:   [32]byte{0xB},
		OutputA:      OutputNote{StealthPubX: fr(14), Amount: 100, Randomness: fr(15)},
		OutputB:      OutputNote{StealthPubX: fr(16), Amount: 200, Randomness: fr(17)},
		OldStateHash: [32]byte{0xFF},
		NewStateHash: [32]byte{0xFF, 1},
	}
	res, err := BuildRemoveLiquidity(req)
	require.NoError(t, err)
	require.Equal(t, res.LPNullifier, req.LPInput.Nullifier().Bytes())
	require.NotEqual(t, req.OldStateHash[0], res.Witness["old_state_hash"].Scalar[0])
	require.NotEqual(t, res.Witness["token_mint_a"].Scalar, res.Witness["token_mint_b"].Scalar)
}

func TestBuildOrderCreateBindsTermsHash(t *testing.T) {
	req := OrderCreateRequest{
		Input:                   inputNote(1000, fr(1)),
		OrderID:                 [32]byte{9},
		OfferTokenMint:          [32]byte{1},
		OfferAmount:             1000,
		AskTokenMint:            [32]byte{2},
		AskAmount:               2000,
		Escrow:                  OutputNote{StealthPubX: fr(20), Amount: 1000, Randomness: fr(21)},
		MakerReceiveStealthPubX: fr(22),
		Expiry:                  99999,
	}
	res, err := BuildOrderCreate(req)
	require.NoError(t, err)
	require.NotEmpty(t, res.TermsHash)
	require.Equal(t, res.Nullifier, req.Input.Nullifier().Bytes())
}

func TestBuildOrderCreateRejectsUnbalanced(t *testing.T) {
	req := OrderCreateRequest{
		Input:       inputNote(1000, fr(1)),
		OfferAmount: 1000,
		Escrow:      OutputNote{StealthPubX: fr(20), Amount: 900, Randomness: fr(21)},
	}
	_, err := BuildOrderCreate(req)
	require.ErrorIs(t, err, cloakerr.ErrUnbalanced)
}

func TestBuildOrderFillHasNoBalanceCheck(t *testing.T) {
	req := OrderFillRequest{
		Taker:                   inputNote(100, fr(1)),
		OrderID:                 [32]byte{9},
		CurrentTimestamp:        42,
		TakerReceiveStealthPubX: fr(1),
		TakerChangeStealthPubX:  fr(2),
	}
	res, err := BuildOrderFill(req)
	require.NoError(t, err)
	require.Equal(t, res.TakerNullifier, req.Taker.Nullifier().Bytes())
}

func TestBuildOpenPositionBalances(t *testing.T) {
	in := inputNote(1000, fr(1))
	req := OpenPositionRequest{
		Input:              in,
		MarketID:           [32]byte{4},
		IsLong:             true,
		Margin:             800,
		Leverage:           5,
		PositionFee:        100,
		ChangeAmount:       100,
		Size:               fr(4000),
		EntryPrice:         fr(1234),
		PositionRandomness: fr(5),
		Change:             OutputNote{StealthPubX: fr(6), Amount: 100, Randomness: fr(7)},
	}
	res, err := BuildOpenPosition(req)
	require.NoError(t, err)
	require.Equal(t, res.Nullifier, in.Nullifier().Bytes())
	require.NotEmpty(t, res.PositionCommit)
}

func TestBuildClosePositionHasNoBalanceCheck(t *testing.T) {
	req := ClosePositionRequest{
		Position:   inputNote(0, fr(1)),
		PerpsPoolID: [32]byte{5},
		IsLong:     true,
		ExitPrice:  fr(999),
		CloseFee:   10,
		PnLAmount:  50,
		IsProfit:   true,
		Settlement: OutputNote{StealthPubX: fr(8), Amount: 1040, Randomness: fr(9)},
	}
	res, err := BuildClosePosition(req)
	require.NoError(t, err)
	require.Equal(t, res.PositionNullifier, req.Position.Nullifier().Bytes())
}

func TestBuildPerpsAddLiquidityBalances(t *testing.T) {
	in := inputNote(500, fr(1))
	req := PerpsAddLiquidityRequest{
		Input:          in,
		PerpsPoolID:    [32]byte{6},
		TokenIndex:     0,
		DepositAmount:  500,
		LPAmountMinted: 500,
		FeeAmount:      0,
		LPOutput:       note.LP{StealthPubX: fr(10), PoolID: fr(11), LPAmount: fr(500), Randomness: fr(12)},
	}
	res, err := BuildPerpsAddLiquidity(req)
	require.NoError(t, err)
	require.Equal(t, res.Nullifier, in.Nullifier().Bytes())
	require.Equal(t, res.LPCommit, req.LPOutput.Commitment().Bytes())
}

func TestBuildPerpsAddLiquidityRejectsUnbalanced(t *testing.T) {
	req := PerpsAddLiquidityRequest{
		Input:         inputNote(500, fr(1)),
		DepositAmount: 400,
	}
	_, err := BuildPerpsAddLiquidity(req)
	require.ErrorIs(t, err, cloakerr.ErrUnbalanced)
}

func TestBuildPerpsRemoveLiquidityHasNoBalanceCheck(t *testing.T) {
	req := PerpsRemoveLiquidityRequest{
		LPInput:        inputNote(0, fr(1)),
		PerpsPoolID:    [32]byte{6},
		TokenMintA:     [32]byte{0xA},
		TokenMintB:     [32]byte{0xB},
		TokenIndex:     1,
		WithdrawAmount: 200,
		LPAmountBurned: 200,
		FeeAmount:      0,
		Output:         OutputNote{StealthPubX: fr(13), Amount: 200, Randomness: fr(14)},
		ChangeLP:       note.LP{StealthPubX: fr(15), PoolID: fr(16), LPAmount: fr(300), Randomness: fr(17)},
	}
	res, err := BuildPerpsRemoveLiquidity(req)
	require.NoError(t, err)
	require.Equal(t, res.LPNullifier, req.LPInput.Nullifier().Bytes())
	require.Equal(t, res.ChangeLPCommit, req.ChangeLP.Commitment().Bytes())
}

func TestBuildPerpsRemoveLiquiditySelectsMintByTokenIndex(t *testing.T) {
	base := PerpsRemoveLiquidityRequest{
		LPInput:        inputNote(0, fr(1)),
		PerpsPoolID:    [32]byte{6},
		TokenMintA:     [32]byte{0xA},
		TokenMintB:     [32]byte{0xB},
		WithdrawAmount: 200,
		LPAmountBurned: 200,
		Output:         OutputNote{StealthPubX: fr(13), Amount: 200, Randomness: fr(14)},
		ChangeLP:       note.LP{StealthPubX: fr(15), PoolID: fr(16), LPAmount: fr(300), Randomness: fr(17)},
	}
	indexA := base
	indexA.TokenIndex = 0
	indexB := base
	indexB.TokenIndex = 1

	resA, err := BuildPerpsRemoveLiquidity(indexA)
	require.NoError(t, err)
	resB, err := BuildPerpsRemoveLiquidity(indexB)
	require.NoError(t, err)
	require.NotEqual(t, resA.OutCommit, resB.OutCommit)
}
