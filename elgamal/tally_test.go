package elgamal

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/curve"
)

func TestTallyTableRecoversSmallCounts(t *testing.T) {
	table := NewTallyTable(64)
	point := curve.MulGenerator(big.NewInt(41))
	got, ok := table.RecoverTally(point)
	require.True(t, ok)
	require.Equal(t, uint64(41), got)
}

func TestTallyTableMissOutsideBound(t *testing.T) {
	table := NewTallyTable(10)
	point := curve.MulGenerator(big.NewInt(41))
	_, ok := table.RecoverTally(point)
	require.False(t, ok)
}

func TestRecoverTallyBSGSMatchesTable(t *testing.T) {
	point := curve.MulGenerator(big.NewInt(777))
	got, err := RecoverTallyBSGS(point, 2000)
	require.NoError(t, err)
	require.Equal(t, uint64(777), got)
}

func TestRecoverTallyBSGSFailsOutsideBound(t *testing.T) {
	point := curve.MulGenerator(big.NewInt(5000))
	_, err := RecoverTallyBSGS(point, 100)
	require.ErrorIs(t, err, cloakerr.ErrTallyNotFound)
}

func TestRecoverTallyBSGSRejectsNonPositiveBound(t *testing.T) {
	point := curve.MulGenerator(big.NewInt(1))
	_, err := RecoverTallyBSGS(point, 0)
	require.ErrorIs(t, err, cloakerr.ErrTallyNotFound)
}

func TestRecoverTallyBSGSErrorIsDistinctFromInsufficientFunds(t *testing.T) {
	point := curve.MulGenerator(big.NewInt(5000))
	_, err := RecoverTallyBSGS(point, 100)
	require.NotErrorIs(t, err, cloakerr.ErrInsufficientFunds)
}
