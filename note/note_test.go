package note

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craft-ec/cloakcraft-sub003/field"
)

func sampleStandard(t *testing.T) Standard {
	t.Helper()
	r, err := RandomFr()
	require.NoError(t, err)
	return Standard{
		StealthPubX: field.FrFromUint64(11),
		TokenMint:   field.FrFromUint64(22),
		Amount:      1000,
		Randomness:  r,
	}
}

func TestStandardCommitmentDeterministic(t *testing.T) {
	n := sampleStandard(t)
	require.True(t, n.Commitment().Equal(n.Commitment()))
}

func TestStandardCommitmentSensitiveToAmount(t *testing.T) {
	n := sampleStandard(t)
	other := n
	other.Amount++
	require.False(t, n.Commitment().Equal(other.Commitment()))
}

func TestVerifyStandard(t *testing.T) {
	n := sampleStandard(t)
	require.True(t, VerifyStandard(n.Commitment(), n))
	tampered := n
	tampered.Amount++
	require.False(t, VerifyStandard(n.Commitment(), tampered))
}

func TestStandardMarshalRoundTrip(t *testing.T) {
	n := sampleStandard(t)
	got, err := UnmarshalStandard(n.Marshal())
	require.NoError(t, err)
	require.True(t, got.Commitment().Equal(n.Commitment()))
	require.Equal(t, n.Amount, got.Amount)
}

func TestUnmarshalStandardRejectsWrongLength(t *testing.T) {
	_, err := UnmarshalStandard([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestPositionCommitmentSensitiveToDirection(t *testing.T) {
	r, err := RandomFr()
	require.NoError(t, err)
	base := Position{
		StealthPubX: field.FrFromUint64(1),
		MarketID:    field.FrFromUint64(2),
		Margin:      field.FrFromUint64(1000),
		Size:        field.FrFromUint64(5),
		Leverage:    field.FrFromUint64(10),
		EntryPrice:  field.FrFromUint64(2000),
		Randomness:  r,
	}
	long := base
	long.IsLong = true
	short := base
	short.IsLong = false
	require.False(t, long.Commitment().Equal(short.Commitment()))
	require.True(t, VerifyPosition(long.Commitment(), long))
}

func TestLPCommitmentDistinctFromStandard(t *testing.T) {
	r, err := RandomFr()
	require.NoError(t, err)
	lp := LP{
		StealthPubX: field.FrFromUint64(1),
		PoolID:      field.FrFromUint64(2),
		LPAmount:    field.FrFromUint64(500),
		Randomness:  r,
	}
	std := Standard{
		StealthPubX: field.FrFromUint64(1),
		TokenMint:   field.FrFromUint64(2),
		Amount:      500,
		Randomness:  r,
	}
	require.False(t, lp.Commitment().Equal(std.Commitment()))
	require.True(t, VerifyLP(lp.Commitment(), lp))
}

func TestPositionMarshalRoundTrip(t *testing.T) {
	r, err := RandomFr()
	require.NoError(t, err)
	n := Position{
		StealthPubX: field.FrFromUint64(1),
		MarketID:    field.FrFromUint64(2),
		IsLong:      true,
		Margin:      field.FrFromUint64(1000),
		Size:        field.FrFromUint64(5),
		Leverage:    field.FrFromUint64(10),
		EntryPrice:  field.FrFromUint64(2000),
		Randomness:  r,
	}
	got, err := UnmarshalPosition(n.Marshal())
	require.NoError(t, err)
	require.True(t, got.Commitment().Equal(n.Commitment()))
	require.Equal(t, n.IsLong, got.IsLong)
}

func TestUnmarshalPositionRejectsWrongLength(t *testing.T) {
	_, err := UnmarshalPosition([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestLPMarshalRoundTrip(t *testing.T) {
	r, err := RandomFr()
	require.NoError(t, err)
	n := LP{
		StealthPubX: field.FrFromUint64(1),
		PoolID:      field.FrFromUint64(2),
		LPAmount:    field.FrFromUint64(500),
		Randomness:  r,
	}
	got, err := UnmarshalLP(n.Marshal())
	require.NoError(t, err)
	require.True(t, got.Commitment().Equal(n.Commitment()))
}

func TestUnmarshalLPRejectsWrongLength(t *testing.T) {
	_, err := UnmarshalLP([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestPlaintextLengthsAreDistinct(t *testing.T) {
	require.NotEqual(t, StandardPlaintextLen, PositionPlaintextLen)
	require.NotEqual(t, StandardPlaintextLen, LPPlaintextLen)
	require.NotEqual(t, PositionPlaintextLen, LPPlaintextLen)
}
