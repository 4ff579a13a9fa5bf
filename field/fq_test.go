package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFqNegSumsToZero(t *testing.T) {
	f := FqFromBigInt(big.NewInt(12345))
	neg := f.Neg()
	sum := new(big.Int).Add(f.BigInt(), neg.BigInt())
	sum.Mod(sum, QModulus())
	require.Equal(t, int64(0), new(big.Int).Mod(sum, QModulus()).Int64())
}

func TestFqBytesRoundTrip(t *testing.T) {
	var b [32]byte
	b[0] = 0x01
	f := FqFromBytes(b[:])
	require.Equal(t, b, f.Bytes())
}
