package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
)

func TestFrFromBytesRoundTrip(t *testing.T) {
	var b [32]byte
	b[31] = 0x2a
	f := FrFromBytes(b[:])
	require.Equal(t, b, f.Bytes())
}

func TestFrFromBytesStrictRejectsNonCanonical(t *testing.T) {
	modulus := Modulus().Bytes()
	_, err := FrFromBytesStrict(modulus)
	require.ErrorIs(t, err, cloakerr.ErrNotCanonical)
}

func TestFrFromBytesStrictAcceptsZero(t *testing.T) {
	var zero [32]byte
	f, err := FrFromBytesStrict(zero[:])
	require.NoError(t, err)
	require.True(t, f.IsZero())
}

func TestFrEqual(t *testing.T) {
	a := FrFromUint64(7)
	b := FrFromUint64(7)
	c := FrFromUint64(8)
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestFrFromBigIntReducesModulo(t *testing.T) {
	over := new(big.Int).Add(Modulus(), big.NewInt(5))
	f := FrFromBigInt(over)
	require.Equal(t, FrFromUint64(5).Bytes(), f.Bytes())
}

func TestReduceTokenMintWithinRange(t *testing.T) {
	var mint [32]byte
	for i := range mint {
		mint[i] = 0x11
	}
	reduced := ReduceTokenMint(mint)
	require.True(t, reduced.BigInt().Cmp(Modulus()) < 0)
}

func TestReduceTokenMintIsDeterministic(t *testing.T) {
	var mint [32]byte
	mint[0] = 0xff
	a := ReduceTokenMint(mint)
	b := ReduceTokenMint(mint)
	require.True(t, a.Equal(b))
}
