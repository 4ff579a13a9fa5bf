package curve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/field"
)

func TestIdentityIsOnCurveAndInSubgroup(t *testing.T) {
	id := Identity()
	require.True(t, id.IsOnCurve())
	require.True(t, id.IsInSubgroup())
}

func TestGeneratorIsOnCurveAndInSubgroup(t *testing.T) {
	g := Generator()
	require.True(t, g.IsOnCurve())
	require.True(t, g.IsInSubgroup())
}

func TestMulByOrderIsIdentity(t *testing.T) {
	g := Generator()
	out := g.Mul(SubgroupOrder)
	require.True(t, out.Equal(Identity()))
}

func TestMulReducesScalarModOrder(t *testing.T) {
	g := Generator()
	k := big.NewInt(7)
	plain := g.Mul(k)
	wrapped := g.Mul(new(big.Int).Add(k, SubgroupOrder))
	require.True(t, plain.Equal(wrapped))
}

func TestAddIsCommutative(t *testing.T) {
	g := Generator()
	a := g.Mul(big.NewInt(3))
	b := g.Mul(big.NewInt(5))
	require.True(t, a.Add(b).Equal(b.Add(a)))
}

func TestNegCancelsOut(t *testing.T) {
	g := Generator()
	sum := g.Add(g.Neg())
	require.True(t, sum.Equal(Identity()))
}

func TestFromCoordinatesRejectsOffCurvePoint(t *testing.T) {
	x := Generator().X()
	bumped := field.FrFromBigInt(new(big.Int).Add(Generator().Y().BigInt(), big.NewInt(1)))
	_, err := FromCoordinates(x, bumped)
	require.ErrorIs(t, err, cloakerr.ErrInvalidPoint)
}

func TestFromCoordinatesAcceptsGenerator(t *testing.T) {
	pt, err := FromCoordinates(Generator().X(), Generator().Y())
	require.NoError(t, err)
	require.True(t, pt.Equal(Generator()))
}
