package poseidon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craft-ec/cloakcraft-sub003/field"
)

func TestHashIsDeterministic(t *testing.T) {
	a := field.FrFromUint64(1)
	b := field.FrFromUint64(2)
	h1 := Hash(a, b)
	h2 := Hash(a, b)
	require.True(t, h1.Equal(h2))
}

func TestHashDistinguishesInputOrder(t *testing.T) {
	a := field.FrFromUint64(1)
	b := field.FrFromUint64(2)
	require.False(t, Hash(a, b).Equal(Hash(b, a)))
}

func TestHashDistinguishesArity(t *testing.T) {
	a := field.FrFromUint64(1)
	require.False(t, Hash(a).Equal(Hash(a, field.FrFromUint64(0))))
}

func TestHashPanicsOnTooManyInputs(t *testing.T) {
	inputs := make([]field.Fr, 6)
	for i := range inputs {
		inputs[i] = field.FrFromUint64(uint64(i))
	}
	require.Panics(t, func() { Hash(inputs...) })
}

func TestHashDomainPrependsDomain(t *testing.T) {
	a := field.FrFromUint64(9)
	got := HashDomain(0x05, a)
	want := Hash(field.FrFromUint64(5), a)
	require.True(t, got.Equal(want))
}

func TestHashDomainDistinguishesDomains(t *testing.T) {
	a := field.FrFromUint64(9)
	require.False(t, HashDomain(0x01, a).Equal(HashDomain(0x02, a)))
}
