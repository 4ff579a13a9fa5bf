package stealth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craft-ec/cloakcraft-sub003/keys"
)

func TestGenerateThenScanRecoversStealthKey(t *testing.T) {
	recipient, err := keys.Create()
	require.NoError(t, err)

	gen, err := Generate(recipient.PublicKey())
	require.NoError(t, err)

	require.True(t, CheckOwnership(gen.StealthPubKey, gen.Ephemeral, recipient.SpendingKey()))
}

func TestCheckOwnershipRejectsWrongKey(t *testing.T) {
	recipient, err := keys.Create()
	require.NoError(t, err)
	other, err := keys.Create()
	require.NoError(t, err)

	gen, err := Generate(recipient.PublicKey())
	require.NoError(t, err)

	require.False(t, CheckOwnership(gen.StealthPubKey, gen.Ephemeral, other.SpendingKey()))
}

func TestGenerateProducesFreshEphemeralEachCall(t *testing.T) {
	recipient, err := keys.Create()
	require.NoError(t, err)

	a, err := Generate(recipient.PublicKey())
	require.NoError(t, err)
	b, err := Generate(recipient.PublicKey())
	require.NoError(t, err)

	require.False(t, a.Ephemeral.Equal(b.Ephemeral))
	require.False(t, a.StealthPubKey.Equal(b.StealthPubKey))
}
