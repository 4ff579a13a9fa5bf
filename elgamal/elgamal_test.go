package elgamal

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/curve"
	"github.com/craft-ec/cloakcraft-sub003/field"
)

func randScalar(t *testing.T) *big.Int {
	t.Helper()
	b := make([]byte, 32)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return new(big.Int).Mod(new(big.Int).SetBytes(b), curve.SubgroupOrder)
}

// trustee holds one threshold-ElGamal member's share of the election
// secret key, generated by splitting sk into a degree-(t-1) polynomial
// evaluated at each member's index (simple Shamir sharing used only for
// test fixtures, not part of the package itself).
type trustee struct {
	index int
	share field.Fr
	pub   curve.Point
}

// shamirShares builds a (threshold, total) sharing of sk and returns each
// member's share plus the shared election public key.
func shamirShares(t *testing.T, sk *big.Int, threshold, total int) ([]trustee, curve.Point) {
	t.Helper()
	coeffs := make([]*big.Int, threshold)
	coeffs[0] = sk
	for i := 1; i < threshold; i++ {
		coeffs[i] = randScalar(t)
	}
	eval := func(x int64) *big.Int {
		acc := new(big.Int).Set(coeffs[threshold-1])
		for i := threshold - 2; i >= 0; i-- {
			acc.Mul(acc, big.NewInt(x))
			acc.Add(acc, coeffs[i])
			acc.Mod(acc, curve.SubgroupOrder)
		}
		return acc
	}
	trustees := make([]trustee, total)
	for i := 0; i < total; i++ {
		idx := i + 1
		shareScalar := eval(int64(idx))
		shareFr := field.FrFromBigInt(shareScalar)
		trustees[i] = trustee{index: idx, share: shareFr, pub: curve.MulGenerator(shareScalar)}
	}
	return trustees, curve.MulGenerator(sk)
}

func TestEncryptAddIsHomomorphic(t *testing.T) {
	sk := randScalar(t)
	pub := curve.MulGenerator(sk)

	a := Encrypt(3, pub, randScalar(t))
	b := Encrypt(4, pub, randScalar(t))
	sum := Add(a, b)

	// Decrypt with the (non-threshold) secret directly for this check.
	mG := sum.C2.Add(sum.C1.Mul(sk).Neg())
	require.True(t, mG.Equal(curve.MulGenerator(big.NewInt(7))))
}

func TestThresholdCombineRecoversPlaintext(t *testing.T) {
	sk := randScalar(t)
	trustees, electionPub := shamirShares(t, sk, 2, 3)

	ct := Encrypt(5, electionPub, randScalar(t))

	shares := make([]DecryptionShare, 0, 2)
	pubShares := make(map[int]curve.Point, 2)
	for _, tr := range trustees[:2] {
		s, err := ComputeShare(tr.index, ct, tr.share, tr.pub)
		require.NoError(t, err)
		shares = append(shares, s)
		pubShares[tr.index] = tr.pub
	}

	got, err := Combine(ct, shares, pubShares, curve.SubgroupOrder)
	require.NoError(t, err)
	require.True(t, got.Equal(curve.MulGenerator(big.NewInt(5))))
}

func TestCombineRejectsForgedShare(t *testing.T) {
	sk := randScalar(t)
	trustees, electionPub := shamirShares(t, sk, 2, 3)
	ct := Encrypt(5, electionPub, randScalar(t))

	genuine, err := ComputeShare(trustees[0].index, ct, trustees[0].share, trustees[0].pub)
	require.NoError(t, err)

	forged := genuine
	forged.Share = forged.Share.Add(curve.Generator())

	second, err := ComputeShare(trustees[1].index, ct, trustees[1].share, trustees[1].pub)
	require.NoError(t, err)

	pubShares := map[int]curve.Point{
		trustees[0].index: trustees[0].pub,
		trustees[1].index: trustees[1].pub,
	}
	_, err = Combine(ct, []DecryptionShare{forged, second}, pubShares, curve.SubgroupOrder)
	var badShare *cloakerr.BadShareError
	require.ErrorAs(t, err, &badShare)
	require.Equal(t, trustees[0].index, badShare.Index)
}

func TestEncryptVoteOnlyChosenOptionCarriesPower(t *testing.T) {
	sk := randScalar(t)
	pub := curve.MulGenerator(sk)
	randomness := []*big.Int{randScalar(t), randScalar(t), randScalar(t)}

	ballot := EncryptVote(10, 1, pub, randomness)
	require.Len(t, ballot, 3)

	for i, ct := range ballot {
		mG := ct.C2.Add(ct.C1.Mul(sk).Neg())
		if i == 1 {
			require.True(t, mG.Equal(curve.MulGenerator(big.NewInt(10))))
		} else {
			require.True(t, mG.Equal(curve.Identity()))
		}
	}
}

func TestLagrangeCoefficientsReconstructSecret(t *testing.T) {
	sk := randScalar(t)
	trustees, _ := shamirShares(t, sk, 2, 3)
	indices := []int{trustees[0].index, trustees[1].index}

	l0 := Lagrange(indices, trustees[0].index, curve.SubgroupOrder)
	l1 := Lagrange(indices, trustees[1].index, curve.SubgroupOrder)

	recon := new(big.Int).Mul(l0, trustees[0].share.BigInt())
	recon.Add(recon, new(big.Int).Mul(l1, trustees[1].share.BigInt()))
	recon.Mod(recon, curve.SubgroupOrder)
	require.Equal(t, 0, recon.Cmp(sk))
}
