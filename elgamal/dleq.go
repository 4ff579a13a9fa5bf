package elgamal

import (
	"crypto/rand"
	"math/big"

	"github.com/craft-ec/cloakcraft-sub003/curve"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/poseidon"
)

// DLEQProof is a non-interactive Chaum-Pedersen proof that log_G(P) =
// log_{c1}(D), binding a trustee's decryption share to its public key
// share without revealing the share's scalar (spec §4.9).
type DLEQProof struct {
	A, B curve.Point
	S    field.Fr
}

// proveDLEQ proves that pubShare = skShare·G and share = skShare·c1, for
// the prover that actually holds skShare.
func proveDLEQ(skShare field.Fr, pubShare, c1, share curve.Point) (DLEQProof, error) {
	k, err := randSubgroupScalar()
	if err != nil {
		return DLEQProof{}, err
	}
	A := curve.MulGenerator(k)
	B := c1.Mul(k)
	c := challenge(pubShare, c1, share, A, B)

	s := new(big.Int).Mul(c.BigInt(), skShare.BigInt())
	s.Add(s, k)
	s.Mod(s, curve.SubgroupOrder)

	return DLEQProof{A: A, B: B, S: field.FrFromBigInt(s)}, nil
}

// verifyDLEQ recomputes A' = s·G − c·P and B' = s·c1 − c·D from the
// verification equations and checks both match the A/B carried in the
// proof, using the challenge derived from the proof's own A/B.
func verifyDLEQ(pubShare, c1, share curve.Point, proof DLEQProof) bool {
	c := challenge(pubShare, c1, share, proof.A, proof.B)

	sG := curve.MulGenerator(proof.S.BigInt())
	cP := pubShare.Mul(c.BigInt())
	aPrime := sG.Add(cP.Neg())

	sC1 := c1.Mul(proof.S.BigInt())
	cD := share.Mul(c.BigInt())
	bPrime := sC1.Add(cD.Neg())

	return aPrime.Equal(proof.A) && bPrime.Equal(proof.B)
}

// challenge computes c = H(G, P, c1, D, A, B) as a Poseidon hash over
// the concatenated x-coordinates, per spec §4.9. Poseidon here takes at
// most 5 elements per call, so the six x-coordinates are folded in two
// stages: the four public values (G, P, c1, D) first, then the
// commitment pair chained onto that digest.
func challenge(pubShare, c1, D, A, B curve.Point) field.Fr {
	g := curve.Generator()
	h1 := poseidon.Hash(g.X(), pubShare.X(), c1.X(), D.X())
	return poseidon.Hash(h1, A.X(), B.X())
}

func randSubgroupScalar() (*big.Int, error) {
	for {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, err
		}
		v := new(big.Int).Mod(new(big.Int).SetBytes(b), curve.SubgroupOrder)
		if v.Sign() != 0 {
			return v, nil
		}
	}
}
