// Package elgamal implements threshold ElGamal voting over BabyJubJub:
// ballot encryption, homomorphic tallying, partial-decryption shares,
// Lagrange combination, and Chaum-Pedersen DLEQ proofs of correct
// decryption (spec §4.9).
//
// The DLEQ construction mirrors the Chaum-Pedersen proof vocdoni's
// davinci node ships for the same purpose, adapted to BabyJubJub/Fr and
// to this engine's Poseidon binding instead of its MultiPoseidon helper.
package elgamal

import (
	"crypto/rand"
	"math/big"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/curve"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/poseidon"
)

// Ciphertext is an additively homomorphic ElGamal ciphertext (c1, c2).
type Ciphertext struct {
	C1, C2 curve.Point
}

// Encrypt computes c1 = r·G, c2 = m·G + r·P.
func Encrypt(m uint64, pub curve.Point, r *big.Int) Ciphertext {
	c1 := curve.MulGenerator(r)
	mG := curve.MulGenerator(new(big.Int).SetUint64(m))
	rP := pub.Mul(r)
	return Ciphertext{C1: c1, C2: mG.Add(rP)}
}

// Add homomorphically combines two ciphertexts: (c1_a+c1_b, c2_a+c2_b).
func Add(a, b Ciphertext) Ciphertext {
	return Ciphertext{C1: a.C1.Add(b.C1), C2: a.C2.Add(b.C2)}
}

// Ballot is an encrypted vote: one ciphertext per option, the chosen
// option encrypting power and every other option encrypting 0 (spec §3,
// §4.9 encrypt_vote).
type Ballot []Ciphertext

// EncryptVote builds a Ballot of len(randomness) options, encrypting
// power under randomness[choice] and 0 under every other slot's
// randomness.
func EncryptVote(power uint64, choice int, electionPub curve.Point, randomness []*big.Int) Ballot {
	ballot := make(Ballot, len(randomness))
	for i, r := range randomness {
		m := uint64(0)
		if i == choice {
			m = power
		}
		ballot[i] = Encrypt(m, electionPub, r)
	}
	return ballot
}

// DecryptionShare is one trustee's partial decryption of a single
// ciphertext, sk_share_i · c1, together with the DLEQ proof binding it
// to that trustee's public key share.
type DecryptionShare struct {
	MemberIndex int
	Share       curve.Point
	Proof       DLEQProof
}

// ComputeShare derives sk_share_i · c1 and its accompanying DLEQ proof
// that log_G(pubShare) = log_{ct.C1}(share).
func ComputeShare(memberIndex int, ct Ciphertext, skShare field.Fr, pubShare curve.Point) (DecryptionShare, error) {
	share := ct.C1.Mul(skShare.BigInt())
	proof, err := proveDLEQ(skShare, pubShare, ct.C1, share)
	if err != nil {
		return DecryptionShare{}, err
	}
	return DecryptionShare{MemberIndex: memberIndex, Share: share, Proof: proof}, nil
}

// Lagrange computes the Lagrange coefficient λ_i = ∏_{j∈indices,j≠i}
// j/(j−i) mod order, via the extended-Euclidean modular inverse.
func Lagrange(indices []int, i int, order *big.Int) *big.Int {
	num := big.NewInt(1)
	den := big.NewInt(1)
	bi := big.NewInt(int64(i))
	for _, j := range indices {
		if j == i {
			continue
		}
		bj := big.NewInt(int64(j))
		num.Mul(num, bj)
		num.Mod(num, order)
		diff := new(big.Int).Sub(bj, bi)
		diff.Mod(diff, order)
		den.Mul(den, diff)
		den.Mod(den, order)
	}
	denInv := new(big.Int).ModInverse(den, order)
	lambda := new(big.Int).Mul(num, denInv)
	return lambda.Mod(lambda, order)
}

// Combine reconstructs the plaintext point m·G = c2 − Σ λ_i·D_i from a
// threshold set of shares, verifying each share's DLEQ proof first and
// reporting the offending index via BadShareError if one fails.
func Combine(ct Ciphertext, shares []DecryptionShare, pubShares map[int]curve.Point, order *big.Int) (curve.Point, error) {
	indices := make([]int, len(shares))
	for i, s := range shares {
		indices[i] = s.MemberIndex
	}
	acc := curve.Identity()
	for _, s := range shares {
		pubShare, ok := pubShares[s.MemberIndex]
		if !ok || !verifyDLEQ(pubShare, ct.C1, s.Share, s.Proof) {
			return curve.Point{}, &cloakerr.BadShareError{Index: s.MemberIndex}
		}
		lambda := Lagrange(indices, s.MemberIndex, order)
		acc = acc.Add(s.Share.Mul(lambda))
	}
	return ct.C2.Add(acc.Neg()), nil
}
