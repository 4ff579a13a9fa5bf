// Package keys implements wallet lifecycle and key derivation (spec
// §4.4): spending key sampling/loading, watch-only construction, and the
// two deterministic derivation paths (from a host-chain signature, from
// a BIP39-style seed phrase) that let a wallet be recreated without
// persisting sk anywhere.
package keys

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/pbkdf2"
	"crypto/sha256"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/curve"
	"github.com/craft-ec/cloakcraft-sub003/domain"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/poseidon"
)

// walletSignMessage is the fixed ASCII message a host-chain wallet signs
// to deterministically derive a spending key (spec §4.4).
const walletSignMessage = "CloakCraft Stealth Wallet v1"

// pbkdf2Iterations is from_seed's PBKDF2 iteration count; the salt
// ("cloakcraft" || path) is built in FromSeed.
const pbkdf2Iterations = 100_000

// Wallet holds a spending key and its derived viewing material. A
// watch-only wallet has a zero sk and cannot produce nullifiers that
// depend on nk being kept secret from the holder, but CAN still derive
// nk/ivk because those were supplied directly at construction.
type Wallet struct {
	sk   field.Fr
	nk   field.Fr
	ivk  field.Fr
	pub  curve.Point
	spendable bool
}

// SigningMessage returns the fixed message FromSignature expects a
// signature over.
func SigningMessage() string { return walletSignMessage }

// Create samples a fresh spending key uniformly from [0, ℓ) and rejects
// the all-zero key, then derives the rest of the wallet.
func Create() (Wallet, error) {
	for {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return Wallet{}, err
		}
		sk := new(big.Int).Mod(new(big.Int).SetBytes(b), curve.SubgroupOrder)
		if sk.Sign() == 0 {
			continue
		}
		return fromScalar(sk), nil
	}
}

// Load reconstructs a wallet from raw spending-key bytes, failing with
// ErrInvalidSpendingKey if sk is zero or not canonically below ℓ.
func Load(skBytes []byte) (Wallet, error) {
	sk := new(big.Int).SetBytes(skBytes)
	if sk.Sign() == 0 || sk.Cmp(curve.SubgroupOrder) >= 0 {
		return Wallet{}, cloakerr.ErrInvalidSpendingKey
	}
	return fromScalar(sk), nil
}

// WatchOnly constructs a no-spend wallet whose sk is all-zero but whose
// (nk, ivk, P) are authentic, caller-supplied values — spec §4.4.
func WatchOnly(nk, ivk field.Fr, pub curve.Point) Wallet {
	return Wallet{
		nk:  nk,
		ivk: ivk,
		pub: pub,
	}
}

// FromSignature derives sk deterministically from a ≥64-byte host-chain
// signature over SigningMessage(): sk = Poseidon(DOM_WALLET_DERIVE,
// sig[0:32], sig[32:64]) mod ℓ.
func FromSignature(sig []byte) (Wallet, error) {
	if len(sig) < 64 {
		return Wallet{}, cloakerr.ErrInvalidSpendingKey
	}
	a := field.FrFromBytes(sig[0:32])
	b := field.FrFromBytes(sig[32:64])
	h := poseidon.HashDomain(domain.WalletDerive, a, b)
	sk := new(big.Int).Mod(h.BigInt(), curve.SubgroupOrder)
	if sk.Sign() == 0 {
		return Wallet{}, cloakerr.ErrInvalidSpendingKey
	}
	return fromScalar(sk), nil
}

// FromSeed derives sk via PBKDF2-HMAC-SHA256 (100 000 iterations, 256-bit
// output) over phrase, salted with "cloakcraft" || path, then reduces mod
// ℓ — spec §4.4.
func FromSeed(phrase, path string) (Wallet, error) {
	salt := append([]byte("cloakcraft"), []byte(path)...)
	raw := pbkdf2.Key([]byte(phrase), salt, pbkdf2Iterations, 32, sha256.New)
	sk := new(big.Int).Mod(new(big.Int).SetBytes(raw), curve.SubgroupOrder)
	if sk.Sign() == 0 {
		return Wallet{}, cloakerr.ErrInvalidSpendingKey
	}
	return fromScalar(sk), nil
}

func fromScalar(sk *big.Int) Wallet {
	skFr := field.FrFromBigInt(sk)
	nk := poseidon.HashDomain(domain.NullifierKey, skFr, field.FrFromUint64(0))
	ivk := poseidon.HashDomain(domain.IVK, skFr)
	pub := curve.MulGenerator(sk)
	return Wallet{
		sk:        skFr,
		nk:        nk,
		ivk:       ivk,
		pub:       pub,
		spendable: true,
	}
}

// SpendingKey returns sk. Zero for a watch-only wallet.
func (w Wallet) SpendingKey() field.Fr { return w.sk }

// NullifierKey returns nk.
func (w Wallet) NullifierKey() field.Fr { return w.nk }

// IncomingViewingKey returns ivk.
func (w Wallet) IncomingViewingKey() field.Fr { return w.ivk }

// PublicKey returns P = sk·G.
func (w Wallet) PublicKey() curve.Point { return w.pub }

// CanSpend reports whether this wallet holds a real spending key.
func (w Wallet) CanSpend() bool { return w.spendable }
