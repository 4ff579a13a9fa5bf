// Package stealth implements the one-time stealth address protocol used
// to deliver notes without revealing the recipient's long-term public
// key on-chain (spec §4.5).
package stealth

import (
	"crypto/rand"
	"math/big"

	"github.com/craft-ec/cloakcraft-sub003/curve"
	"github.com/craft-ec/cloakcraft-sub003/domain"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/poseidon"
)

// Generated is the output of Generate: the one-time stealth public key,
// the ephemeral pubkey published alongside the note, and the ephemeral
// scalar (kept only long enough to be discarded by the caller).
type Generated struct {
	StealthPubKey curve.Point
	Ephemeral     curve.Point
	ephemeralKey  *big.Int
}

// EphemeralScalar exposes e, needed only by callers building a proof
// that references it directly (none in this engine do today).
func (g Generated) EphemeralScalar() *big.Int { return g.ephemeralKey }

// Generate derives a one-time address for recipient, per spec §4.5:
// sample e ∈ [1, ℓ); E = e·G; S = e·P_recipient; f =
// Poseidon(DOM_STEALTH, S.x); P' = P_recipient + f·G.
//
// recipient MUST already have passed curve.FromCoordinates — this
// protocol assumes the recipient's public key is valid-in-subgroup and
// does not re-check it.
func Generate(recipient curve.Point) (Generated, error) {
	e, err := randScalar()
	if err != nil {
		return Generated{}, err
	}
	E := curve.MulGenerator(e)
	S := recipient.Mul(e)
	f := poseidon.HashDomain(domain.Stealth, S.X())
	stealthPub := recipient.Add(curve.MulGenerator(f.BigInt()))
	return Generated{
		StealthPubKey: stealthPub,
		Ephemeral:     E,
		ephemeralKey:  e,
	}, nil
}

// Scan recovers the one-time spending scalar for an incoming note, given
// the recipient's own sk and the note's published ephemeral pubkey E:
// S = sk·E; f = Poseidon(DOM_STEALTH, S.x); stealth_sk = sk + f (mod ℓ).
func Scan(sk field.Fr, ephemeral curve.Point) field.Fr {
	S := ephemeral.Mul(sk.BigInt())
	f := poseidon.HashDomain(domain.Stealth, S.X())
	sum := new(big.Int).Add(sk.BigInt(), f.BigInt())
	sum.Mod(sum, curve.SubgroupOrder)
	return field.FrFromBigInt(sum)
}

// CheckOwnership reports whether (sk, pub) owns the stealth address
// (stealthPub, ephemeral): it derives stealth_sk via Scan and checks
// stealth_sk·G == stealthPub.
func CheckOwnership(stealthPub, ephemeral curve.Point, sk field.Fr) bool {
	stealthSK := Scan(sk, ephemeral)
	return curve.MulGenerator(stealthSK.BigInt()).Equal(stealthPub)
}

// randScalar samples a uniform scalar in [1, ℓ).
func randScalar() (*big.Int, error) {
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
