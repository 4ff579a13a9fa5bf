// Package note implements the three note commitment schemes (standard,
// position, LP) and the shared randomness/verification helpers (spec
// §3, §4.6).
package note

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/domain"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/poseidon"
)

// StandardPlaintextLen is the fixed serialized size of a Standard note's
// ECIES plaintext: stealth_pub_x(32) || token_mint(32) || amount(8) ||
// randomness(32) — well under the 170-byte cap spec §3/§5 place on
// standard-note plaintexts.
const StandardPlaintextLen = 32 + 32 + 8 + 32

// Standard is a fungible-token note: the unit spent/created by Shield,
// Transfer, Unshield and every pool operation that moves plain tokens.
type Standard struct {
	StealthPubX field.Fr
	TokenMint   field.Fr
	Amount      uint64
	Randomness  field.Fr
}

// Commitment recomputes c = Poseidon(DOM_COMMIT, stealth_pub_x,
// token_mint, amount, randomness).
func (n Standard) Commitment() field.Fr {
	return poseidon.HashDomain(domain.Commit, n.StealthPubX, n.TokenMint, field.FrFromUint64(n.Amount), n.Randomness)
}

// Position is a perpetual-futures position note with a two-stage
// commitment (spec §3): s1 folds the market-identifying fields, the
// final commitment folds in the mutable position state.
type Position struct {
	StealthPubX field.Fr
	MarketID    field.Fr
	IsLong      bool
	Margin      field.Fr
	Size        field.Fr
	Leverage    field.Fr
	EntryPrice  field.Fr
	Randomness  field.Fr
}

// stage1 folds the identity-establishing fields of a position note.
func (n Position) stage1() field.Fr {
	isLong := field.FrFromUint64(0)
	if n.IsLong {
		isLong = field.FrFromUint64(1)
	}
	return poseidon.HashDomain(domain.Position, n.StealthPubX, n.MarketID, isLong, n.Margin)
}

// Commitment recomputes c = Poseidon(s1, size, leverage, entry_price,
// randomness).
func (n Position) Commitment() field.Fr {
	return poseidon.Hash(n.stage1(), n.Size, n.Leverage, n.EntryPrice, n.Randomness)
}

// LP is a liquidity-provider share note for a swap or perps pool.
type LP struct {
	StealthPubX field.Fr
	PoolID      field.Fr
	LPAmount    field.Fr
	Randomness  field.Fr
}

// Commitment recomputes c = Poseidon(DOM_LP, stealth_pub_x, pool_id,
// lp_amount, randomness).
func (n LP) Commitment() field.Fr {
	return poseidon.HashDomain(domain.LP, n.StealthPubX, n.PoolID, n.LPAmount, n.Randomness)
}

// RandomFr draws 32 bytes from a CSPRNG and reduces modulo p, for use as
// note randomness (spec §4.6).
func RandomFr() (field.Fr, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return field.Fr{}, err
	}
	return field.FrFromBytes(b), nil
}

// Marshal serializes n as the ECIES plaintext payload (spec §3): the
// note never appears on the wire except inside this ciphertext.
func (n Standard) Marshal() []byte {
	out := make([]byte, 0, StandardPlaintextLen)
	sx := n.StealthPubX.Bytes()
	tm := n.TokenMint.Bytes()
	r := n.Randomness.Bytes()
	out = append(out, sx[:]...)
	out = append(out, tm[:]...)
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], n.Amount)
	out = append(out, amt[:]...)
	out = append(out, r[:]...)
	return out
}

// UnmarshalStandard parses the fixed-layout plaintext Marshal produces.
func UnmarshalStandard(b []byte) (Standard, error) {
	if len(b) != StandardPlaintextLen {
		return Standard{}, cloakerr.ErrDecryptFailure
	}
	return Standard{
		StealthPubX: field.FrFromBytes(b[0:32]),
		TokenMint:   field.FrFromBytes(b[32:64]),
		Amount:      binary.BigEndian.Uint64(b[64:72]),
		Randomness:  field.FrFromBytes(b[72:104]),
	}, nil
}

// VerifyStandard reports whether c is the commitment of n.
func VerifyStandard(c field.Fr, n Standard) bool { return c.Equal(n.Commitment()) }

// VerifyPosition reports whether c is the commitment of n.
func VerifyPosition(c field.Fr, n Position) bool { return c.Equal(n.Commitment()) }

// VerifyLP reports whether c is the commitment of n.
func VerifyLP(c field.Fr, n LP) bool { return c.Equal(n.Commitment()) }

// PositionPlaintextLen is Position's fixed ECIES plaintext size:
// stealth_pub_x(32) || market_id(32) || is_long(1) || margin(32) ||
// size(32) || leverage(32) || entry_price(32) || randomness(32). It is
// deliberately a different length than Standard's and LP's so a scanner
// can tell wire formats apart without a leading type tag.
const PositionPlaintextLen = 32 + 32 + 1 + 32 + 32 + 32 + 32 + 32

// Marshal serializes n as the ECIES plaintext payload for a position
// note.
func (n Position) Marshal() []byte {
	out := make([]byte, 0, PositionPlaintextLen)
	sx := n.StealthPubX.Bytes()
	mid := n.MarketID.Bytes()
	margin := n.Margin.Bytes()
	size := n.Size.Bytes()
	lev := n.Leverage.Bytes()
	entry := n.EntryPrice.Bytes()
	r := n.Randomness.Bytes()
	out = append(out, sx[:]...)
	out = append(out, mid[:]...)
	if n.IsLong {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = append(out, margin[:]...)
	out = append(out, size[:]...)
	out = append(out, lev[:]...)
	out = append(out, entry[:]...)
	out = append(out, r[:]...)
	return out
}

// UnmarshalPosition parses the fixed-layout plaintext Position.Marshal
// produces.
func UnmarshalPosition(b []byte) (Position, error) {
	if len(b) != PositionPlaintextLen {
		return Position{}, cloakerr.ErrDecryptFailure
	}
	off := 0
	next := func(n int) []byte {
		s := b[off : off+n]
		off += n
		return s
	}
	sx := field.FrFromBytes(next(32))
	mid := field.FrFromBytes(next(32))
	isLong := next(1)[0] != 0
	margin := field.FrFromBytes(next(32))
	size := field.FrFromBytes(next(32))
	lev := field.FrFromBytes(next(32))
	entry := field.FrFromBytes(next(32))
	r := field.FrFromBytes(next(32))
	return Position{
		StealthPubX: sx,
		MarketID:    mid,
		IsLong:      isLong,
		Margin:      margin,
		Size:        size,
		Leverage:    lev,
		EntryPrice:  entry,
		Randomness:  r,
	}, nil
}

// LPPlaintextLen is LP's fixed ECIES plaintext size: stealth_pub_x(32)
// || pool_id(32) || lp_amount(32) || randomness(32).
const LPPlaintextLen = 32 + 32 + 32 + 32

// Marshal serializes n as the ECIES plaintext payload for an LP share
// note.
func (n LP) Marshal() []byte {
	out := make([]byte, 0, LPPlaintextLen)
	sx := n.StealthPubX.Bytes()
	pid := n.PoolID.Bytes()
	amt := n.LPAmount.Bytes()
	r := n.Randomness.Bytes()
	out = append(out, sx[:]...)
	out = append(out, pid[:]...)
	out = append(out, amt[:]...)
	out = append(out, r[:]...)
	return out
}

// UnmarshalLP parses the fixed-layout plaintext LP.Marshal produces.
func UnmarshalLP(b []byte) (LP, error) {
	if len(b) != LPPlaintextLen {
		return LP{}, cloakerr.ErrDecryptFailure
	}
	return LP{
		StealthPubX: field.FrFromBytes(b[0:32]),
		PoolID:      field.FrFromBytes(b[32:64]),
		LPAmount:    field.FrFromBytes(b[64:96]),
		Randomness:  field.FrFromBytes(b[96:128]),
	}, nil
}
