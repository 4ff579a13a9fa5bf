// Package scanner walks an external commitment stream, recovers owned
// notes via ECIES decryption, cross-checks the recomputed commitment,
// and tags spent state via batched nullifier queries (spec §4.12).
//
// The restartable-cursor, append-and-membership-check shape follows the
// teacher's Ledger (CmList/SnList plus HasSerialNumber/HasCommitment),
// generalized from an append-only JSON-backed ledger to an in-memory,
// explicitly-cleared cache keyed by viewing-key fingerprint.
package scanner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/craft-ec/cloakcraft-sub003/boundary"
	"github.com/craft-ec/cloakcraft-sub003/ecies"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/internal/obslog"
	"github.com/craft-ec/cloakcraft-sub003/note"
	"github.com/craft-ec/cloakcraft-sub003/nullifier"
)

// Kind identifies which of the three note commitment schemes an
// OwnedNote carries (spec §4.12 step 2 covers all three, not just
// Standard).
type Kind int

const (
	KindStandard Kind = iota
	KindPosition
	KindLP
)

// OwnedNote is a decrypted, commitment-verified note belonging to the
// scanning wallet, tagged with its chain position and spent state.
// Exactly one of Note/Position/LP is populated, selected by Kind.
type OwnedNote struct {
	Commitment  [32]byte
	LeafIndex   uint64
	PoolID      [32]byte
	AccountHash string
	Slot        uint64
	Kind        Kind
	Note        note.Standard
	Position    note.Position
	LP          note.LP
	Spent       bool
}

// cacheKey combines the viewing-key fingerprint with the commitment hex,
// per spec §4.12's cache keying.
type cacheKey struct {
	fingerprint string
	commitment  string
}

// Scanner decrypts a wallet's notes from a commitment stream. It is not
// safe for concurrent use by more than one goroutine — spec §5 assigns
// one scanner instance per wallet and requires explicit sharding by the
// caller if scans are parallelised.
type Scanner struct {
	viewingSK    field.Fr
	nullifierKey field.Fr
	source       boundary.CommitmentSource
	oracle       boundary.NullifierOracle

	fingerprint string
	cache       map[cacheKey]OwnedNote
	sinceSlot   uint64
	log         *obslog.Logger
}

// New builds a scanner for one wallet's viewing key. Each scanner
// instance is tagged with a fresh correlation id so multi-scan logs
// (one wallet, many restarts) can be grouped by a caller's log
// aggregator.
func New(viewingSK field.Fr, nullifierKey field.Fr, source boundary.CommitmentSource, oracle boundary.NullifierOracle) *Scanner {
	b := viewingSK.Bytes()
	sum := sha256.Sum256(b[:])
	return &Scanner{
		viewingSK:    viewingSK,
		nullifierKey: nullifierKey,
		source:       source,
		oracle:       oracle,
		fingerprint:  hex.EncodeToString(sum[:]),
		cache:        make(map[cacheKey]OwnedNote),
		log:          obslog.Default().With("scan_session", uuid.NewString()),
	}
}

// SinceSlot returns the scanner's restart cursor.
func (s *Scanner) SinceSlot() uint64 { return s.sinceSlot }

// Clear invalidates the entire note cache, per spec §4.12 step 5.
func (s *Scanner) Clear() {
	s.cache = make(map[cacheKey]OwnedNote)
}

// Scan streams records since the scanner's cursor, attempts decryption
// of each, verifies the recomputed commitment, batches a nullifier
// existence query for every note recovered this pass, and updates the
// cache and cursor. It never fails on a per-record decrypt or
// commitment-mismatch error — only transport-level errors from the
// commitment source or nullifier oracle are returned.
func (s *Scanner) Scan(ctx context.Context) ([]OwnedNote, error) {
	records, errc := s.source.Stream(ctx, s.sinceSlot)

	var recovered []OwnedNote
	for rec := range records {
		on, ok := s.tryRecover(rec)
		if !ok {
			continue
		}
		recovered = append(recovered, on)
		if rec.Slot > s.sinceSlot {
			s.sinceSlot = rec.Slot
		}
	}
	if err := <-errc; err != nil {
		return nil, err
	}

	s.log.Debug().Int("recovered", len(recovered)).Uint64("since_slot", s.sinceSlot).Msg("scan pass complete")

	if len(recovered) == 0 {
		return nil, nil
	}

	addrs := make([][32]byte, len(recovered))
	for i, on := range recovered {
		n := nullifier.Spending(s.nullifierKey, field.FrFromBytes(on.Commitment[:]), on.LeafIndex)
		addrs[i] = n.Bytes()
	}
	spent, err := s.oracle.BatchExists(ctx, addrs)
	if err != nil {
		return nil, err
	}
	for i := range recovered {
		recovered[i].Spent = spent[addrs[i]]
		key := cacheKey{fingerprint: s.fingerprint, commitment: hex.EncodeToString(recovered[i].Commitment[:])}
		s.cache[key] = recovered[i]
	}
	return recovered, nil
}

// tryRecover attempts to decrypt rec and verify its commitment. It
// returns ok=false (never an error) on any decrypt/format/mismatch
// failure — scanning tries every ciphertext and silently skips the ones
// that aren't addressed to this wallet (spec §4.12 step 2). The
// plaintext's length identifies which of the three note schemes it
// encodes, since Standard/Position/LP each serialize to a distinct
// fixed size.
func (s *Scanner) tryRecover(rec boundary.CommitmentRecord) (OwnedNote, bool) {
	enc, err := ecies.Unmarshal(rec.EncryptedNote)
	if err != nil {
		return OwnedNote{}, false
	}
	plaintext, ok := ecies.TryDecrypt(s.viewingSK.BigInt(), enc)
	if !ok {
		return OwnedNote{}, false
	}

	base := OwnedNote{
		Commitment:  rec.Commitment,
		LeafIndex:   rec.LeafIndex,
		PoolID:      rec.PoolID,
		AccountHash: rec.AccountHash,
		Slot:        rec.Slot,
	}
	want := field.FrFromBytes(rec.Commitment[:])

	switch len(plaintext) {
	case note.StandardPlaintextLen:
		n, err := note.UnmarshalStandard(plaintext)
		if err != nil || !n.Commitment().Equal(want) {
			return OwnedNote{}, false
		}
		base.Kind = KindStandard
		base.Note = n
		return base, true
	case note.LPPlaintextLen:
		n, err := note.UnmarshalLP(plaintext)
		if err != nil || !n.Commitment().Equal(want) {
			return OwnedNote{}, false
		}
		base.Kind = KindLP
		base.LP = n
		return base, true
	case note.PositionPlaintextLen:
		n, err := note.UnmarshalPosition(plaintext)
		if err != nil || !n.Commitment().Equal(want) {
			return OwnedNote{}, false
		}
		base.Kind = KindPosition
		base.Position = n
		return base, true
	default:
		return OwnedNote{}, false
	}
}
