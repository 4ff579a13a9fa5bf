// Package memory provides in-memory reference implementations of the
// boundary package's five collaborator traits, for use by this module's
// own tests — never a production indexer/relay/prover substitute.
package memory

import (
	"context"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/craft-ec/cloakcraft-sub003/boundary"
)

// CommitmentSource is an in-order, in-memory commitment record feed.
type CommitmentSource struct {
	mu      sync.Mutex
	records []boundary.CommitmentRecord
}

// NewCommitmentSource builds a source pre-loaded with records.
func NewCommitmentSource(records []boundary.CommitmentRecord) *CommitmentSource {
	return &CommitmentSource{records: records}
}

// Append adds a record, simulating a new on-chain entry.
func (s *CommitmentSource) Append(r boundary.CommitmentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

// Stream replays every record whose slot is strictly after sinceCursor.
func (s *CommitmentSource) Stream(ctx context.Context, sinceCursor uint64) (<-chan boundary.CommitmentRecord, <-chan error) {
	out := make(chan boundary.CommitmentRecord)
	errc := make(chan error, 1)
	s.mu.Lock()
	snapshot := append([]boundary.CommitmentRecord{}, s.records...)
	s.mu.Unlock()

	go func() {
		defer close(out)
		defer close(errc)
		for _, r := range snapshot {
			if r.Slot <= sinceCursor {
				continue
			}
			select {
			case out <- r:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

// MerkleProvider serves Merkle proofs registered ahead of time by
// account hash; it does no tree maintenance of its own.
type MerkleProvider struct {
	mu     sync.RWMutex
	proofs map[string]boundary.MerkleProof
}

// NewMerkleProvider builds an empty provider.
func NewMerkleProvider() *MerkleProvider {
	return &MerkleProvider{proofs: make(map[string]boundary.MerkleProof)}
}

// Set registers the proof to serve for accountHash.
func (p *MerkleProvider) Set(accountHash string, proof boundary.MerkleProof) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.proofs[accountHash] = proof
}

// MerkleProof returns the registered proof, or the zero value if none
// was registered.
func (p *MerkleProvider) MerkleProof(ctx context.Context, accountHash string) (boundary.MerkleProof, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.proofs[accountHash], nil
}

// NullifierOracle tracks a set of spent nullifier addresses.
type NullifierOracle struct {
	mu      sync.RWMutex
	spent   map[[32]byte]bool
}

// NewNullifierOracle builds an empty oracle.
func NewNullifierOracle() *NullifierOracle {
	return &NullifierOracle{spent: make(map[[32]byte]bool)}
}

// MarkSpent records addr as spent.
func (o *NullifierOracle) MarkSpent(addr [32]byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spent[addr] = true
}

// BatchExists reports which of addresses are already marked spent.
func (o *NullifierOracle) BatchExists(ctx context.Context, addresses [][32]byte) (map[[32]byte]bool, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[[32]byte]bool, len(addresses))
	for _, a := range addresses {
		if o.spent[a] {
			out[a] = true
		}
	}
	return out, nil
}

// ValidityProvider returns a fixed, caller-supplied validity proof for
// every request.
type ValidityProvider struct {
	Proof boundary.ValidityProof
}

// ValidityProof returns the fixed proof configured on the provider.
func (v *ValidityProvider) ValidityProof(ctx context.Context, newAddresses [][32]byte, existingHashes [][32]byte) (boundary.ValidityProof, error) {
	return v.Proof, nil
}

// ProverBackend returns a fixed, caller-supplied (G1, G2, G1) triple for
// every circuit name, letting tests exercise ProofFormatter without a
// real Groth16 runtime.
type ProverBackend struct {
	A bn254.G1Affine
	B bn254.G2Affine
	C bn254.G1Affine
	Err error
}

// Prove returns the fixed triple configured on the backend, ignoring
// circuitName and inputs.
func (p *ProverBackend) Prove(ctx context.Context, circuitName string, inputs map[string]boundary.FieldInput) (bn254.G1Affine, bn254.G2Affine, bn254.G1Affine, error) {
	if p.Err != nil {
		return bn254.G1Affine{}, bn254.G2Affine{}, bn254.G1Affine{}, p.Err
	}
	return p.A, p.B, p.C, nil
}
