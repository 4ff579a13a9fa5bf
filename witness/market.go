package witness

import (
	"github.com/craft-ec/cloakcraft-sub003/boundary"
	"github.com/craft-ec/cloakcraft-sub003/domain"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/note"
	"github.com/craft-ec/cloakcraft-sub003/poseidon"
)

// OrderCreateRequest builds the witness for market/order_create: escrow
// an input note behind an order commitment until filled or cancelled.
type OrderCreateRequest struct {
	MerkleRoot           [32]byte
	Input                InputNote
	OrderID              [32]byte
	OfferTokenMint        [32]byte
	OfferAmount           uint64
	AskTokenMint          [32]byte
	AskAmount             uint64
	Escrow                OutputNote
	MakerReceiveStealthPubX field.Fr
	Expiry                uint64
}

// OrderCreateResult carries the precomputed escrow commitment, terms
// hash, and input nullifier.
type OrderCreateResult struct {
	Witness          map[string]boundary.FieldInput
	EscrowCommit     [32]byte
	TermsHash        [32]byte
	Nullifier        [32]byte
}

// BuildOrderCreate assembles the market/order_create witness. TermsHash
// binds the order's economic terms (mints, amounts, expiry) so a filler
// cannot satisfy a different order than the one it inspected; it is
// computed as a domain-separated Poseidon hash, matching the style of
// every other cross-field binding in this engine.
func BuildOrderCreate(req OrderCreateRequest) (OrderCreateResult, error) {
	if err := checkBalance(req.Input.Amount, req.Escrow.Amount); err != nil {
		return OrderCreateResult{}, err
	}
	offerMint := field.ReduceTokenMint(req.OfferTokenMint)
	askMint := field.ReduceTokenMint(req.AskTokenMint)
	escrow := note.Standard{StealthPubX: req.Escrow.StealthPubX, TokenMint: offerMint, Amount: req.Escrow.Amount, Randomness: req.Escrow.Randomness}

	orderID := field.FrFromBytes(req.OrderID[:])
	termsHash := poseidon.HashDomain(domain.Commit, orderID, offerMint, askMint, field.FrFromUint64(req.OfferAmount))
	termsHash = poseidon.Hash(termsHash, field.FrFromUint64(req.AskAmount), field.FrFromUint64(req.Expiry))

	effKey := req.Input.EffectiveSpendingKey()
	nf := req.Input.Nullifier()

	m := map[string]boundary.FieldInput{
		"merkle_root":                boundary.ScalarInput(req.MerkleRoot),
		"nullifier":                   boundary.ScalarInput(nf.Bytes()),
		"order_id":                    boundary.ScalarInput(orderID.Bytes()),
		"escrow_commitment":           boundary.ScalarInput(escrow.Commitment().Bytes()),
		"terms_hash":                  boundary.ScalarInput(termsHash.Bytes()),
		"expiry":                      boundary.ScalarInput(toScalarU64(req.Expiry)),
		"offer_token_mint":            boundary.ScalarInput(offerMint.Bytes()),
		"offer_amount":                boundary.ScalarInput(toScalarU64(req.OfferAmount)),
		"ask_token_mint":              boundary.ScalarInput(askMint.Bytes()),
		"ask_amount":                  boundary.ScalarInput(toScalarU64(req.AskAmount)),
		"escrow_stealth_pub_x":        boundary.ScalarInput(toScalar(req.Escrow.StealthPubX)),
		"escrow_randomness":           boundary.ScalarInput(toScalar(req.Escrow.Randomness)),
		"maker_receive_stealth_pub_x": boundary.ScalarInput(toScalar(req.MakerReceiveStealthPubX)),
	}
	inputFields("in", req.Input, effKey, m)

	logBuilt("market/order_create")
	return OrderCreateResult{
		Witness:      m,
		EscrowCommit: escrow.Commitment().Bytes(),
		TermsHash:    termsHash.Bytes(),
		Nullifier:    nf.Bytes(),
	}, nil
}

// OrderFillRequest builds the witness for market/order_fill: a taker
// spends a note to satisfy an existing maker order.
type OrderFillRequest struct {
	Taker                InputNote
	OrderID               [32]byte
	CurrentTimestamp      uint64
	TakerReceiveStealthPubX field.Fr
	TakerChangeStealthPubX  field.Fr
}

// OrderFillResult carries the precomputed taker nullifier.
type OrderFillResult struct {
	Witness        map[string]boundary.FieldInput
	TakerNullifier [32]byte
}

// BuildOrderFill assembles the market/order_fill witness.
func BuildOrderFill(req OrderFillRequest) (OrderFillResult, error) {
	orderID := field.FrFromBytes(req.OrderID[:])
	effKey := req.Taker.EffectiveSpendingKey()
	nf := req.Taker.Nullifier()

	m := map[string]boundary.FieldInput{
		"taker_nullifier":            boundary.ScalarInput(nf.Bytes()),
		"order_id":                   boundary.ScalarInput(orderID.Bytes()),
		"current_timestamp":          boundary.ScalarInput(toScalarU64(req.CurrentTimestamp)),
		"taker_receive_stealth_pub_x": boundary.ScalarInput(toScalar(req.TakerReceiveStealthPubX)),
		"taker_change_stealth_pub_x":  boundary.ScalarInput(toScalar(req.TakerChangeStealthPubX)),
	}
	inputFields("taker", req.Taker, effKey, m)

	logBuilt("market/order_fill")
	return OrderFillResult{Witness: m, TakerNullifier: nf.Bytes()}, nil
}

// OrderCancelRequest builds the witness for market/order_cancel: the
// maker reclaims its own escrow using the escrow note's spending key
// directly (no stealth indirection — the escrow output was created by
// the maker's own order_create call).
type OrderCancelRequest struct {
	OrderID              [32]byte
	CurrentTimestamp     uint64
	EscrowSpendingKey    field.Fr
	RefundStealthPubX    field.Fr
}

// BuildOrderCancel assembles the market/order_cancel witness.
func BuildOrderCancel(req OrderCancelRequest) map[string]boundary.FieldInput {
	orderID := field.FrFromBytes(req.OrderID[:])
	logBuilt("market/order_cancel")
	return map[string]boundary.FieldInput{
		"order_id":            boundary.ScalarInput(orderID.Bytes()),
		"current_timestamp":   boundary.ScalarInput(toScalarU64(req.CurrentTimestamp)),
		"escrow_spending_key": boundary.ScalarInput(toScalar(req.EscrowSpendingKey)),
		"refund_stealth_pub_x": boundary.ScalarInput(toScalar(req.RefundStealthPubX)),
	}
}
