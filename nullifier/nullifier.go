// Package nullifier derives the two nullifier kinds spent notes and
// at-most-once actions publish to prove non-double-use (spec §3, §4.7).
package nullifier

import (
	"github.com/craft-ec/cloakcraft-sub003/domain"
	"github.com/craft-ec/cloakcraft-sub003/field"
	"github.com/craft-ec/cloakcraft-sub003/poseidon"
)

// Spending derives n = Poseidon(DOM_SN, nk, commitment, leaf_index). The
// leaf_index participates so that two notes sharing commitment bytes
// (at different tree positions) never collide.
func Spending(nk, commitment field.Fr, leafIndex uint64) field.Fr {
	return poseidon.HashDomain(domain.SpendNull, nk, commitment, field.FrFromUint64(leafIndex))
}

// Action derives n_a = Poseidon(DOM_AN, nk, commitment, action_domain),
// used for actions (e.g. casting a vote) that mark a note as "used for
// this purpose" without consuming it.
func Action(nk, commitment field.Fr, actionDomain byte) field.Fr {
	return poseidon.HashDomain(domain.ActionNull, nk, commitment, field.FrFromUint64(uint64(actionDomain)))
}
