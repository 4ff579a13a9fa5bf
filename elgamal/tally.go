package elgamal

import (
	"math/big"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/curve"
)

// MaxTallySearch is a suggested bound to pass to NewTallyTable or
// RecoverTallyBSGS. Nothing in this package applies it by default: every
// caller chooses the bound it passes.
const MaxTallySearch = 1 << 20

// TallyTable is a precomputed m·G -> m lookup table for recovering a
// discrete log known to lie in [0, bound). Building it is O(bound);
// once built it answers RecoverTally in O(1).
type TallyTable struct {
	bound int
	index map[curve.Point]uint64
}

// NewTallyTable builds a table covering m in [0, bound).
func NewTallyTable(bound int) *TallyTable {
	t := &TallyTable{bound: bound, index: make(map[curve.Point]uint64, bound)}
	acc := curve.Identity()
	g := curve.Generator()
	for m := 0; m < bound; m++ {
		t.index[acc] = uint64(m)
		acc = acc.Add(g)
	}
	return t
}

// RecoverTally recovers m from m·G using t. The bool is false when point
// falls outside the table's [0, bound) coverage; callers must size the
// table to the election rather than treat a miss as zero votes.
func (t *TallyTable) RecoverTally(point curve.Point) (uint64, bool) {
	m, ok := t.index[point]
	return m, ok
}

// RecoverTallyBSGS recovers m from m·G for m in [0, bound) using
// baby-step/giant-step, trading the table's O(bound) memory for
// O(sqrt(bound)) at a higher constant cost per call. Preferred over a
// full table when bound is large and the recovery happens rarely (a
// final per-option tally rather than a per-ballot operation).
func RecoverTallyBSGS(point curve.Point, bound int) (uint64, error) {
	if bound <= 0 {
		return 0, cloakerr.ErrTallyNotFound
	}
	n := int(new(big.Int).Sqrt(big.NewInt(int64(bound))).Int64()) + 1

	babySteps := make(map[curve.Point]int, n)
	g := curve.Generator()
	acc := curve.Identity()
	for j := 0; j < n; j++ {
		if _, exists := babySteps[acc]; !exists {
			babySteps[acc] = j
		}
		acc = acc.Add(g)
	}

	giantStride := g.Mul(big.NewInt(int64(n))).Neg()
	gamma := point
	for i := 0; i <= n; i++ {
		if j, ok := babySteps[gamma]; ok {
			m := i*n + j
			if m < bound {
				return uint64(m), nil
			}
		}
		gamma = gamma.Add(giantStride)
	}
	return 0, cloakerr.ErrTallyNotFound
}
