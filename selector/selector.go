// Package selector picks a covering subset of a wallet's notes for a
// target spend amount, under one of five strategies, and analyses note
// fragmentation to recommend consolidation (spec §4.13).
package selector

import (
	"sort"
	"strconv"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
)

// Strategy names a note-selection heuristic.
type Strategy int

const (
	Greedy Strategy = iota
	Exact
	MinimizeChange
	ConsolidationAware
	SmallestFirst
)

// Note is the minimal shape the selector needs: an amount and an
// opaque handle the caller can use to map selections back to full note
// records.
type Note struct {
	Handle    any
	Amount    uint64
	LeafIndex int64 // -1 marks a virtual (not-yet-created) consolidated note
}

// Result is the outcome of a selection attempt.
type Result struct {
	Notes              []Note
	Total              uint64
	Change             uint64
	CircuitKind        string
	NeedsConsolidation bool
}

// DefaultDustThreshold is the dust cutoff used when a caller has no
// deployment-specific figure of its own.
const DefaultDustThreshold = 1000

// Select picks notes covering target under strategy, subject to
// maxInputs and fee. dustThreshold only affects ConsolidationAware
// (spec §4.13's worked example calls it out per-call, e.g.
// "consolidation_aware with dust_threshold=3"); pass
// DefaultDustThreshold for any other strategy. It never silently fails:
// if no subset of size <= maxInputs covers the target, but a larger one
// would, it returns ErrNeedsConsolidation; if no subset at all
// (regardless of size) would cover it, ErrInsufficientFunds.
func Select(notes []Note, target uint64, strategy Strategy, maxInputs int, fee uint64, dustThreshold uint64) (Result, error) {
	need := target + fee
	switch strategy {
	case Exact:
		return selectExact(notes, need, maxInputs)
	case MinimizeChange:
		return selectMinimizeChange(notes, need, maxInputs)
	case ConsolidationAware:
		return selectConsolidationAware(notes, need, maxInputs, dustThreshold)
	case SmallestFirst:
		return selectAccumulate(notes, need, maxInputs, true)
	default:
		return selectAccumulate(notes, need, maxInputs, false)
	}
}

// selectAccumulate sorts ascending (smallestFirst) or descending
// (greedy) and accumulates until the target is met or maxInputs is
// exhausted.
func selectAccumulate(notes []Note, need uint64, maxInputs int, ascending bool) (Result, error) {
	sorted := append([]Note{}, notes...)
	sort.Slice(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].Amount < sorted[j].Amount
		}
		return sorted[i].Amount > sorted[j].Amount
	})

	var picked []Note
	var total uint64
	for _, n := range sorted {
		if len(picked) >= maxInputs {
			break
		}
		picked = append(picked, n)
		total += n.Amount
		if total >= need {
			return finish(picked, total, need), nil
		}
	}
	return needsMoreOrInsufficient(sorted, need, maxInputs, total)
}

// selectExact looks for a single note matching need exactly, then any
// unordered 2-subset summing exactly, falling back to greedy.
func selectExact(notes []Note, need uint64, maxInputs int) (Result, error) {
	for _, n := range notes {
		if n.Amount == need {
			return finish([]Note{n}, n.Amount, need), nil
		}
	}
	if maxInputs >= 2 {
		for i := 0; i < len(notes); i++ {
			for j := i + 1; j < len(notes); j++ {
				sum := notes[i].Amount + notes[j].Amount
				if sum == need {
					return finish([]Note{notes[i], notes[j]}, sum, need), nil
				}
			}
		}
	}
	return selectAccumulate(notes, need, maxInputs, false)
}

// selectMinimizeChange enumerates 1- and 2-subsets whose sum >= need and
// keeps the one minimising leftover change.
func selectMinimizeChange(notes []Note, need uint64, maxInputs int) (Result, error) {
	var best []Note
	var bestTotal uint64
	haveBest := false

	consider := func(picked []Note, total uint64) {
		if total < need {
			return
		}
		if !haveBest || total-need < bestTotal-need {
			best = picked
			bestTotal = total
			haveBest = true
		}
	}

	for _, n := range notes {
		consider([]Note{n}, n.Amount)
	}
	if maxInputs >= 2 {
		for i := 0; i < len(notes); i++ {
			for j := i + 1; j < len(notes); j++ {
				sum := notes[i].Amount + notes[j].Amount
				consider([]Note{notes[i], notes[j]}, sum)
			}
		}
	}
	if haveBest {
		return finish(best, bestTotal, need), nil
	}
	return selectAccumulate(notes, need, maxInputs, false)
}

// selectConsolidationAware prefers a dust-only covering subset, then
// dust-plus-one-regular, then falls back to greedy.
func selectConsolidationAware(notes []Note, need uint64, maxInputs int, dustThreshold uint64) (Result, error) {
	var dust, regular []Note
	for _, n := range notes {
		if n.Amount < dustThreshold {
			dust = append(dust, n)
		} else {
			regular = append(regular, n)
		}
	}
	sort.Slice(dust, func(i, j int) bool { return dust[i].Amount < dust[j].Amount })

	if picked, total, ok := coverWithin(dust, need, maxInputs); ok {
		return finish(picked, total, need), nil
	}
	if len(regular) > 0 {
		sort.Slice(regular, func(i, j int) bool { return regular[i].Amount < regular[j].Amount })
		for _, r := range regular {
			budget := maxInputs - 1
			if budget < 0 {
				continue
			}
			picked, total, ok := coverWithin(dust, need-minUint64(need, r.Amount), budget)
			total += r.Amount
			if ok || total >= need {
				combined := append(append([]Note{}, picked...), r)
				if total >= need {
					return finish(combined, total, need), nil
				}
			}
		}
	}
	return selectAccumulate(notes, need, maxInputs, false)
}

func coverWithin(sorted []Note, need uint64, maxInputs int) ([]Note, uint64, bool) {
	if maxInputs <= 0 {
		return nil, 0, false
	}
	var picked []Note
	var total uint64
	for _, n := range sorted {
		if len(picked) >= maxInputs {
			break
		}
		picked = append(picked, n)
		total += n.Amount
		if total >= need {
			return picked, total, true
		}
	}
	return picked, total, total >= need
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func finish(picked []Note, total, need uint64) Result {
	return Result{
		Notes:       picked,
		Total:       total,
		Change:      total - need,
		CircuitKind: circuitKind(len(picked), total-need),
	}
}

// circuitKind names the witness-builder shape the chosen notes map to:
// numInputs spent notes against one destination output plus a change
// output when change > 0, matching the "NxM" naming the witness
// builders themselves use (e.g. transfer/1x2, consolidate's 3x1).
func circuitKind(numInputs int, change uint64) string {
	outputs := 1
	if change > 0 {
		outputs = 2
	}
	return strconv.Itoa(numInputs) + "x" + strconv.Itoa(outputs)
}

// needsMoreOrInsufficient distinguishes "no subset within maxInputs
// covers need, but the full note set would" from "not enough funds at
// all" (spec §4.13).
func needsMoreOrInsufficient(notes []Note, need uint64, maxInputs int, partialTotal uint64) (Result, error) {
	var grandTotal uint64
	for _, n := range notes {
		grandTotal += n.Amount
	}
	if grandTotal >= need && len(notes) > maxInputs {
		return Result{NeedsConsolidation: true}, cloakerr.ErrNeedsConsolidation
	}
	return Result{}, cloakerr.ErrInsufficientFunds
}
