package selector

// FragmentationReport summarises how split up a wallet's note set is,
// per spec §4.13.
type FragmentationReport struct {
	TotalNotes        int
	DustNotes         int
	Largest           uint64
	Smallest          uint64
	Total             uint64
	Score             int
	ShouldConsolidate bool
}

// Analyze computes a FragmentationReport over notes, classifying any
// note under dustThreshold as dust (spec §4.13).
func Analyze(notes []Note, dustThreshold uint64) FragmentationReport {
	if len(notes) == 0 {
		return FragmentationReport{}
	}
	var total uint64
	dust := 0
	largest := notes[0].Amount
	smallest := notes[0].Amount
	for _, n := range notes {
		total += n.Amount
		if n.Amount < dustThreshold {
			dust++
		}
		if n.Amount > largest {
			largest = n.Amount
		}
		if n.Amount < smallest {
			smallest = n.Amount
		}
	}
	n := len(notes)

	nRatio := float64(n) / 10
	if nRatio > 1 {
		nRatio = 1
	}
	dustRatio := float64(dust) / float64(n)
	var largestRatio float64
	if total > 0 {
		largestRatio = float64(largest) / float64(total)
	}
	score := 40*nRatio + 30*dustRatio + 30*(1-largestRatio)
	clamped := clampScore(score)

	return FragmentationReport{
		TotalNotes:        n,
		DustNotes:         dust,
		Largest:           largest,
		Smallest:          smallest,
		Total:             total,
		Score:             clamped,
		ShouldConsolidate: n > 5 || dust > 2 || clamped > 50,
	}
}

func clampScore(score float64) int {
	rounded := int(score + 0.5)
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// ConsolidationBatch is one group of at most three notes to fold into a
// single consolidated output, plus the virtual note representing that
// output for the purposes of sizing the next batch.
type ConsolidationBatch struct {
	Inputs    []Note
	Output    Note
}

const maxConsolidationInputs = 3

// PlanConsolidation groups notes into batches of at most three inputs
// each, chaining each batch's output forward as a virtual input
// (leaf_index = -1) for sizing the next batch, per spec §4.13.
func PlanConsolidation(notes []Note) []ConsolidationBatch {
	pending := append([]Note{}, notes...)
	var batches []ConsolidationBatch

	for len(pending) > 1 {
		n := maxConsolidationInputs
		if n > len(pending) {
			n = len(pending)
		}
		batch := pending[:n]
		pending = pending[n:]

		var total uint64
		for _, b := range batch {
			total += b.Amount
		}
		virtual := Note{Amount: total, LeafIndex: -1}
		batches = append(batches, ConsolidationBatch{Inputs: append([]Note{}, batch...), Output: virtual})
		pending = append(pending, virtual)
	}
	return batches
}
