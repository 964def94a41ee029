// Package isolation selects a batch of systems to take out of a network.
//
// Systems are ranked by a weighted score that favours the chosen criterion
// (load or priority) and penalises systems touching many interfaces. The top
// of the ranking is the initial batch; a bounded search then slides the batch
// window down the ranking and keeps whichever window leaves the rest of the
// network best connected.
//
// The result is a best-effort heuristic. It is not a min-cut or any kind of
// globally optimal partition, and a different batch may exist that leaves the
// network more connected.
package isolation

import (
	"cmp"
	"slices"

	"github.com/dd0wney/cluso-isolate/pkg/network"
)

// MaxAlternativeWindows bounds the stability search
const MaxAlternativeWindows = 5

// Ranked is a system with the values it was ranked by
type Ranked struct {
	System *network.System `json:"system"`
	Impact int             `json:"impact"`
	Score  float64         `json:"score"`
}

// Result describes one isolation decision
type Result struct {
	Criterion        Criterion         `json:"criterion"`
	BatchSize        int               `json:"batchSize"`
	Batch            []*network.System `json:"batch"`
	Ranking          []Ranked          `json:"ranking"`
	InitialStability float64           `json:"initialStability"`
	Stability        float64           `json:"stability"`
	WindowStart      int               `json:"windowStart"`
	WindowsEvaluated int               `json:"windowsEvaluated"`
}

// Improved reports whether the search moved away from the initial batch
func (r *Result) Improved() bool {
	return r.WindowStart != 0
}

// BatchIDs returns the ids of the selected systems in batch order
func (r *Result) BatchIDs() []string {
	ids := make([]string, len(r.Batch))
	for i, s := range r.Batch {
		ids[i] = s.ID
	}
	return ids
}

// IsolateBatch returns min(batchSize, len(systems)) systems chosen for
// isolation. The returned pointers alias the input; nothing is copied or
// modified.
func IsolateBatch(systems []*network.System, connectors []*network.Connector, interfaces []*network.Interface, batchSize int, criterion Criterion) []*network.System {
	return Evaluate(systems, connectors, interfaces, batchSize, criterion).Batch
}

// Evaluate runs the isolation heuristic and returns the full decision
func Evaluate(systems []*network.System, connectors []*network.Connector, interfaces []*network.Interface, batchSize int, criterion Criterion) *Result {
	idx := network.NewIndex(systems, connectors, interfaces)
	impacts := make(map[string]int, len(systems))
	for _, s := range systems {
		impacts[s.ID] = Impact(idx, s.ID)
	}

	ranking := rank(systems, impacts, criterion)
	size := min(max(batchSize, 0), len(ranking))

	result := &Result{
		Criterion: criterion,
		BatchSize: batchSize,
		Ranking:   ranking,
		Batch:     window(ranking, 0, size),
	}
	result.InitialStability = Stability(result.Batch, systems, impacts)
	result.Stability = result.InitialStability

	if size == 0 {
		return result
	}

	// Window ends run from batchSize up to five further positions.
	last := min(batchSize+MaxAlternativeWindows, len(ranking))
	for end := batchSize; end < last; end++ {
		start := end - batchSize
		candidate := window(ranking, start, end)
		stability := Stability(candidate, systems, impacts)
		result.WindowsEvaluated++

		if stability > result.Stability {
			result.Stability = stability
			result.Batch = candidate
			result.WindowStart = start
		}
	}

	return result
}

// rank orders systems by descending score. Equal scores fall back to the
// criterion value, then to input order.
func rank(systems []*network.System, impacts map[string]int, criterion Criterion) []Ranked {
	ranking := make([]Ranked, len(systems))
	for i, s := range systems {
		impact := impacts[s.ID]
		ranking[i] = Ranked{System: s, Impact: impact, Score: WeightedScore(s, impact, criterion)}
	}
	slices.SortStableFunc(ranking, func(a, b Ranked) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(criterion.Value(b.System), criterion.Value(a.System))
	})
	return ranking
}

func window(ranking []Ranked, start, end int) []*network.System {
	batch := make([]*network.System, 0, end-start)
	for _, r := range ranking[start:end] {
		batch = append(batch, r.System)
	}
	return batch
}
