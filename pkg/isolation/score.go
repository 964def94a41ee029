package isolation

import "github.com/dd0wney/cluso-isolate/pkg/network"

const (
	// CriterionWeight is the share of the score taken by the criterion value
	CriterionWeight = 0.7
	// ImpactWeight is the share taken by the network-impact term
	ImpactWeight = 0.3
	// impactScale converts an interface count into the 0-100 range of the impact term
	impactScale = 10
	impactBase  = 100
)

// Impact is the number of distinct interfaces reachable through the
// connectors owned by systemID.
func Impact(idx *network.Index, systemID string) int {
	return len(idx.InterfacesOf(systemID))
}

// WeightedScore blends the criterion value with a penalty for highly
// connected systems. The impact term goes negative above ten interfaces and
// is left unclamped.
func WeightedScore(s *network.System, impact int, c Criterion) float64 {
	return c.Value(s)*CriterionWeight + float64(impactBase-impact*impactScale)*ImpactWeight
}

// Stability is the mean impact of the systems not in selected. It is 0 when
// nothing remains.
func Stability(selected, all []*network.System, impacts map[string]int) float64 {
	excluded := make(map[string]bool, len(selected))
	for _, s := range selected {
		excluded[s.ID] = true
	}

	total, remaining := 0, 0
	for _, s := range all {
		if excluded[s.ID] {
			continue
		}
		total += impacts[s.ID]
		remaining++
	}
	if remaining == 0 {
		return 0
	}
	return float64(total) / float64(remaining)
}
