package analysis

import (
	"github.com/dd0wney/cluso-isolate/pkg/network"
)

// Assessment compares the peer graph before and after removing a batch
type Assessment struct {
	Isolated         []string `json:"isolated"`
	ComponentsBefore int      `json:"componentsBefore"`
	ComponentsAfter  int      `json:"componentsAfter"`
	LargestBefore    int      `json:"largestBefore"`
	LargestAfter     int      `json:"largestAfter"`

	// ComponentsSurviving counts the original components that keep at least
	// one system after the batch is removed
	ComponentsSurviving int `json:"componentsSurviving"`

	// Stranded lists remaining systems that reach no interface at all
	Stranded []string `json:"stranded"`
}

// Fragmented reports whether some original component split apart. Fully
// isolated components are discounted so they cannot mask a split elsewhere.
func (a *Assessment) Fragmented() bool {
	return a.ComponentsAfter > a.ComponentsSurviving
}

// AssessIsolation measures the effect of removing batch from n
func AssessIsolation(n *network.Network, batch []*network.System) *Assessment {
	excluded := make(map[string]bool, len(batch))
	isolated := make([]string, 0, len(batch))
	for _, s := range batch {
		excluded[s.ID] = true
		isolated = append(isolated, s.ID)
	}

	before := ConnectedComponents(n, nil)
	after := ConnectedComponents(n, excluded)

	idx := network.IndexNetwork(n)
	stranded := make([]string, 0)
	surviving := make(map[int]bool)
	for _, s := range n.Systems {
		if excluded[s.ID] {
			continue
		}
		surviving[before.SystemComponent[s.ID]] = true
		if len(idx.InterfacesOf(s.ID)) == 0 {
			stranded = append(stranded, s.ID)
		}
	}

	return &Assessment{
		Isolated:            isolated,
		ComponentsBefore:    len(before.Components),
		ComponentsAfter:     len(after.Components),
		ComponentsSurviving: len(surviving),
		LargestBefore:       before.Largest(),
		LargestAfter:        after.Largest(),
		Stranded:            stranded,
	}
}
