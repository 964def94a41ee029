package analysis

import (
	"container/list"

	"github.com/dd0wney/cluso-isolate/pkg/network"
)

// Component is a maximal set of mutually reachable systems
type Component struct {
	ID      int      `json:"id"`
	Systems []string `json:"systems"`
	Size    int      `json:"size"`
}

// ComponentsResult contains the components of the peer graph
type ComponentsResult struct {
	Components      []*Component   `json:"components"`
	SystemComponent map[string]int `json:"systemComponent"`
}

// Largest returns the size of the biggest component, or 0
func (r *ComponentsResult) Largest() int {
	largest := 0
	for _, c := range r.Components {
		largest = max(largest, c.Size)
	}
	return largest
}

// ConnectedComponents finds the components of the peer graph, ignoring the
// systems in excluded. Systems without interfaces form singleton components.
func ConnectedComponents(n *network.Network, excluded map[string]bool) *ComponentsResult {
	g := buildPeerGraph(n)

	visited := make(map[string]bool, len(g.order))
	result := &ComponentsResult{
		Components:      make([]*Component, 0),
		SystemComponent: make(map[string]int, len(g.order)),
	}

	for _, start := range g.order {
		if visited[start] || excluded[start] {
			continue
		}

		component := &Component{
			ID:      len(result.Components),
			Systems: make([]string, 0),
		}

		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			id, ok := queue.Remove(queue.Front()).(string)
			if !ok {
				continue
			}
			component.Systems = append(component.Systems, id)
			result.SystemComponent[id] = component.ID

			for _, peer := range g.peers[id] {
				if !visited[peer] && !excluded[peer] {
					visited[peer] = true
					queue.PushBack(peer)
				}
			}
		}

		component.Size = len(component.Systems)
		result.Components = append(result.Components, component)
	}

	return result
}

// PeerDegree returns, for every system, the number of distinct other
// systems it shares an interface with.
func PeerDegree(n *network.Network) map[string]int {
	g := buildPeerGraph(n)
	degree := make(map[string]int, len(g.order))
	for _, id := range g.order {
		degree[id] = len(g.peers[id])
	}
	return degree
}
