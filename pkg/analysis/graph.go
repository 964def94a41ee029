// Package analysis measures how connected the systems of a network are and
// how an isolation changes that.
//
// Two systems are peers when at least one connector of each attaches to the
// same interface. Connected components and peer degree are computed over
// that system-level graph.
package analysis

import (
	"slices"

	"github.com/dd0wney/cluso-isolate/pkg/network"
)

// peerGraph is the system-to-system adjacency derived from shared interfaces
type peerGraph struct {
	order []string
	peers map[string][]string
}

func buildPeerGraph(n *network.Network) *peerGraph {
	g := &peerGraph{
		order: make([]string, 0, len(n.Systems)),
		peers: make(map[string][]string, len(n.Systems)),
	}

	known := make(map[string]bool, len(n.Systems))
	for _, s := range n.Systems {
		g.order = append(g.order, s.ID)
		known[s.ID] = true
	}

	// interface id -> owning systems, in connector order
	owners := make(map[string][]string)
	for _, c := range n.Connectors {
		if !known[c.SystemID] {
			continue
		}
		for _, iid := range c.InterfaceIDs {
			if !slices.Contains(owners[iid], c.SystemID) {
				owners[iid] = append(owners[iid], c.SystemID)
			}
		}
	}

	for _, iface := range n.Interfaces {
		systems := owners[iface.ID]
		for _, a := range systems {
			for _, b := range systems {
				if a != b && !slices.Contains(g.peers[a], b) {
					g.peers[a] = append(g.peers[a], b)
				}
			}
		}
	}
	return g
}
