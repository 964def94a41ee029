package network

// Stats summarises a network for display
type Stats struct {
	Counts              Counts  `json:"counts" yaml:"counts"`
	TotalConnections    int     `json:"totalConnections" yaml:"totalConnections"`
	AverageConnectivity float64 `json:"averageConnectivity" yaml:"averageConnectivity"`
	MinInterfaceLinks   int     `json:"minInterfaceLinks" yaml:"minInterfaceLinks"`
	MaxInterfaceLinks   int     `json:"maxInterfaceLinks" yaml:"maxInterfaceLinks"`
	UnboundConnectors   int     `json:"unboundConnectors" yaml:"unboundConnectors"`
}

// TotalConnections counts connector-to-interface links
func TotalConnections(connectors []*Connector) int {
	total := 0
	for _, c := range connectors {
		total += len(c.InterfaceIDs)
	}
	return total
}

// AverageConnectivity is total connections per system, or 0 without systems
func AverageConnectivity(systems []*System, connectors []*Connector) float64 {
	if len(systems) == 0 {
		return 0
	}
	return float64(TotalConnections(connectors)) / float64(len(systems))
}

// InterfaceSpread returns the smallest and largest connector counts across
// interfaces. Both are zero when there are no interfaces.
func InterfaceSpread(interfaces []*Interface) (minLinks, maxLinks int) {
	for i, iface := range interfaces {
		n := len(iface.ConnectorIDs)
		if i == 0 || n < minLinks {
			minLinks = n
		}
		if n > maxLinks {
			maxLinks = n
		}
	}
	return minLinks, maxLinks
}

// ComputeStats gathers the derived display metrics of a network
func ComputeStats(n *Network) Stats {
	minLinks, maxLinks := InterfaceSpread(n.Interfaces)
	unbound := 0
	for _, c := range n.Connectors {
		if c.SystemID == "" {
			unbound++
		}
	}
	return Stats{
		Counts:              n.Counts(),
		TotalConnections:    TotalConnections(n.Connectors),
		AverageConnectivity: AverageConnectivity(n.Systems, n.Connectors),
		MinInterfaceLinks:   minLinks,
		MaxInterfaceLinks:   maxLinks,
		UnboundConnectors:   unbound,
	}
}
