package network

// Index provides id-based lookups across the three entity collections.
// It is built once and never mutates the entities it indexes.
type Index struct {
	systems            map[string]*System
	connectors         map[string]*Connector
	interfaces         map[string]*Interface
	connectorsBySystem map[string][]*Connector
}

// NewIndex indexes the given collections. Connectors are grouped by their
// SystemID field, independent of what the systems' own lists claim.
func NewIndex(systems []*System, connectors []*Connector, interfaces []*Interface) *Index {
	idx := &Index{
		systems:            make(map[string]*System, len(systems)),
		connectors:         make(map[string]*Connector, len(connectors)),
		interfaces:         make(map[string]*Interface, len(interfaces)),
		connectorsBySystem: make(map[string][]*Connector, len(systems)),
	}
	for _, s := range systems {
		idx.systems[s.ID] = s
	}
	for _, c := range connectors {
		idx.connectors[c.ID] = c
		idx.connectorsBySystem[c.SystemID] = append(idx.connectorsBySystem[c.SystemID], c)
	}
	for _, i := range interfaces {
		idx.interfaces[i.ID] = i
	}
	return idx
}

// IndexNetwork is shorthand for NewIndex over a network's collections
func IndexNetwork(n *Network) *Index {
	return NewIndex(n.Systems, n.Connectors, n.Interfaces)
}

// System looks up a system by id
func (idx *Index) System(id string) (*System, bool) {
	s, ok := idx.systems[id]
	return s, ok
}

// Connector looks up a connector by id
func (idx *Index) Connector(id string) (*Connector, bool) {
	c, ok := idx.connectors[id]
	return c, ok
}

// Interface looks up an interface by id
func (idx *Index) Interface(id string) (*Interface, bool) {
	i, ok := idx.interfaces[id]
	return i, ok
}

// ConnectorsOf returns the connectors whose SystemID is systemID, in input order
func (idx *Index) ConnectorsOf(systemID string) []*Connector {
	return idx.connectorsBySystem[systemID]
}

// InterfacesOf returns the distinct interface ids reachable from a system
// through its connectors, in first-seen order.
func (idx *Index) InterfacesOf(systemID string) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, c := range idx.connectorsBySystem[systemID] {
		for _, id := range c.InterfaceIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
