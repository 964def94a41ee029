package network

// Attributes holds the isolation-relevant measurements of a system
type Attributes struct {
	Load     float64 `json:"load" yaml:"load" validate:"gte=0,lte=100"`
	Priority int     `json:"priority" yaml:"priority" validate:"gte=1,lte=5"`
}

// System is a top-tier node. Connectors lists the ids of the connectors it owns.
type System struct {
	ID         string     `json:"id" yaml:"id" validate:"required"`
	Name       string     `json:"name" yaml:"name"`
	Connectors []string   `json:"connectors" yaml:"connectors"`
	Attributes Attributes `json:"attributes" yaml:"attributes"`
}

// Connector belongs to exactly one system and links to one or two interfaces
type Connector struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	Name         string   `json:"name" yaml:"name"`
	SystemID     string   `json:"systemId" yaml:"systemId"`
	InterfaceIDs []string `json:"interfaceIds" yaml:"interfaceIds"`
}

// Interface is a shared attachment point for connectors
type Interface struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	Name         string   `json:"name" yaml:"name"`
	ConnectorIDs []string `json:"connectorIds" yaml:"connectorIds"`
}

// Network is the output of a single generation run.
// Entities are held by pointer so selections can reference them without copying.
type Network struct {
	ID         string       `json:"id" yaml:"id"`
	Seed       uint64       `json:"seed" yaml:"seed"`
	Systems    []*System    `json:"systems" yaml:"systems"`
	Connectors []*Connector `json:"connectors" yaml:"connectors"`
	Interfaces []*Interface `json:"interfaces" yaml:"interfaces"`
}

// Counts is a compact size summary of a network
type Counts struct {
	Systems    int `json:"systems" yaml:"systems"`
	Connectors int `json:"connectors" yaml:"connectors"`
	Interfaces int `json:"interfaces" yaml:"interfaces"`
}

// Counts returns the number of entities of each kind
func (n *Network) Counts() Counts {
	if n == nil {
		return Counts{}
	}
	return Counts{
		Systems:    len(n.Systems),
		Connectors: len(n.Connectors),
		Interfaces: len(n.Interfaces),
	}
}
