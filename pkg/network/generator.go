package network

import (
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-isolate/pkg/logging"
	"github.com/google/uuid"
)

const (
	// MaxLoad is the upper bound of a system's load
	MaxLoad = 100.0
	// MinPriority and MaxPriority bound a system's priority
	MinPriority = 1
	MaxPriority = 5
	// MaxInterfacesPerConnector caps the attachments drawn per connector
	MaxInterfacesPerConnector = 2
)

// Generator builds random three-tier networks
type Generator struct {
	source Source
	logger logging.Logger
}

// NewGenerator creates a generator drawing from src.
// A nil logger discards output.
func NewGenerator(src Source, logger logging.Logger) *Generator {
	if src == nil {
		src = NewTimeSource()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Generator{
		source: src,
		logger: logger,
	}
}

// GenerateMockNetwork builds a network from a clock-seeded source
func GenerateMockNetwork(systemCount, connectorCount, interfaceCount int) *Network {
	return NewGenerator(nil, nil).Generate(systemCount, connectorCount, interfaceCount)
}

// Generate creates systemCount systems, connectorCount connectors and
// interfaceCount interfaces and wires them together. Negative counts are
// treated as zero. It never fails: degenerate sizes produce partial wiring.
func (g *Generator) Generate(systemCount, connectorCount, interfaceCount int) *Network {
	systemCount = max(systemCount, 0)
	connectorCount = max(connectorCount, 0)
	interfaceCount = max(interfaceCount, 0)

	timer := logging.StartTimer(g.logger, "network generated",
		logging.Int("systems", systemCount),
		logging.Int("connectors", connectorCount),
		logging.Int("interfaces", interfaceCount),
	)

	net := &Network{
		ID:         uuid.New().String(),
		Seed:       SeedOf(g.source),
		Systems:    g.createSystems(systemCount),
		Connectors: make([]*Connector, connectorCount),
		Interfaces: make([]*Interface, interfaceCount),
	}

	for i := range net.Interfaces {
		net.Interfaces[i] = &Interface{
			ID:           fmt.Sprintf("i%d", i),
			Name:         fmt.Sprintf("Interface %d", i),
			ConnectorIDs: []string{},
		}
	}

	for i := range net.Connectors {
		c := &Connector{
			ID:           fmt.Sprintf("c%d", i),
			Name:         fmt.Sprintf("Connector %d", i),
			InterfaceIDs: []string{},
		}
		net.Connectors[i] = c

		if idx, ok := ownerIndex(i, connectorCount, systemCount); ok {
			owner := net.Systems[idx]
			c.SystemID = owner.ID
			owner.Connectors = append(owner.Connectors, c.ID)
		}

		g.attach(c, net.Interfaces)
	}

	timer.End(logging.NetworkID(net.ID), logging.Int("connections", TotalConnections(net.Connectors)))
	return net
}

func (g *Generator) createSystems(n int) []*System {
	systems := make([]*System, n)
	for i := range systems {
		systems[i] = &System{
			ID:         fmt.Sprintf("s%d", i),
			Name:       fmt.Sprintf("System %d", i),
			Connectors: []string{},
			Attributes: Attributes{
				Load:     g.source.Float64() * MaxLoad,
				Priority: g.source.IntN(MaxPriority-MinPriority+1) + MinPriority,
			},
		}
	}
	return systems
}

// ownerIndex spreads connectors evenly across systems: connector i goes to
// floor(i / (connectors/systems)), clamped to the last system. The quotient is
// evaluated as i*systems/connectors so no fractional step is involved.
func ownerIndex(i, connectorCount, systemCount int) (int, bool) {
	if systemCount == 0 || connectorCount == 0 {
		return 0, false
	}
	return min(i*systemCount/connectorCount, systemCount-1), true
}

// attach links c to one or two interfaces, always choosing the least
// connected candidate. Ties go to the earlier interface.
func (g *Generator) attach(c *Connector, interfaces []*Interface) {
	want := g.source.IntN(MaxInterfacesPerConnector) + 1
	pool := slices.Clone(interfaces)

	for range want {
		if len(pool) == 0 {
			break
		}
		slices.SortStableFunc(pool, func(a, b *Interface) int {
			return len(a.ConnectorIDs) - len(b.ConnectorIDs)
		})
		selected := pool[0]
		pool = pool[1:]

		c.InterfaceIDs = append(c.InterfaceIDs, selected.ID)
		selected.ConnectorIDs = append(selected.ConnectorIDs, c.ID)
	}
}
