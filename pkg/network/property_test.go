package network

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGeneratorInvariants checks the structural guarantees of Generate over
// many sizes and seeds.
func TestGeneratorInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(1234)

	properties := gopter.NewProperties(parameters)

	properties.Property("cardinality matches request", prop.ForAll(
		func(systems, connectors, interfaces int, seed uint64) bool {
			net := NewGenerator(NewSource(seed), nil).Generate(systems, connectors, interfaces)
			return len(net.Systems) == systems &&
				len(net.Connectors) == connectors &&
				len(net.Interfaces) == interfaces
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 80),
		gen.IntRange(0, 20),
		gen.UInt64(),
	))

	properties.Property("generated networks validate", prop.ForAll(
		func(systems, connectors, interfaces int, seed uint64) bool {
			net := NewGenerator(NewSource(seed), nil).Generate(systems, connectors, interfaces)
			return Validate(net) == nil
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 80),
		gen.IntRange(0, 20),
		gen.UInt64(),
	))

	properties.Property("attributes stay in bounds", prop.ForAll(
		func(systems int, seed uint64) bool {
			net := NewGenerator(NewSource(seed), nil).Generate(systems, systems, 1)
			for _, s := range net.Systems {
				a := s.Attributes
				if a.Load < 0 || a.Load > MaxLoad || a.Priority < MinPriority || a.Priority > MaxPriority {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 100),
		gen.UInt64(),
	))

	properties.Property("interface load differs by at most two", prop.ForAll(
		func(connectors, interfaces int, seed uint64) bool {
			net := NewGenerator(NewSource(seed), nil).Generate(5, connectors, interfaces)
			minLinks, maxLinks := InterfaceSpread(net.Interfaces)
			return maxLinks-minLinks <= 2
		},
		gen.IntRange(0, 80),
		gen.IntRange(1, 20),
		gen.UInt64(),
	))

	properties.Property("connectors attach to one or two interfaces", prop.ForAll(
		func(connectors, interfaces int, seed uint64) bool {
			net := NewGenerator(NewSource(seed), nil).Generate(3, connectors, interfaces)
			for _, c := range net.Connectors {
				n := len(c.InterfaceIDs)
				if n < 1 || n > min(MaxInterfacesPerConnector, interfaces) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.IntRange(1, 10),
		gen.UInt64(),
	))

	properties.Property("every system owns a connector when connectors >= systems", prop.ForAll(
		func(systems, extra int, seed uint64) bool {
			net := NewGenerator(NewSource(seed), nil).Generate(systems, systems+extra, 2)
			for _, s := range net.Systems {
				if len(s.Connectors) == 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 30),
		gen.IntRange(0, 30),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
