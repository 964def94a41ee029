package network

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(seed uint64) *Generator {
	return NewGenerator(NewSource(seed), nil)
}

func TestGenerate_Cardinality(t *testing.T) {
	tests := []struct{ systems, connectors, interfaces int }{
		{5, 8, 4},
		{10, 15, 8},
		{0, 0, 0},
		{3, 0, 2},
		{0, 4, 2},
		{4, 4, 0},
		{1, 2, 1},
		{2, 7, 9},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%d-%d", tt.systems, tt.connectors, tt.interfaces), func(t *testing.T) {
			net := newTestGenerator(1).Generate(tt.systems, tt.connectors, tt.interfaces)

			assert.Len(t, net.Systems, tt.systems)
			assert.Len(t, net.Connectors, tt.connectors)
			assert.Len(t, net.Interfaces, tt.interfaces)
			assert.NoError(t, Validate(net))
		})
	}
}

func TestGenerate_NegativeCountsClamp(t *testing.T) {
	net := newTestGenerator(1).Generate(-1, -5, -2)
	assert.Equal(t, Counts{}, net.Counts())
}

func TestGenerate_SystemAttributes(t *testing.T) {
	idPattern := regexp.MustCompile(`^s\d+$`)
	namePattern := regexp.MustCompile(`^System \d+$`)

	net := newTestGenerator(7).Generate(50, 80, 20)
	for _, s := range net.Systems {
		assert.Regexp(t, idPattern, s.ID)
		assert.Regexp(t, namePattern, s.Name)
		assert.GreaterOrEqual(t, s.Attributes.Load, 0.0)
		assert.LessOrEqual(t, s.Attributes.Load, MaxLoad)
		assert.GreaterOrEqual(t, s.Attributes.Priority, MinPriority)
		assert.LessOrEqual(t, s.Attributes.Priority, MaxPriority)
	}
}

func TestGenerate_ReferentialIntegrity(t *testing.T) {
	net := newTestGenerator(3).Generate(5, 8, 4)
	idx := IndexNetwork(net)

	for _, c := range net.Connectors {
		owner, ok := idx.System(c.SystemID)
		require.True(t, ok, "connector %s owner %q not found", c.ID, c.SystemID)
		assert.Contains(t, owner.Connectors, c.ID)

		assert.NotEmpty(t, c.InterfaceIDs)
		assert.LessOrEqual(t, len(c.InterfaceIDs), MaxInterfacesPerConnector)
		for _, iid := range c.InterfaceIDs {
			iface, ok := idx.Interface(iid)
			require.True(t, ok)
			assert.Contains(t, iface.ConnectorIDs, c.ID)
		}
	}

	for _, iface := range net.Interfaces {
		for _, cid := range iface.ConnectorIDs {
			c, ok := idx.Connector(cid)
			require.True(t, ok)
			assert.Contains(t, c.InterfaceIDs, iface.ID)
		}
	}

	for _, s := range net.Systems {
		for _, cid := range s.Connectors {
			c, ok := idx.Connector(cid)
			require.True(t, ok)
			assert.Equal(t, s.ID, c.SystemID)
		}
	}
}

func TestGenerate_BalancedInterfaces(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		net := newTestGenerator(seed).Generate(5, 10, 4)
		minLinks, maxLinks := InterfaceSpread(net.Interfaces)
		assert.LessOrEqual(t, maxLinks-minLinks, 2, "seed %d", seed)
	}
}

func TestGenerate_EvenConnectorDistribution(t *testing.T) {
	tests := []struct {
		name       string
		systems    int
		connectors int
		want       []int
	}{
		{"exact multiple", 5, 10, []int{2, 2, 2, 2, 2}},
		{"fractional step", 3, 5, []int{2, 2, 1}},
		{"more systems than connectors", 5, 2, []int{1, 0, 1, 0, 0}},
		{"single system", 1, 2, []int{2}},
		{"one connector each", 4, 4, []int{1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := newTestGenerator(11).Generate(tt.systems, tt.connectors, 3)
			got := make([]int, len(net.Systems))
			for i, s := range net.Systems {
				got[i] = len(s.Connectors)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_NoSystems(t *testing.T) {
	net := newTestGenerator(5).Generate(0, 4, 2)

	for _, c := range net.Connectors {
		assert.Empty(t, c.SystemID)
		assert.NotEmpty(t, c.InterfaceIDs)
	}
	assert.NoError(t, Validate(net))
}

func TestGenerate_NoInterfaces(t *testing.T) {
	net := newTestGenerator(5).Generate(3, 6, 0)

	for _, c := range net.Connectors {
		assert.NotEmpty(t, c.SystemID)
		assert.Empty(t, c.InterfaceIDs)
	}
}

func TestGenerate_SingleInterfaceSharedByAll(t *testing.T) {
	net := newTestGenerator(9).Generate(5, 8, 1)

	require.Len(t, net.Interfaces, 1)
	assert.Len(t, net.Interfaces[0].ConnectorIDs, 8)
	for _, c := range net.Connectors {
		assert.Equal(t, []string{"i0"}, c.InterfaceIDs)
	}
}

func TestGenerate_SameSeedSameNetwork(t *testing.T) {
	a := newTestGenerator(42).Generate(10, 15, 8)
	b := newTestGenerator(42).Generate(10, 15, 8)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, uint64(42), a.Seed)
	assert.Equal(t, a.Systems, b.Systems)
	assert.Equal(t, a.Connectors, b.Connectors)
	assert.Equal(t, a.Interfaces, b.Interfaces)
}

func TestGenerateMockNetwork(t *testing.T) {
	net := GenerateMockNetwork(10, 15, 8)
	assert.NotEmpty(t, net.ID)
	assert.Equal(t, Counts{Systems: 10, Connectors: 15, Interfaces: 8}, net.Counts())
	assert.NoError(t, Validate(net))
}

func TestOwnerIndex(t *testing.T) {
	tests := []struct {
		i, connectors, systems int
		want                   int
		ok                     bool
	}{
		{0, 5, 3, 0, true},
		{4, 5, 3, 2, true},
		{1, 2, 5, 2, true},
		{0, 3, 0, 0, false},
		{9, 10, 1, 0, true},
	}
	for _, tt := range tests {
		got, ok := ownerIndex(tt.i, tt.connectors, tt.systems)
		assert.Equal(t, tt.ok, ok, "ownerIndex(%d,%d,%d)", tt.i, tt.connectors, tt.systems)
		if ok {
			assert.Equal(t, tt.want, got, "ownerIndex(%d,%d,%d)", tt.i, tt.connectors, tt.systems)
		}
	}
}
