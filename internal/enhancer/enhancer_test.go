package enhancer

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threatscape/types"
)

// fixedSource replays a fixed sequence of draws.
type fixedSource struct {
	values []float64
	i      int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func TestEnhanceNode_Classification(t *testing.T) {
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.5}})

	tests := []struct {
		name        string
		nodeType    string
		category    types.Category
		criticality types.Criticality
		segment     string
		assetValue  int
	}{
		{"domain controller", "Domain Controller", types.CategoryIdentity, types.CriticalityCritical, "Internal", 10},
		{"database", "Database", types.CategoryData, types.CriticalityCritical, "Internal", 9},
		{"web server", "Web Server", types.CategoryApplication, types.CriticalityLow, "DMZ", 6},
		{"workstation", "Workstation", types.CategoryInfrastructure, types.CriticalityMedium, "Corporate", 3},
		{"unknown type", "Coffee Machine", types.CategoryInfrastructure, types.CriticalityLow, "Corporate", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := e.EnhanceNode(types.RawNode{ID: "n1", Type: tt.nodeType})

			assert.Equal(t, tt.category, node.Category)
			assert.Equal(t, tt.criticality, node.Criticality)
			assert.Equal(t, tt.segment, node.NetworkSegment)
			assert.Equal(t, tt.assetValue, node.AssetValue)
			assert.NotEmpty(t, node.Vulnerabilities)
			assert.NotEmpty(t, node.Privileges)
			assert.False(t, node.LastUpdated.IsZero())
		})
	}
}

func TestEnhanceNode_DisplayNameFallsBackToID(t *testing.T) {
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.5}})

	named := e.EnhanceNode(types.RawNode{ID: "srv-1", Type: "Server", DisplayName: "Build Server"})
	assert.Equal(t, "Build Server", named.DisplayName)

	unnamed := e.EnhanceNode(types.RawNode{ID: "srv-2", Type: "Server"})
	assert.Equal(t, "srv-2", unnamed.DisplayName)
}

func TestEnhanceNode_ClusterPropertyOverridesSegment(t *testing.T) {
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.5}})

	node := e.EnhanceNode(types.RawNode{
		ID:         "db-1",
		Type:       "Database",
		Properties: map[string]string{"CLUSTER": "PCI-Zone"},
	})

	assert.Equal(t, "PCI-Zone", node.NetworkSegment)
}

func TestEnhanceNode_ComplianceRequirements(t *testing.T) {
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.5}})

	db := e.EnhanceNode(types.RawNode{ID: "db-1", Type: "Database"})
	assert.NotEmpty(t, db.ComplianceRequirements)

	ws := e.EnhanceNode(types.RawNode{ID: "ws-1", Type: "Workstation"})
	assert.Empty(t, ws.ComplianceRequirements)
}

func TestRiskScore_JitterAndRounding(t *testing.T) {
	// Draw 0.75 yields jitter 2*0.75-1 = +0.5.
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.75}})
	node := e.EnhanceNode(types.RawNode{ID: "dc-1", Type: "Domain Controller"})
	assert.Equal(t, 9.5, node.RiskScore)

	// Draw 0 yields jitter -1.
	e = NewEnhancerWithSource(&fixedSource{values: []float64{0}})
	node = e.EnhanceNode(types.RawNode{ID: "ws-1", Type: "Workstation"})
	assert.Equal(t, 3.0, node.RiskScore)

	// Unknown types start from the default baseline of 5.
	e = NewEnhancerWithSource(&fixedSource{values: []float64{0.5}})
	node = e.EnhanceNode(types.RawNode{ID: "x", Type: "Mystery Box"})
	assert.Equal(t, 5.0, node.RiskScore)
}

func TestRiskScore_ClampedAtUpperBound(t *testing.T) {
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.9999}})
	node := e.EnhanceNode(types.RawNode{ID: "dc-1", Type: "Domain Controller"})
	assert.Equal(t, 10.0, node.RiskScore)
}

func TestEnhanceEdge_BernoulliDraws(t *testing.T) {
	// First draw 0.5 < 0.7 so encrypted; second draw 0.9 >= 0.6 so unmonitored.
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.5, 0.9}})

	edge := e.EnhanceEdge(types.RawEdge{From: "a", To: "b", Type: "Connection"})

	assert.True(t, edge.Encrypted)
	assert.False(t, edge.Monitored)
	assert.Equal(t, types.RiskLevelLow, edge.RiskLevel)
	assert.Equal(t, types.EdgeCategoryNetwork, edge.Category)
}

func TestEnhanceEdge_TypeClassification(t *testing.T) {
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.5}})

	tests := []struct {
		edgeType  string
		category  types.EdgeCategory
		riskLevel types.RiskLevel
	}{
		{"Targets", types.EdgeCategoryExploit, types.RiskLevelCritical},
		{"Affects", types.EdgeCategoryExploit, types.RiskLevelCritical},
		{"Has Access To", types.EdgeCategoryAccess, types.RiskLevelHigh},
		{"Trusts", types.EdgeCategoryTrust, types.RiskLevelMedium},
		{"Connection", types.EdgeCategoryNetwork, types.RiskLevelLow},
		{"Unmapped Relation", types.EdgeCategoryNetwork, types.RiskLevelMedium},
	}

	for _, tt := range tests {
		t.Run(tt.edgeType, func(t *testing.T) {
			edge := e.EnhanceEdge(types.RawEdge{From: "a", To: "b", Type: tt.edgeType})
			assert.Equal(t, tt.category, edge.Category)
			assert.Equal(t, tt.riskLevel, edge.RiskLevel)
		})
	}
}

func TestEnhanceEdge_PreservesProtocolAndPort(t *testing.T) {
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.5}})

	edge := e.EnhanceEdge(types.RawEdge{From: "a", To: "b", Type: "Connection", Protocol: "TCP", Port: 443})

	assert.Equal(t, "TCP", edge.Protocol)
	assert.Equal(t, 443, edge.Port)
}

func TestLookupList_ReturnsCopies(t *testing.T) {
	e := NewEnhancerWithSource(&fixedSource{values: []float64{0.5}})

	first := e.EnhanceNode(types.RawNode{ID: "db-1", Type: "Database"})
	require.NotEmpty(t, first.Vulnerabilities)
	first.Vulnerabilities[0] = "mutated"

	second := e.EnhanceNode(types.RawNode{ID: "db-2", Type: "Database"})
	assert.NotEqual(t, "mutated", second.Vulnerabilities[0], "shared tables must not leak through returned slices")
}

func TestAdaptNode_StructurallyComplete(t *testing.T) {
	node := AdaptNode(types.RawNode{ID: "n1", Type: "Domain Controller"})

	assert.Equal(t, "n1", node.ID)
	assert.Equal(t, types.CategoryInfrastructure, node.Category)
	assert.Equal(t, types.CriticalityLow, node.Criticality)
	assert.NotNil(t, node.Vulnerabilities)
	assert.NotNil(t, node.Privileges)
	assert.Equal(t, float64(5), node.RiskScore)
	assert.Empty(t, node.ComplianceRequirements)
	assert.False(t, node.LastUpdated.IsZero())
}

func TestAdaptEdge_NoRandomDraws(t *testing.T) {
	edge := AdaptEdge(types.RawEdge{From: "a", To: "b", Type: "Targets"})

	assert.False(t, edge.Encrypted)
	assert.False(t, edge.Monitored)
	assert.Equal(t, types.EdgeCategoryExploit, edge.Category)
	assert.Equal(t, types.RiskLevelMedium, edge.RiskLevel)
	assert.NotNil(t, edge.ExploitMethods)
	assert.NotNil(t, edge.Prerequisites)
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := NewEnhancerWithSource(NewSeededSource(42))
	b := NewEnhancerWithSource(NewSeededSource(42))

	raw := types.RawNode{ID: "srv-1", Type: "Server"}
	assert.Equal(t, a.EnhanceNode(raw).RiskScore, b.EnhanceNode(raw).RiskScore)
}

func TestRiskScore_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("risk score stays within [1,10]", prop.ForAll(
		func(seed int64, nodeType string) bool {
			e := NewEnhancerWithSource(NewSeededSource(seed))
			score := e.EnhanceNode(types.RawNode{ID: "n", Type: nodeType}).RiskScore
			return score >= 1 && score <= 10
		},
		gen.Int64(),
		gen.AlphaString(),
	))

	properties.Property("risk score carries one decimal place", prop.ForAll(
		func(seed int64, nodeType string) bool {
			e := NewEnhancerWithSource(NewSeededSource(seed))
			score := e.EnhanceNode(types.RawNode{ID: "n", Type: nodeType}).RiskScore
			scaled := score * 10
			return math.Abs(scaled-math.Round(scaled)) < 1e-9
		},
		gen.Int64(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
