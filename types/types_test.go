package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhancedGraph_ToAPIFormat(t *testing.T) {
	graph := &EnhancedGraph{
		Nodes: []GraphNode{
			{
				ID:              "dc-1",
				Type:            "Domain Controller",
				DisplayName:     "Primary DC",
				Category:        CategoryInfrastructure,
				Criticality:     CriticalityCritical,
				RiskScore:       9.2,
				NetworkSegment:  "Internal",
				MonitoringLevel: MonitoringHigh,
				Properties:      map[string]string{"CLUSTER": "corp"},
			},
			{
				ID:              "ws-1",
				Type:            "Workstation",
				DisplayName:     "Analyst Workstation",
				Category:        CategoryInfrastructure,
				Criticality:     CriticalityMedium,
				RiskScore:       4.1,
				NetworkSegment:  "Corporate",
				MonitoringLevel: MonitoringLow,
			},
		},
		Edges: []GraphEdge{
			{
				From:      "ws-1",
				To:        "dc-1",
				Type:      "Has Access To",
				Category:  EdgeCategoryAccess,
				RiskLevel: RiskLevelHigh,
				Encrypted: true,
				Monitored: false,
			},
		},
	}

	apiFormat := graph.ToAPIFormat()

	nodes, ok := apiFormat["nodes"].([]map[string]interface{})
	require.True(t, ok, "nodes should be a slice of maps")
	assert.Len(t, nodes, 2, "should have 2 nodes")

	edges, ok := apiFormat["edges"].([]map[string]interface{})
	require.True(t, ok, "edges should be a slice of maps")
	assert.Len(t, edges, 1, "should have 1 edge")

	var foundDC, foundWS bool
	for _, node := range nodes {
		if node["id"] == "dc-1" {
			foundDC = true
			assert.Equal(t, "Primary DC", node["label"])
			assert.Equal(t, "Domain Controller", node["type"])
			assert.Equal(t, "Infrastructure", node["group"])
			assert.Equal(t, "Critical", node["criticality"])
			assert.Equal(t, 9.2, node["riskScore"])
			assert.NotNil(t, node["properties"])
		}
		if node["id"] == "ws-1" {
			foundWS = true
			assert.Equal(t, "Analyst Workstation", node["label"])
			_, hasProps := node["properties"]
			assert.False(t, hasProps, "empty properties should be omitted")
		}
	}
	assert.True(t, foundDC, "should find dc-1")
	assert.True(t, foundWS, "should find ws-1")

	edge := edges[0]
	assert.Equal(t, "ws-1", edge["from"])
	assert.Equal(t, "dc-1", edge["to"])
	assert.Equal(t, "Has Access To", edge["label"])
	assert.Equal(t, "Access", edge["category"])
	assert.Equal(t, "to", edge["arrows"])
	assert.Equal(t, true, edge["encrypted"])
	assert.Equal(t, false, edge["monitored"])
}

func TestFullEnhancementConfig(t *testing.T) {
	cfg := FullEnhancementConfig()

	assert.True(t, cfg.AddExternalThreats)
	assert.True(t, cfg.AddVulnerabilities)
	assert.True(t, cfg.AddPrivilegedAccounts)
	assert.True(t, cfg.AddNetworkDevices)
	assert.True(t, cfg.AddSecurityControls)
	assert.True(t, cfg.AddComplianceNodes)
	assert.True(t, cfg.EnhanceExistingNodes)
	assert.True(t, cfg.GenerateRealisticConnections)
}

func TestRiskRange(t *testing.T) {
	tests := []struct {
		name     string
		r        RiskRange
		value    float64
		isZero   bool
		contains bool
	}{
		{"zero range imposes no constraint", RiskRange{}, 5, true, false},
		{"value inside", RiskRange{Min: 3, Max: 7}, 5, false, true},
		{"value on lower bound", RiskRange{Min: 3, Max: 7}, 3, false, true},
		{"value on upper bound", RiskRange{Min: 3, Max: 7}, 7, false, true},
		{"value below", RiskRange{Min: 3, Max: 7}, 2.9, false, false},
		{"value above", RiskRange{Min: 3, Max: 7}, 7.1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isZero, tt.r.IsZero())
			if !tt.isZero {
				assert.Equal(t, tt.contains, tt.r.Contains(tt.value))
			}
		})
	}
}
