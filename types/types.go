package types

import "time"

// ============================================================================
// GRAPH MODEL
// ============================================================================

// Category classifies a node within the cybersecurity data model.
type Category string

const (
	CategoryInfrastructure Category = "Infrastructure"
	CategoryIdentity       Category = "Identity"
	CategoryData           Category = "Data"
	CategoryApplication    Category = "Application"
	CategoryNetwork        Category = "Network"
	CategorySecurity       Category = "Security"
	CategoryThreat         Category = "Threat"
)

// Criticality is the qualitative business importance tier of a node.
type Criticality string

const (
	CriticalityCritical Criticality = "Critical"
	CriticalityHigh     Criticality = "High"
	CriticalityMedium   Criticality = "Medium"
	CriticalityLow      Criticality = "Low"
)

// MonitoringLevel describes how closely a node is observed.
type MonitoringLevel string

const (
	MonitoringHigh   MonitoringLevel = "High"
	MonitoringMedium MonitoringLevel = "Medium"
	MonitoringLow    MonitoringLevel = "Low"
	MonitoringNone   MonitoringLevel = "None"
)

// EdgeCategory classifies a relationship within the cybersecurity data model.
type EdgeCategory string

const (
	EdgeCategoryNetwork         EdgeCategory = "Network"
	EdgeCategoryAccess          EdgeCategory = "Access"
	EdgeCategoryDataFlow        EdgeCategory = "Data Flow"
	EdgeCategoryTrust           EdgeCategory = "Trust"
	EdgeCategoryExploit         EdgeCategory = "Exploit"
	EdgeCategoryLateralMovement EdgeCategory = "Lateral Movement"
)

// RiskLevel is the qualitative risk tier of an edge.
type RiskLevel string

const (
	RiskLevelCritical RiskLevel = "Critical"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelLow      RiskLevel = "Low"
)

// Difficulty estimates how hard a relationship is to exploit.
type Difficulty string

const (
	DifficultyLow    Difficulty = "Low"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHigh   Difficulty = "High"
)

// RawNode is the caller-supplied node shape before enhancement. Only the ID
// is mandatory; every other field falls through to documented defaults.
type RawNode struct {
	ID          string            `json:"id" validate:"required"`
	Type        string            `json:"type"`
	DisplayName string            `json:"displayName"`
	Properties  map[string]string `json:"properties"`
}

// RawEdge is the caller-supplied edge shape before enhancement. Referential
// integrity against the node set is never checked; dangling references are an
// accepted sparse representation.
type RawEdge struct {
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
	Type     string `json:"type"`
	Protocol string `json:"protocol,omitempty"`
	Port     int    `json:"port,omitempty"`
}

// GraphNode is a fully enriched cybersecurity node.
type GraphNode struct {
	ID                     string            `json:"id"`
	Type                   string            `json:"type"`
	DisplayName            string            `json:"displayName"`
	Properties             map[string]string `json:"properties,omitempty"`
	Category               Category          `json:"category"`
	Criticality            Criticality       `json:"criticality"`
	Vulnerabilities        []string          `json:"vulnerabilities"`
	Privileges             []string          `json:"privileges"`
	NetworkSegment         string            `json:"networkSegment"`
	AssetValue             int               `json:"assetValue"`
	RiskScore              float64           `json:"riskScore"`
	MonitoringLevel        MonitoringLevel   `json:"monitoringLevel"`
	LastUpdated            time.Time         `json:"lastUpdated"`
	ComplianceRequirements []string          `json:"complianceRequirements,omitempty"`
}

// GraphEdge is a fully enriched cybersecurity relationship.
type GraphEdge struct {
	From           string       `json:"from"`
	To             string       `json:"to"`
	Type           string       `json:"type"`
	Category       EdgeCategory `json:"category"`
	Protocol       string       `json:"protocol,omitempty"`
	Port           int          `json:"port,omitempty"`
	Encrypted      bool         `json:"encrypted"`
	Monitored      bool         `json:"monitored"`
	RiskLevel      RiskLevel    `json:"riskLevel"`
	ExploitMethods []string     `json:"exploitMethods"`
	Prerequisites  []string     `json:"prerequisites"`
	Difficulty     Difficulty   `json:"difficulty"`
}

// EnhancementConfig gates the individual pipeline stages of the dataset
// enhancement orchestrator. Every toggle is independent; any subset may be
// enabled.
type EnhancementConfig struct {
	AddExternalThreats           bool `json:"addExternalThreats" yaml:"add_external_threats"`
	AddVulnerabilities           bool `json:"addVulnerabilities" yaml:"add_vulnerabilities"`
	AddPrivilegedAccounts        bool `json:"addPrivilegedAccounts" yaml:"add_privileged_accounts"`
	AddNetworkDevices            bool `json:"addNetworkDevices" yaml:"add_network_devices"`
	AddSecurityControls          bool `json:"addSecurityControls" yaml:"add_security_controls"`
	AddComplianceNodes           bool `json:"addComplianceNodes" yaml:"add_compliance_nodes"`
	EnhanceExistingNodes         bool `json:"enhanceExistingNodes" yaml:"enhance_existing_nodes"`
	GenerateRealisticConnections bool `json:"generateRealisticConnections" yaml:"generate_realistic_connections"`
}

// FullEnhancementConfig returns a config with every pipeline stage enabled.
func FullEnhancementConfig() EnhancementConfig {
	return EnhancementConfig{
		AddExternalThreats:           true,
		AddVulnerabilities:           true,
		AddPrivilegedAccounts:        true,
		AddNetworkDevices:            true,
		AddSecurityControls:          true,
		AddComplianceNodes:           true,
		EnhanceExistingNodes:         true,
		GenerateRealisticConnections: true,
	}
}

// EnhancedGraph holds the output of one enhancement run. The orchestrator
// owns these slices; callers may read them freely but must copy before
// mutating.
type EnhancedGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// ToAPIFormat converts the enhanced graph into the flat node/edge map shape
// consumed by the dashboard renderer.
func (g *EnhancedGraph) ToAPIFormat() map[string]interface{} {
	nodes := make([]map[string]interface{}, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		node := map[string]interface{}{
			"id":              n.ID,
			"label":           n.DisplayName,
			"type":            n.Type,
			"group":           string(n.Category),
			"criticality":     string(n.Criticality),
			"riskScore":       n.RiskScore,
			"networkSegment":  n.NetworkSegment,
			"monitoringLevel": string(n.MonitoringLevel),
		}
		if len(n.Properties) > 0 {
			node["properties"] = n.Properties
		}
		nodes = append(nodes, node)
	}

	edges := make([]map[string]interface{}, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, map[string]interface{}{
			"from":      e.From,
			"to":        e.To,
			"label":     e.Type,
			"category":  string(e.Category),
			"riskLevel": string(e.RiskLevel),
			"encrypted": e.Encrypted,
			"monitored": e.Monitored,
			"arrows":    "to",
		})
	}

	return map[string]interface{}{
		"nodes": nodes,
		"edges": edges,
	}
}
