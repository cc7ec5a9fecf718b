package types

import "time"

// ============================================================================
// THREAT SCENARIOS
// ============================================================================

// Severity is the qualitative severity tier of a threat path.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// AttackerProfile describes the adversary assumed by a threat path.
type AttackerProfile struct {
	Type           string   `json:"type"`
	Sophistication string   `json:"sophistication"`
	Motivation     []string `json:"motivation"`
	Capabilities   []string `json:"capabilities"`
}

// PathHop is one per-hop detail record along an attack chain.
type PathHop struct {
	NodeID    string `json:"nodeId"`
	Action    string `json:"action"`
	Technique string `json:"technique,omitempty"`
}

// TimelineStage is one stage of a threat path's attack timeline.
type TimelineStage struct {
	Stage       string `json:"stage"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
}

// BusinessImpact holds the qualitative impact assessment of a threat path.
type BusinessImpact struct {
	Confidentiality    string `json:"confidentiality"`
	Integrity          string `json:"integrity"`
	Availability       string `json:"availability"`
	FinancialImpact    string `json:"financialImpact"`
	ReputationalImpact string `json:"reputationalImpact"`
}

// ThreatPath is one raw path inside an upstream ThreatScenario. Every field
// except Nodes is optional; the flattener substitutes documented defaults.
type ThreatPath struct {
	Nodes           []string         `json:"nodes"`
	Severity        Severity         `json:"severity,omitempty"`
	RiskScore       float64          `json:"riskScore,omitempty"`
	Likelihood      float64          `json:"likelihood,omitempty"`
	Impact          float64          `json:"impact,omitempty"`
	MitreTactics    []string         `json:"mitreTactics,omitempty"`
	MitreTechniques []string         `json:"mitreTechniques,omitempty"`
	EstimatedTime   string           `json:"estimatedTime,omitempty"`
	AttackerProfile *AttackerProfile `json:"attackerProfile,omitempty"`
	PathDetails     []PathHop        `json:"pathDetails,omitempty"`
	Timeline        []TimelineStage  `json:"timeline,omitempty"`
}

// ThreatScenario is the opaque shape emitted by the upstream scenario source.
// A scenario with no paths is tolerated and simply contributes nothing.
type ThreatScenario struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Paths       []ThreatPath `json:"paths"`
}

// ThreatPathScenario is the UI-facing, self-contained record produced by the
// scenario flattener. It is created once per upstream raw path and never
// mutated by the engine afterwards.
type ThreatPathScenario struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Scenario            string          `json:"scenario"`
	AttackerProfile     AttackerProfile `json:"attackerProfile"`
	Path                []string        `json:"path"`
	PathDetails         []PathHop       `json:"pathDetails"`
	RiskScore           float64         `json:"riskScore"`
	Severity            Severity        `json:"severity"`
	Likelihood          float64         `json:"likelihood"`
	Impact              float64         `json:"impact"`
	MitreTactics        []string        `json:"mitreTactics"`
	MitreTechniques     []string        `json:"mitreTechniques"`
	EntryPoint          string          `json:"entryPoint"`
	TargetAsset         string          `json:"targetAsset"`
	EstimatedDwellTime  string          `json:"estimatedDwellTime"`
	DetectionDifficulty string          `json:"detectionDifficulty"`
	Timeline            []TimelineStage `json:"timeline"`
	BusinessImpact      BusinessImpact  `json:"businessImpact"`
	CreatedAt           time.Time       `json:"createdAt"`
	LastUpdated         time.Time       `json:"lastUpdated"`
	Status              string          `json:"status"`
}

// ============================================================================
// FILTERING AND ANALYTICS
// ============================================================================

// RiskRange is a closed numeric range. The zero value (Min==0 && Max==0)
// means no risk-score constraint.
type RiskRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IsZero reports whether the range imposes no constraint.
func (r RiskRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Contains reports whether v lies inside the range, inclusive on both ends.
func (r RiskRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterCriteria selects a subset of threat path scenarios. Empty sets and an
// empty search term accept everything; criteria combine conjunctively.
type FilterCriteria struct {
	Severities    []Severity `json:"severities"`
	AttackerTypes []string   `json:"attackerTypes"`
	RiskScore     RiskRange  `json:"riskScore"`
	SearchTerm    string     `json:"searchTerm"`
}

// SortKey names the numeric field used to order threat path scenarios.
type SortKey string

const (
	SortByRiskScore  SortKey = "riskScore"
	SortByLikelihood SortKey = "likelihood"
	SortByImpact     SortKey = "impact"
	SortByCreatedAt  SortKey = "createdAt"
)

// SortDirection is the order applied by the filter/sort engine.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// RiskDistribution counts scenarios by the highest severity present among
// their paths. Each scenario is counted exactly once.
type RiskDistribution struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// CoverageMetrics describes how much of the enhanced graph the current path
// set touches.
type CoverageMetrics struct {
	NodesInvolved   int      `json:"nodesInvolved"`
	EdgesInvolved   int      `json:"edgesInvolved"`
	NetworkSegments []string `json:"networkSegments"`
}

// AnalyticsSummary is the aggregate view rendered at the top of the
// security-review UI.
type AnalyticsSummary struct {
	TotalPaths       int              `json:"totalPaths"`
	AverageRiskScore float64          `json:"averageRiskScore"`
	RiskDistribution RiskDistribution `json:"riskDistribution"`
	CoverageMetrics  CoverageMetrics  `json:"coverageMetrics"`
}
