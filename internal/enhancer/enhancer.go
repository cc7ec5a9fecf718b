package enhancer

import (
	"math"
	"math/rand"
	"time"

	"threatscape/types"
)

// RandSource supplies the randomized attributes of enhancement: the risk
// jitter and the encryption/monitoring draws. Injecting it keeps the engine
// deterministic under test while production varies scores per invocation.
type RandSource interface {
	// Float64 returns a uniform draw in [0,1).
	Float64() float64
}

// NewSeededSource returns a RandSource backed by math/rand with a fixed seed.
func NewSeededSource(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

// Enhancer converts raw nodes and edges into the enriched cybersecurity
// model. The zero value is not usable; construct with NewEnhancer.
type Enhancer struct {
	rng RandSource
	now func() time.Time
}

// NewEnhancer creates an enhancer with a time-seeded randomness source.
func NewEnhancer() *Enhancer {
	return NewEnhancerWithSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEnhancerWithSource creates an enhancer with an explicit randomness
// source, used by tests to pin the jitter.
func NewEnhancerWithSource(rng RandSource) *Enhancer {
	return &Enhancer{rng: rng, now: time.Now}
}

// EnhanceNode enriches a single raw node using the classification tables.
// Unknown types always fall through to documented defaults, never fail.
func (e *Enhancer) EnhanceNode(raw types.RawNode) types.GraphNode {
	node := types.GraphNode{
		ID:              raw.ID,
		Type:            raw.Type,
		DisplayName:     displayName(raw),
		Properties:      raw.Properties,
		Category:        lookupCategory(raw.Type),
		Criticality:     lookupCriticality(raw.Type),
		Vulnerabilities: lookupList(vulnerabilityCatalog, raw.Type, defaultVulnerabilities),
		Privileges:      lookupList(privilegeCatalog, raw.Type, defaultPrivileges),
		NetworkSegment:  lookupSegment(raw),
		AssetValue:      lookupInt(assetValueTable, raw.Type, defaultAssetValue),
		RiskScore:       e.riskScore(raw.Type),
		MonitoringLevel: lookupMonitoring(raw.Type),
		LastUpdated:     e.now(),
	}

	if reqs, ok := complianceTable[raw.Type]; ok {
		node.ComplianceRequirements = append([]string(nil), reqs...)
	}

	return node
}

// EnhanceEdge enriches a single raw edge using the relationship tables. The
// encrypted and monitored flags are independent Bernoulli draws (p=0.7 and
// p=0.6) from the injected randomness source.
func (e *Enhancer) EnhanceEdge(raw types.RawEdge) types.GraphEdge {
	return types.GraphEdge{
		From:           raw.From,
		To:             raw.To,
		Type:           raw.Type,
		Category:       lookupEdgeCategory(raw.Type),
		Protocol:       raw.Protocol,
		Port:           raw.Port,
		Encrypted:      e.rng.Float64() < 0.7,
		Monitored:      e.rng.Float64() < 0.6,
		RiskLevel:      lookupEdgeRisk(raw.Type),
		ExploitMethods: lookupList(exploitMethodTable, raw.Type, defaultExploitMethods),
		Prerequisites:  lookupList(prerequisiteTable, raw.Type, defaultPrerequisites),
		Difficulty:     lookupEdgeDifficulty(raw.Type),
	}
}

// AdaptNode converts a raw node into a structurally complete GraphNode
// without classification or jitter. Used when enhancement of existing nodes
// is disabled, so downstream consumers never observe an incomplete record.
func AdaptNode(raw types.RawNode) types.GraphNode {
	return types.GraphNode{
		ID:              raw.ID,
		Type:            raw.Type,
		DisplayName:     displayName(raw),
		Properties:      raw.Properties,
		Category:        types.CategoryInfrastructure,
		Criticality:     types.CriticalityLow,
		Vulnerabilities: []string{},
		Privileges:      []string{},
		NetworkSegment:  defaultSegment,
		AssetValue:      defaultAssetValue,
		RiskScore:       defaultBaseRisk,
		MonitoringLevel: types.MonitoringLow,
		LastUpdated:     time.Now(),
	}
}

// AdaptEdge is the edge counterpart of AdaptNode: pass-through with safe
// defaults and no random draws.
func AdaptEdge(raw types.RawEdge) types.GraphEdge {
	return types.GraphEdge{
		From:           raw.From,
		To:             raw.To,
		Type:           raw.Type,
		Category:       lookupEdgeCategory(raw.Type),
		Protocol:       raw.Protocol,
		Port:           raw.Port,
		RiskLevel:      types.RiskLevelMedium,
		ExploitMethods: []string{},
		Prerequisites:  []string{},
		Difficulty:     types.DifficultyMedium,
	}
}

// riskScore is the type baseline plus uniform jitter in [-1,+1], clamped to
// [1,10] and rounded to one decimal.
func (e *Enhancer) riskScore(nodeType string) float64 {
	base, ok := baseRiskTable[nodeType]
	if !ok {
		base = defaultBaseRisk
	}

	jitter := e.rng.Float64()*2 - 1
	score := base + jitter
	score = math.Max(1, math.Min(10, score))

	return math.Round(score*10) / 10
}

func displayName(raw types.RawNode) string {
	if raw.DisplayName != "" {
		return raw.DisplayName
	}
	return raw.ID
}

func lookupCategory(nodeType string) types.Category {
	if c, ok := categoryTable[nodeType]; ok {
		return c
	}
	return types.CategoryInfrastructure
}

func lookupCriticality(nodeType string) types.Criticality {
	if c, ok := criticalityTable[nodeType]; ok {
		return c
	}
	return types.CriticalityLow
}

func lookupSegment(raw types.RawNode) string {
	if cluster, ok := raw.Properties["CLUSTER"]; ok && cluster != "" {
		return cluster
	}
	if seg, ok := segmentTable[raw.Type]; ok {
		return seg
	}
	return defaultSegment
}

func lookupMonitoring(nodeType string) types.MonitoringLevel {
	if m, ok := monitoringTable[nodeType]; ok {
		return m
	}
	return types.MonitoringLow
}

func lookupEdgeCategory(edgeType string) types.EdgeCategory {
	if c, ok := edgeCategoryTable[edgeType]; ok {
		return c
	}
	return types.EdgeCategoryNetwork
}

func lookupEdgeRisk(edgeType string) types.RiskLevel {
	if r, ok := edgeRiskTable[edgeType]; ok {
		return r
	}
	return types.RiskLevelMedium
}

func lookupEdgeDifficulty(edgeType string) types.Difficulty {
	if d, ok := edgeDifficultyTable[edgeType]; ok {
		return d
	}
	return types.DifficultyMedium
}

func lookupInt(table map[string]int, key string, fallback int) int {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

// lookupList copies the catalog entry so callers can never mutate the shared
// tables through a returned slice.
func lookupList(table map[string][]string, key string, fallback []string) []string {
	if v, ok := table[key]; ok {
		return append([]string(nil), v...)
	}
	return append([]string(nil), fallback...)
}
