// Package analytics computes summary statistics and filtered views over
// flattened threat path scenarios.
package analytics

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"threatscape/types"
)

// severityRank orders severities for highest-severity selection. Unknown
// values rank below Low.
var severityRank = map[types.Severity]int{
	types.SeverityCritical: 4,
	types.SeverityHigh:     3,
	types.SeverityMedium:   2,
	types.SeverityLow:      1,
}

// Aggregate computes the distribution and coverage statistics shown at the
// top of the review UI. The input is grouped by originating scenario: each
// inner slice holds the flattened paths of one upstream scenario. A scenario
// is counted once in the risk distribution, under the highest severity among
// its paths. Inputs are never mutated.
func Aggregate(scenarios [][]types.ThreatPathScenario, graph types.EnhancedGraph) types.AnalyticsSummary {
	summary := types.AnalyticsSummary{
		TotalPaths: len(scenarios),
	}

	pathCount := 0
	riskSum := 0.0

	for _, group := range scenarios {
		highest := types.Severity("")
		for _, path := range group {
			pathCount++
			riskSum += path.RiskScore
			if severityRank[path.Severity] > severityRank[highest] {
				highest = path.Severity
			}
		}

		switch highest {
		case types.SeverityCritical:
			summary.RiskDistribution.Critical++
		case types.SeverityHigh:
			summary.RiskDistribution.High++
		case types.SeverityMedium:
			summary.RiskDistribution.Medium++
		case types.SeverityLow:
			summary.RiskDistribution.Low++
		}
	}

	if pathCount > 0 {
		summary.AverageRiskScore = riskSum / float64(pathCount)
	}

	summary.CoverageMetrics = types.CoverageMetrics{
		NodesInvolved:   len(graph.Nodes),
		EdgesInvolved:   len(graph.Edges),
		NetworkSegments: distinctSegments(graph.Nodes),
	}

	return summary
}

// distinctSegments deduplicates segment values in first-seen order so the UI
// renders a stable legend across refreshes.
func distinctSegments(nodes []types.GraphNode) []string {
	seen := orderedmap.New[string, struct{}]()
	for _, n := range nodes {
		if n.NetworkSegment != "" {
			seen.Set(n.NetworkSegment, struct{}{})
		}
	}

	segments := make([]string, 0, seen.Len())
	for pair := seen.Oldest(); pair != nil; pair = pair.Next() {
		segments = append(segments, pair.Key)
	}
	return segments
}
