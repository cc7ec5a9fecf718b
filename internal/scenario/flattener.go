// Package scenario converts the upstream scenario source's nested output
// into flat, self-contained threat path records for the review UI.
package scenario

import (
	"fmt"
	"time"

	"threatscape/types"
)

// Documented defaults applied whenever the upstream path record omits a
// field. Flattening is total: no upstream shape causes an error.
const (
	defaultRiskScore           = 5
	defaultProbability         = 0.5
	defaultDwellTime           = "Unknown"
	defaultDetectionDifficulty = "Medium"
	defaultStatus              = "Active"
)

func defaultAttackerProfile() types.AttackerProfile {
	return types.AttackerProfile{
		Type:           "External",
		Sophistication: "Medium",
		Motivation:     []string{"Data Theft"},
		Capabilities:   []string{"Network Reconnaissance"},
	}
}

func defaultBusinessImpact() types.BusinessImpact {
	return types.BusinessImpact{
		Confidentiality:    "Medium",
		Integrity:          "Medium",
		Availability:       "Medium",
		FinancialImpact:    "Moderate",
		ReputationalImpact: "Moderate",
	}
}

// Flatten converts every path of every scenario into one ThreatPathScenario.
// Scenarios without paths contribute nothing; missing nested fields become
// defaults rather than errors. The input is never mutated.
func Flatten(scenarios []types.ThreatScenario) []types.ThreatPathScenario {
	flattened := make([]types.ThreatPathScenario, 0, len(scenarios))
	now := time.Now()

	for _, sc := range scenarios {
		for i, path := range sc.Paths {
			flattened = append(flattened, flattenPath(sc, path, i, now))
		}
	}

	return flattened
}

func flattenPath(sc types.ThreatScenario, path types.ThreatPath, index int, now time.Time) types.ThreatPathScenario {
	nodes := path.Nodes
	if nodes == nil {
		nodes = []string{}
	}

	entryPoint := ""
	targetAsset := ""
	if len(nodes) > 0 {
		entryPoint = nodes[0]
		targetAsset = nodes[len(nodes)-1]
	}

	profile := defaultAttackerProfile()
	if path.AttackerProfile != nil {
		profile = *path.AttackerProfile
	}

	riskScore := path.RiskScore
	if riskScore == 0 {
		riskScore = defaultRiskScore
	}

	severity := path.Severity
	if severity == "" {
		severity = types.SeverityMedium
	}

	likelihood := path.Likelihood
	if likelihood == 0 {
		likelihood = defaultProbability
	}

	impact := path.Impact
	if impact == 0 {
		impact = defaultProbability
	}

	dwellTime := path.EstimatedTime
	if dwellTime == "" {
		dwellTime = defaultDwellTime
	}

	return types.ThreatPathScenario{
		ID:                  fmt.Sprintf("%s-path-%d", sc.ID, index),
		Name:                sc.Name,
		Description:         sc.Description,
		Scenario:            sc.Description,
		AttackerProfile:     profile,
		Path:                nodes,
		PathDetails:         emptyIfNil(path.PathDetails),
		RiskScore:           riskScore,
		Severity:            severity,
		Likelihood:          likelihood,
		Impact:              impact,
		MitreTactics:        emptyIfNilStrings(path.MitreTactics),
		MitreTechniques:     emptyIfNilStrings(path.MitreTechniques),
		EntryPoint:          entryPoint,
		TargetAsset:         targetAsset,
		EstimatedDwellTime:  dwellTime,
		DetectionDifficulty: defaultDetectionDifficulty,
		Timeline:            emptyIfNilStages(path.Timeline),
		BusinessImpact:      defaultBusinessImpact(),
		CreatedAt:           now,
		LastUpdated:         now,
		Status:              defaultStatus,
	}
}

func emptyIfNil(hops []types.PathHop) []types.PathHop {
	if hops == nil {
		return []types.PathHop{}
	}
	return hops
}

func emptyIfNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilStages(s []types.TimelineStage) []types.TimelineStage {
	if s == nil {
		return []types.TimelineStage{}
	}
	return s
}
