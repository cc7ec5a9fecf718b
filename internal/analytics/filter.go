package analytics

import (
	"sort"
	"strings"

	"threatscape/types"
)

// FilterAndSort applies the criteria conjunctively, then orders the result
// by the chosen numeric field. Missing sort values are treated as 0. The
// sort is stable, so records comparing equal keep their input order; beyond
// that, tie order is unspecified. The input slice is never mutated.
func FilterAndSort(paths []types.ThreatPathScenario, criteria types.FilterCriteria, key types.SortKey, direction types.SortDirection) []types.ThreatPathScenario {
	result := make([]types.ThreatPathScenario, 0, len(paths))
	for _, p := range paths {
		if matches(p, criteria) {
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a := sortValue(result[i], key)
		b := sortValue(result[j], key)
		if direction == types.SortDescending {
			return a > b
		}
		return a < b
	})

	return result
}

// matches applies every non-empty criterion; an empty set, zero range, or
// empty search term accepts everything.
func matches(p types.ThreatPathScenario, c types.FilterCriteria) bool {
	if len(c.Severities) > 0 && !containsSeverity(c.Severities, p.Severity) {
		return false
	}

	if len(c.AttackerTypes) > 0 && !containsString(c.AttackerTypes, p.AttackerProfile.Type) {
		return false
	}

	if !c.RiskScore.IsZero() && !c.RiskScore.Contains(p.RiskScore) {
		return false
	}

	if c.SearchTerm != "" {
		term := strings.ToLower(c.SearchTerm)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}

	return true
}

func sortValue(p types.ThreatPathScenario, key types.SortKey) float64 {
	switch key {
	case types.SortByLikelihood:
		return p.Likelihood
	case types.SortByImpact:
		return p.Impact
	case types.SortByCreatedAt:
		if p.CreatedAt.IsZero() {
			return 0
		}
		return float64(p.CreatedAt.UnixNano())
	default:
		return p.RiskScore
	}
}

func containsSeverity(set []types.Severity, v types.Severity) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
