package synth

import (
	"strings"

	"threatscape/types"
)

// Connection synthesizers wire each synthetic entity category into the
// existing graph. Candidate selection is deliberately "first N matches in
// accumulator order": fan-out stays linear in catalog size rather than
// quadratic in graph size, and the tie-break policy is the documented input
// order rather than an accidental iteration artifact.

// Fan-out bounds per category.
const (
	maxThreatActorTargets   = 3
	maxVulnerabilityTargets = 2
	maxAccountTargets       = 4
	maxDeviceTargets        = 3
	maxControlTargets       = 5
	maxComplianceTargets    = 3
)

// firstMatches returns up to limit nodes from candidates, in order, for
// which the predicate holds.
func firstMatches(candidates []types.GraphNode, limit int, match func(types.GraphNode) bool) []types.GraphNode {
	var out []types.GraphNode
	for _, n := range candidates {
		if len(out) >= limit {
			break
		}
		if match(n) {
			out = append(out, n)
		}
	}
	return out
}

// ConnectThreatActors emits Targets edges from each threat actor to nodes an
// external adversary can plausibly reach first: public-facing types or
// anything sitting in the DMZ.
func ConnectThreatActors(actors []types.GraphNode, graph []types.GraphNode) []types.GraphEdge {
	exposed := map[string]bool{
		"Web Server":   true,
		"Email Server": true,
		"VPN Gateway":  true,
		"Firewall":     true,
	}

	var edges []types.GraphEdge
	for _, actor := range actors {
		targets := firstMatches(graph, maxThreatActorTargets, func(n types.GraphNode) bool {
			return exposed[n.Type] || n.NetworkSegment == "DMZ"
		})
		for _, t := range targets {
			edges = append(edges, types.GraphEdge{
				From:           actor.ID,
				To:             t.ID,
				Type:           "Targets",
				Category:       types.EdgeCategoryExploit,
				Encrypted:      false,
				Monitored:      true,
				RiskLevel:      types.RiskLevelCritical,
				ExploitMethods: []string{"Spear Phishing", "Exploit Public-Facing Application"},
				Prerequisites:  []string{"External Network Access"},
				Difficulty:     types.DifficultyMedium,
			})
		}
	}
	return edges
}

// ConnectVulnerabilities emits Affects edges from each catalog CVE to the
// nodes matching its per-CVE compatibility rule.
func ConnectVulnerabilities(graph []types.GraphNode) []types.GraphEdge {
	var edges []types.GraphEdge
	for _, rule := range vulnerabilityRules() {
		affected := map[string]bool{}
		for _, t := range rule.affectedTypes {
			affected[t] = true
		}
		keyword := rule.idKeyword

		targets := firstMatches(graph, maxVulnerabilityTargets, func(n types.GraphNode) bool {
			return affected[n.Type] || strings.Contains(strings.ToLower(n.ID), keyword)
		})
		for _, t := range targets {
			edges = append(edges, types.GraphEdge{
				From:           rule.node.ID,
				To:             t.ID,
				Type:           "Affects",
				Category:       types.EdgeCategoryExploit,
				Encrypted:      false,
				Monitored:      false,
				RiskLevel:      types.RiskLevelCritical,
				ExploitMethods: []string{"Remote Code Execution"},
				Prerequisites:  []string{"Network Access"},
				Difficulty:     types.DifficultyLow,
			})
		}
	}
	return edges
}

// ConnectPrivilegedAccounts emits Has Access To edges from each privileged
// account to the node types its privilege tier reaches.
func ConnectPrivilegedAccounts(graph []types.GraphNode) []types.GraphEdge {
	var edges []types.GraphEdge
	for _, rule := range accountRules() {
		compatible := map[string]bool{}
		for _, t := range rule.compatibleTypes {
			compatible[t] = true
		}

		targets := firstMatches(graph, maxAccountTargets, func(n types.GraphNode) bool {
			return compatible[n.Type]
		})
		for _, t := range targets {
			edges = append(edges, types.GraphEdge{
				From:           rule.node.ID,
				To:             t.ID,
				Type:           "Has Access To",
				Category:       types.EdgeCategoryAccess,
				Encrypted:      true,
				Monitored:      true,
				RiskLevel:      types.RiskLevelHigh,
				ExploitMethods: []string{"Credential Theft", "Pass the Hash"},
				Prerequisites:  []string{"Valid Credentials"},
				Difficulty:     types.DifficultyMedium,
			})
		}
	}
	return edges
}

// ConnectNetworkDevices emits Network Connection edges following the
// per-device adjacency rules. Only VPN gateway links are encrypted.
func ConnectNetworkDevices(devices []types.GraphNode, graph []types.GraphNode) []types.GraphEdge {
	var edges []types.GraphEdge
	for _, dev := range devices {
		adjacent, ok := deviceAdjacency[dev.Type]
		if !ok {
			continue
		}
		allowed := map[string]bool{}
		for _, t := range adjacent {
			allowed[t] = true
		}

		targets := firstMatches(graph, maxDeviceTargets, func(n types.GraphNode) bool {
			return n.ID != dev.ID && allowed[n.Type]
		})
		for _, t := range targets {
			edges = append(edges, types.GraphEdge{
				From:           dev.ID,
				To:             t.ID,
				Type:           "Network Connection",
				Category:       types.EdgeCategoryNetwork,
				Encrypted:      dev.Type == "VPN Gateway",
				Monitored:      true,
				RiskLevel:      types.RiskLevelLow,
				ExploitMethods: []string{"Network Attack"},
				Prerequisites:  []string{"Network Access"},
				Difficulty:     types.DifficultyLow,
			})
		}
	}
	return edges
}

// ConnectSecurityControls emits Monitors edges from each control to the
// nodes its coverage rule selects. The control is the monitor, so the edge
// itself is unmonitored.
func ConnectSecurityControls(graph []types.GraphNode) []types.GraphEdge {
	var edges []types.GraphEdge
	for _, rule := range controlRules() {
		controlID := rule.node.ID
		monitors := rule.monitors

		targets := firstMatches(graph, maxControlTargets, func(n types.GraphNode) bool {
			return n.ID != controlID && monitors(n)
		})
		for _, t := range targets {
			edges = append(edges, types.GraphEdge{
				From:           controlID,
				To:             t.ID,
				Type:           "Monitors",
				Category:       types.EdgeCategoryDataFlow,
				Encrypted:      true,
				Monitored:      false,
				RiskLevel:      types.RiskLevelLow,
				ExploitMethods: []string{},
				Prerequisites:  []string{},
				Difficulty:     types.DifficultyHigh,
			})
		}
	}
	return edges
}

// ConnectComplianceFrameworks emits Must Comply With edges. Direction is
// reversed relative to the other categories: the compliant system points at
// the framework.
func ConnectComplianceFrameworks(graph []types.GraphNode) []types.GraphEdge {
	var edges []types.GraphEdge
	for _, rule := range complianceRules() {
		obliged := map[string]bool{}
		for _, t := range rule.obligedTypes {
			obliged[t] = true
		}

		systems := firstMatches(graph, maxComplianceTargets, func(n types.GraphNode) bool {
			return obliged[n.Type]
		})
		for _, sys := range systems {
			edges = append(edges, types.GraphEdge{
				From:           sys.ID,
				To:             rule.node.ID,
				Type:           "Must Comply With",
				Category:       types.EdgeCategoryTrust,
				Encrypted:      false,
				Monitored:      false,
				RiskLevel:      types.RiskLevelLow,
				ExploitMethods: []string{},
				Prerequisites:  []string{},
				Difficulty:     types.DifficultyHigh,
			})
		}
	}
	return edges
}

// Baseline connector fan-out bounds.
const (
	maxTrustTargets  = 3
	maxAccessTargets = 2
)

// ConnectBaseline adds the generic structural edges between node classes:
// Trusts edges from every domain controller to the first 3 servers, and Has
// Access To edges from every workstation to the first 2 servers. It runs
// after all synthesis stages so it sees the full accumulator.
func ConnectBaseline(graph []types.GraphNode) []types.GraphEdge {
	var edges []types.GraphEdge

	for _, n := range graph {
		switch n.Type {
		case "Domain Controller":
			servers := firstMatches(graph, maxTrustTargets, func(c types.GraphNode) bool {
				return c.Type == "Server"
			})
			for _, s := range servers {
				edges = append(edges, types.GraphEdge{
					From:           n.ID,
					To:             s.ID,
					Type:           "Trusts",
					Category:       types.EdgeCategoryTrust,
					Encrypted:      true,
					Monitored:      true,
					RiskLevel:      types.RiskLevelMedium,
					ExploitMethods: []string{"Trust Relationship Abuse"},
					Prerequisites:  []string{"Foothold in Trusting Domain"},
					Difficulty:     types.DifficultyHigh,
				})
			}
		case "Workstation":
			servers := firstMatches(graph, maxAccessTargets, func(c types.GraphNode) bool {
				return c.Type == "Server"
			})
			for _, s := range servers {
				edges = append(edges, types.GraphEdge{
					From:           n.ID,
					To:             s.ID,
					Type:           "Has Access To",
					Category:       types.EdgeCategoryAccess,
					Encrypted:      true,
					Monitored:      false,
					RiskLevel:      types.RiskLevelLow,
					ExploitMethods: []string{"Credential Theft"},
					Prerequisites:  []string{"Valid Credentials"},
					Difficulty:     types.DifficultyMedium,
				})
			}
		}
	}

	return edges
}
