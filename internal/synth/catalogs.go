package synth

import (
	"time"

	"threatscape/types"
)

// The six generators below each return a fixed, hard-coded catalog of
// synthetic entities. Catalog membership is never randomized and every id is
// stable, so repeated runs with the same config are referentially stable.
// Synthetic nodes carry explicit fixed risk scores and bypass the node
// enhancer's jitter entirely.

// Alerting metadata keys consumed by the dashboard for visual emphasis.
const (
	propAlarm     = "TC_ALARM"
	propAnimation = "TC_ANIMATION"
)

func syntheticNode(id, nodeType, name string, category types.Category, criticality types.Criticality, segment string, assetValue int, riskScore float64, monitoring types.MonitoringLevel, alarm, animation string) types.GraphNode {
	return types.GraphNode{
		ID:          id,
		Type:        nodeType,
		DisplayName: name,
		Properties: map[string]string{
			propAlarm:     alarm,
			propAnimation: animation,
		},
		Category:        category,
		Criticality:     criticality,
		Vulnerabilities: []string{},
		Privileges:      []string{},
		NetworkSegment:  segment,
		AssetValue:      assetValue,
		RiskScore:       riskScore,
		MonitoringLevel: monitoring,
		LastUpdated:     time.Now(),
	}
}

// GenerateThreatActors returns the fixed external threat actor catalog.
func GenerateThreatActors() []types.GraphNode {
	return []types.GraphNode{
		syntheticNode("THREATACTOR-APT29", "Threat Actor", "APT29 (Cozy Bear)",
			types.CategoryThreat, types.CriticalityCritical, "External", 0, 9.8, types.MonitoringNone, "Alert", "pulse"),
		syntheticNode("THREATACTOR-APT28", "Threat Actor", "APT28 (Fancy Bear)",
			types.CategoryThreat, types.CriticalityCritical, "External", 0, 9.5, types.MonitoringNone, "Alert", "pulse"),
		syntheticNode("THREATACTOR-LAZARUS", "Threat Actor", "Lazarus Group",
			types.CategoryThreat, types.CriticalityCritical, "External", 0, 9.4, types.MonitoringNone, "Alert", "pulse"),
		syntheticNode("THREATACTOR-FIN7", "Threat Actor", "FIN7",
			types.CategoryThreat, types.CriticalityCritical, "External", 0, 8.9, types.MonitoringNone, "Alert", "pulse"),
		syntheticNode("THREATACTOR-LOCKBIT", "Threat Actor", "LockBit Affiliate",
			types.CategoryThreat, types.CriticalityCritical, "External", 0, 9.1, types.MonitoringNone, "Alert", "pulse"),
	}
}

// vulnerabilityRule couples a catalog CVE node with its compatibility rule:
// a node matches when its type is in affectedTypes or its id contains the
// keyword (case-insensitive).
type vulnerabilityRule struct {
	node          types.GraphNode
	affectedTypes []string
	idKeyword     string
}

func vulnerabilityRules() []vulnerabilityRule {
	return []vulnerabilityRule{
		{
			node: syntheticNode("VULN-CVE-2021-44228", "Vulnerability", "Log4Shell (CVE-2021-44228)",
				types.CategoryThreat, types.CriticalityCritical, "Global", 0, 10.0, types.MonitoringNone, "Alert", "flash"),
			affectedTypes: []string{"Web Server", "Application Server"},
			idKeyword:     "log4j",
		},
		{
			node: syntheticNode("VULN-CVE-2017-0144", "Vulnerability", "EternalBlue (CVE-2017-0144)",
				types.CategoryThreat, types.CriticalityCritical, "Global", 0, 8.1, types.MonitoringNone, "Alert", "flash"),
			affectedTypes: []string{"Workstation", "Server", "File Server"},
			idKeyword:     "smb",
		},
		{
			node: syntheticNode("VULN-CVE-2020-1472", "Vulnerability", "Zerologon (CVE-2020-1472)",
				types.CategoryThreat, types.CriticalityCritical, "Global", 0, 10.0, types.MonitoringNone, "Alert", "flash"),
			affectedTypes: []string{"Domain Controller"},
			idKeyword:     "netlogon",
		},
		{
			node: syntheticNode("VULN-CVE-2019-19781", "Vulnerability", "Citrix ADC Path Traversal (CVE-2019-19781)",
				types.CategoryThreat, types.CriticalityCritical, "Global", 0, 9.8, types.MonitoringNone, "Alert", "flash"),
			affectedTypes: []string{"VPN Gateway", "Web Server"},
			idKeyword:     "citrix",
		},
		{
			node: syntheticNode("VULN-CVE-2021-34473", "Vulnerability", "ProxyShell (CVE-2021-34473)",
				types.CategoryThreat, types.CriticalityCritical, "Global", 0, 9.8, types.MonitoringNone, "Alert", "flash"),
			affectedTypes: []string{"Email Server"},
			idKeyword:     "exchange",
		},
	}
}

// GenerateVulnerabilities returns the fixed vulnerability catalog.
func GenerateVulnerabilities() []types.GraphNode {
	rules := vulnerabilityRules()
	nodes := make([]types.GraphNode, 0, len(rules))
	for _, r := range rules {
		nodes = append(nodes, r.node)
	}
	return nodes
}

// accountRule couples a privileged account node with the node types its
// privilege tier can reach.
type accountRule struct {
	node            types.GraphNode
	compatibleTypes []string
}

func accountRules() []accountRule {
	mk := func(id, name string, privileges []string, risk float64, compatible []string) accountRule {
		n := syntheticNode(id, "Privileged Account", name,
			types.CategoryIdentity, types.CriticalityCritical, "Internal", 8, risk, types.MonitoringMedium, "Warning", "glow")
		n.Privileges = privileges
		return accountRule{node: n, compatibleTypes: compatible}
	}

	return []accountRule{
		mk("ACCOUNT-DOMAIN-ADMIN", "svc-domain-admin", []string{"Domain Admin"}, 8.5,
			[]string{"Domain Controller", "Server", "Workstation"}),
		mk("ACCOUNT-DATABASE-ADMIN", "svc-db-admin", []string{"Database Admin"}, 8.0,
			[]string{"Database", "Data Store"}),
		mk("ACCOUNT-LOCAL-ADMIN", "local-admin-pool", []string{"Local Admin"}, 7.0,
			[]string{"Server", "Workstation"}),
		mk("ACCOUNT-SERVICE", "svc-app-runtime", []string{"Service Account"}, 6.5,
			[]string{"Server", "Database"}),
	}
}

// GeneratePrivilegedAccounts returns the fixed privileged account catalog.
func GeneratePrivilegedAccounts() []types.GraphNode {
	rules := accountRules()
	nodes := make([]types.GraphNode, 0, len(rules))
	for _, r := range rules {
		nodes = append(nodes, r.node)
	}
	return nodes
}

// deviceAdjacency maps a network device type to the node types it plugs into.
var deviceAdjacency = map[string][]string{
	"Firewall":    {"Web Server", "Router"},
	"Router":      {"Server", "Switch"},
	"Switch":      {"Workstation", "Server"},
	"VPN Gateway": {"Firewall", "Router"},
}

// GenerateNetworkDevices returns the fixed network device catalog.
func GenerateNetworkDevices() []types.GraphNode {
	return []types.GraphNode{
		syntheticNode("NETDEV-FW-EDGE", "Firewall", "Edge Firewall",
			types.CategoryNetwork, types.CriticalityHigh, "DMZ", 7, 6.5, types.MonitoringMedium, "Info", "none"),
		syntheticNode("NETDEV-RTR-CORE", "Router", "Core Router",
			types.CategoryNetwork, types.CriticalityHigh, "Corporate", 7, 6.0, types.MonitoringMedium, "Info", "none"),
		syntheticNode("NETDEV-SW-ACCESS", "Switch", "Access Switch",
			types.CategoryNetwork, types.CriticalityMedium, "Corporate", 5, 5.0, types.MonitoringLow, "Info", "none"),
		syntheticNode("NETDEV-VPN-01", "VPN Gateway", "Remote Access VPN",
			types.CategoryNetwork, types.CriticalityHigh, "DMZ", 7, 7.0, types.MonitoringMedium, "Info", "none"),
	}
}

// controlRule couples a security control node with the predicate selecting
// the nodes it monitors.
type controlRule struct {
	node     types.GraphNode
	monitors func(types.GraphNode) bool
}

func controlRules() []controlRule {
	mk := func(id, controlType, name string, monitors func(types.GraphNode) bool) controlRule {
		return controlRule{
			node: syntheticNode(id, controlType, name,
				types.CategorySecurity, types.CriticalityHigh, "Internal", 7, 2.5, types.MonitoringHigh, "Info", "none"),
			monitors: monitors,
		}
	}

	return []controlRule{
		mk("CONTROL-SIEM-01", "SIEM", "Security Event Monitor", func(n types.GraphNode) bool {
			switch n.Type {
			case "Server", "Workstation":
				return true
			}
			return n.Category == types.CategoryNetwork
		}),
		mk("CONTROL-EDR-01", "EDR", "Endpoint Detection", func(n types.GraphNode) bool {
			return n.Type == "Workstation" || n.Type == "Server"
		}),
		mk("CONTROL-IDS-01", "IDS", "Intrusion Detection Sensor", func(n types.GraphNode) bool {
			return n.Category == types.CategoryNetwork
		}),
		mk("CONTROL-DLP-01", "DLP", "Data Loss Prevention", func(n types.GraphNode) bool {
			return n.Category == types.CategoryData
		}),
	}
}

// GenerateSecurityControls returns the fixed security control catalog.
func GenerateSecurityControls() []types.GraphNode {
	rules := controlRules()
	nodes := make([]types.GraphNode, 0, len(rules))
	for _, r := range rules {
		nodes = append(nodes, r.node)
	}
	return nodes
}

// complianceRule couples a compliance framework node with the node types
// obligated to comply with it.
type complianceRule struct {
	node         types.GraphNode
	obligedTypes []string
}

func complianceRules() []complianceRule {
	mk := func(id, name string, obliged []string) complianceRule {
		return complianceRule{
			node: syntheticNode(id, "Compliance Framework", name,
				types.CategorySecurity, types.CriticalityMedium, "Global", 5, 1.0, types.MonitoringNone, "Info", "none"),
			obligedTypes: obliged,
		}
	}

	return []complianceRule{
		mk("COMPLIANCE-PCI-DSS", "PCI-DSS", []string{"Database", "Web Server", "Payment System"}),
		mk("COMPLIANCE-SOX", "SOX", []string{"Database", "Financial System"}),
		mk("COMPLIANCE-GDPR", "GDPR", []string{"Database", "CRM", "User Data"}),
		mk("COMPLIANCE-HIPAA", "HIPAA", []string{"Database", "File Server"}),
	}
}

// GenerateComplianceFrameworks returns the fixed compliance framework catalog.
func GenerateComplianceFrameworks() []types.GraphNode {
	rules := complianceRules()
	nodes := make([]types.GraphNode, 0, len(rules))
	for _, r := range rules {
		nodes = append(nodes, r.node)
	}
	return nodes
}
