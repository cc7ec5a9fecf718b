package enhancer

import "threatscape/types"

// Static classification tables mapping entity and relationship type names to
// the cybersecurity data model. Every lookup has a documented default so an
// unknown type string can never fail enhancement.

// categoryTable maps node types to their data-model category.
// Default: Infrastructure.
var categoryTable = map[string]types.Category{
	"Server":             types.CategoryInfrastructure,
	"File Server":        types.CategoryData,
	"Workstation":        types.CategoryInfrastructure,
	"Domain Controller":  types.CategoryIdentity,
	"User":               types.CategoryIdentity,
	"Database":           types.CategoryData,
	"Data Store":         types.CategoryData,
	"Web Server":         types.CategoryApplication,
	"Email Server":       types.CategoryApplication,
	"Application Server": types.CategoryApplication,
	"CRM":                types.CategoryApplication,
	"Payment System":     types.CategoryApplication,
	"Financial System":   types.CategoryApplication,
	"Network Device":     types.CategoryNetwork,
	"Router":             types.CategoryNetwork,
	"Switch":             types.CategoryNetwork,
	"Firewall":           types.CategoryNetwork,
	"VPN Gateway":        types.CategoryNetwork,
	"Load Balancer":      types.CategoryNetwork,
}

// criticalityTable maps node types to business criticality. Default: Low.
var criticalityTable = map[string]types.Criticality{
	"Domain Controller": types.CriticalityCritical,
	"Database":          types.CriticalityCritical,
	"Financial System":  types.CriticalityCritical,
	"Server":            types.CriticalityHigh,
	"File Server":       types.CriticalityHigh,
	"Email Server":      types.CriticalityHigh,
	"Workstation":       types.CriticalityMedium,
	"Network Device":    types.CriticalityMedium,
}

// vulnerabilityCatalog lists known weakness classes per node type.
// Default: ["Configuration Weakness"].
var vulnerabilityCatalog = map[string][]string{
	"Domain Controller": {"Kerberoasting", "DCSync", "Golden Ticket"},
	"Database":          {"SQL Injection", "Weak Authentication", "Unencrypted Data at Rest"},
	"Web Server":        {"Log4j", "Cross-Site Scripting", "Directory Traversal"},
	"Email Server":      {"Open Relay", "Phishing Relay"},
	"Server":            {"Unpatched OS", "Weak Credentials"},
	"File Server":       {"Excessive Share Permissions", "Ransomware Exposure"},
	"Workstation":       {"Phishing Susceptibility", "Malware Execution"},
	"VPN Gateway":       {"Credential Stuffing", "Unpatched Appliance"},
}

var defaultVulnerabilities = []string{"Configuration Weakness"}

// privilegeCatalog lists the privilege tiers reachable on each node type.
// Default: ["User"].
var privilegeCatalog = map[string][]string{
	"Domain Controller": {"Domain Admin", "Enterprise Admin"},
	"Database":          {"Database Admin", "Data Reader"},
	"Server":            {"Local Admin", "Service Account"},
	"File Server":       {"Local Admin", "Backup Operator"},
	"Workstation":       {"User", "Local Admin"},
}

var defaultPrivileges = []string{"User"}

// segmentTable maps node types to their default network segment when the
// caller supplies no CLUSTER property. Default: Corporate.
var segmentTable = map[string]string{
	"Web Server":        "DMZ",
	"Email Server":      "DMZ",
	"Database":          "Internal",
	"Domain Controller": "Internal",
}

const defaultSegment = "Corporate"

// assetValueTable maps node types to a 0-10 business value. Default: 5.
var assetValueTable = map[string]int{
	"Domain Controller": 10,
	"Financial System":  10,
	"Database":          9,
	"File Server":       8,
	"Server":            7,
	"Email Server":      7,
	"Web Server":        6,
	"Network Device":    5,
	"Workstation":       3,
}

const defaultAssetValue = 5

// baseRiskTable maps node types to the risk-score baseline before jitter.
// Default: 5.
var baseRiskTable = map[string]float64{
	"Domain Controller": 9,
	"Database":          8,
	"Server":            6,
	"Workstation":       4,
}

const defaultBaseRisk = 5

// monitoringTable maps node types to their expected monitoring coverage.
// Default: Low.
var monitoringTable = map[string]types.MonitoringLevel{
	"Domain Controller": types.MonitoringHigh,
	"Database":          types.MonitoringHigh,
	"Financial System":  types.MonitoringHigh,
	"Server":            types.MonitoringMedium,
	"Web Server":        types.MonitoringMedium,
	"Email Server":      types.MonitoringMedium,
	"File Server":       types.MonitoringMedium,
	"Workstation":       types.MonitoringLow,
}

// complianceTable attaches regulatory requirements to the three node types
// that carry them. All other types get none.
var complianceTable = map[string][]string{
	"Database":          {"PCI-DSS", "SOX", "GDPR"},
	"File Server":       {"GDPR", "HIPAA"},
	"Domain Controller": {"SOX", "ISO 27001"},
}

// edgeCategoryTable maps relationship types to edge categories.
// Default: Network.
var edgeCategoryTable = map[string]types.EdgeCategory{
	"Targets":            types.EdgeCategoryExploit,
	"Affects":            types.EdgeCategoryExploit,
	"Has Access To":      types.EdgeCategoryAccess,
	"Trusts":             types.EdgeCategoryTrust,
	"Must Comply With":   types.EdgeCategoryTrust,
	"Connection":         types.EdgeCategoryNetwork,
	"Network Connection": types.EdgeCategoryNetwork,
	"Monitors":           types.EdgeCategoryDataFlow,
	"Data Flow":          types.EdgeCategoryDataFlow,
	"Lateral Movement":   types.EdgeCategoryLateralMovement,
}

// edgeRiskTable maps relationship types to risk levels. Default: Medium.
var edgeRiskTable = map[string]types.RiskLevel{
	"Targets":       types.RiskLevelCritical,
	"Affects":       types.RiskLevelCritical,
	"Has Access To": types.RiskLevelHigh,
	"Trusts":        types.RiskLevelMedium,
	"Connection":    types.RiskLevelLow,
}

// exploitMethodTable maps relationship types to the attack techniques they
// enable. Default: ["Network Attack"].
var exploitMethodTable = map[string][]string{
	"Targets":          {"Spear Phishing", "Exploit Public-Facing Application"},
	"Affects":          {"Remote Code Execution"},
	"Has Access To":    {"Credential Theft", "Pass the Hash"},
	"Trusts":           {"Trust Relationship Abuse"},
	"Lateral Movement": {"Remote Services", "SMB Relay"},
}

var defaultExploitMethods = []string{"Network Attack"}

// prerequisiteTable maps relationship types to the conditions an attacker
// needs before traversing them. Default: ["Network Access"].
var prerequisiteTable = map[string][]string{
	"Targets":       {"External Network Access"},
	"Has Access To": {"Valid Credentials"},
	"Trusts":        {"Foothold in Trusting Domain"},
}

var defaultPrerequisites = []string{"Network Access"}

// edgeDifficultyTable maps relationship types to exploitation difficulty.
// Default: Medium.
var edgeDifficultyTable = map[string]types.Difficulty{
	"Affects":    types.DifficultyLow,
	"Targets":    types.DifficultyMedium,
	"Trusts":     types.DifficultyHigh,
	"Connection": types.DifficultyLow,
}
