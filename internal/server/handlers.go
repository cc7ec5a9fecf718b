package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"threatscape/data_engine"
	"threatscape/internal/analytics"
	"threatscape/internal/errors"
	"threatscape/internal/scenario"
	"threatscape/internal/synth"
	"threatscape/types"
)

var validate = validator.New()

// EnhanceRequest is the payload accepted by the graph enhancement endpoint.
// A nil config enables every pipeline stage.
type EnhanceRequest struct {
	Nodes  []types.RawNode          `json:"nodes"`
	Edges  []types.RawEdge          `json:"edges"`
	Config *types.EnhancementConfig `json:"config"`
}

// handleEnhanceGraph runs the enhancement pipeline over a submitted graph
func handleEnhanceGraph(w http.ResponseWriter, r *http.Request, engine *Engine) {
	var req EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.SendError(w, errors.NewValidationError("Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		}))
		return
	}

	for i, node := range req.Nodes {
		if err := validate.Struct(node); err != nil {
			errors.SendError(w, errors.NewValidationError("Invalid node", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			}))
			return
		}
	}
	for i, edge := range req.Edges {
		if err := validate.Struct(edge); err != nil {
			errors.SendError(w, errors.NewValidationError("Invalid edge", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			}))
			return
		}
	}

	cfg := types.FullEnhancementConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	start := time.Now()
	graph, err := engine.Orchestrator.Enhance(req.Nodes, req.Edges, cfg)
	if err != nil {
		errors.SendError(w, errors.NewValidationError(err.Error(), nil))
		return
	}
	observeEnhancement(time.Since(start), len(graph.Nodes), len(graph.Edges))

	engine.setLastGraph(graph)

	if engine.WSManager != nil {
		engine.WSManager.BroadcastEnhancementComplete(len(graph.Nodes), len(graph.Edges))
	}

	if engine.Producer != nil && engine.Producer.IsConnected() {
		err := engine.Producer.ProduceSystemEvent(r.Context(), data_engine.EnhancementCompletedEvent, map[string]interface{}{
			"node_count": len(graph.Nodes),
			"edge_count": len(graph.Edges),
		})
		if err != nil {
			log.Printf("⚠️  Failed to produce enhancement event: %v", err)
		}
	}

	errors.SendSuccess(w, map[string]interface{}{
		"graph":      graph,
		"node_count": len(graph.Nodes),
		"edge_count": len(graph.Edges),
	})
}

// handleGetGraph returns the most recent enhancement result in the flat
// format consumed by the dashboard renderer
func handleGetGraph(w http.ResponseWriter, r *http.Request, engine *Engine) {
	graph, lastRun := engine.LastGraph()
	if graph == nil {
		errors.SendError(w, errors.NewNotFoundError("enhanced graph"))
		return
	}

	result := graph.ToAPIFormat()
	result["last_run"] = lastRun.Format(time.RFC3339)
	errors.SendSuccess(w, result)
}

// handleGetCatalogs returns the synthetic entity catalogs
func handleGetCatalogs(w http.ResponseWriter, _ *http.Request) {
	errors.SendSuccess(w, map[string]interface{}{
		"threat_actors":         synth.GenerateThreatActors(),
		"vulnerabilities":       synth.GenerateVulnerabilities(),
		"privileged_accounts":   synth.GeneratePrivilegedAccounts(),
		"network_devices":       synth.GenerateNetworkDevices(),
		"security_controls":     synth.GenerateSecurityControls(),
		"compliance_frameworks": synth.GenerateComplianceFrameworks(),
	})
}

// handleFlattenScenarios converts nested threat scenarios into flat path
// records
func handleFlattenScenarios(w http.ResponseWriter, r *http.Request, engine *Engine) {
	var req struct {
		Scenarios []types.ThreatScenario `json:"scenarios"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.SendError(w, errors.NewValidationError("Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		}))
		return
	}

	paths := scenario.Flatten(req.Scenarios)

	errors.SendSuccess(w, map[string]interface{}{
		"paths": paths,
		"total": len(paths),
	})
}

// handlePathAnalytics flattens the submitted scenarios and computes the
// aggregate analytics view against the most recent enhanced graph
func handlePathAnalytics(w http.ResponseWriter, r *http.Request, engine *Engine) {
	var req struct {
		Scenarios []types.ThreatScenario `json:"scenarios"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.SendError(w, errors.NewValidationError("Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		}))
		return
	}

	groups := make([][]types.ThreatPathScenario, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		groups = append(groups, scenario.Flatten([]types.ThreatScenario{sc}))
	}

	var graph types.EnhancedGraph
	if last, _ := engine.LastGraph(); last != nil {
		graph = *last
	}

	summary := analytics.Aggregate(groups, graph)

	if engine.WSManager != nil {
		engine.WSManager.BroadcastAnalyticsUpdate(summary)
	}

	errors.SendSuccess(w, summary)
}

// QueryRequest is the payload accepted by the path query endpoint.
type QueryRequest struct {
	Paths         []types.ThreatPathScenario `json:"paths"`
	Criteria      types.FilterCriteria       `json:"criteria"`
	SortBy        types.SortKey              `json:"sortBy"`
	SortDirection types.SortDirection        `json:"sortDirection"`
}

// handleQueryPaths filters and sorts a submitted set of threat path records
func handleQueryPaths(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.SendError(w, errors.NewValidationError("Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		}))
		return
	}

	if req.SortBy == "" {
		req.SortBy = types.SortByRiskScore
	}
	if req.SortDirection == "" {
		req.SortDirection = types.SortDescending
	}

	result := analytics.FilterAndSort(req.Paths, req.Criteria, req.SortBy, req.SortDirection)

	errors.SendSuccess(w, map[string]interface{}{
		"paths": result,
		"total": len(result),
	})
}

// handleSystemStatus returns host and process health metrics
func handleSystemStatus(w http.ResponseWriter, r *http.Request, engine *Engine) {
	status := map[string]interface{}{
		"uptime_seconds": int(time.Since(engine.startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"ws_connections": engine.WSManager.GetConnectionCount(),
		"timestamp":      time.Now().Format(time.RFC3339),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = fmt.Sprintf("%.1f", percents[0])
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory_percent"] = fmt.Sprintf("%.1f", vm.UsedPercent)
		status["memory_total_mb"] = vm.Total / 1024 / 1024
	}

	if info, err := host.Info(); err == nil {
		status["host_uptime_seconds"] = info.Uptime
		status["platform"] = info.Platform
	}

	if last, lastRun := engine.LastGraph(); last != nil {
		status["last_enhancement"] = lastRun.Format(time.RFC3339)
		status["last_node_count"] = len(last.Nodes)
		status["last_edge_count"] = len(last.Edges)
	}

	errors.SendSuccess(w, status)
}
