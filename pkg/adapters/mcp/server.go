// Package mcp exposes the workflow engine as an MCP server so agent hosts
// can build, validate, and score workflow graphs as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nvalerio/flowforge"
	"github.com/nvalerio/flowforge/pkg/assemble"
	"github.com/nvalerio/flowforge/pkg/domain"
	"github.com/nvalerio/flowforge/pkg/score"
	"github.com/nvalerio/flowforge/pkg/validate"
)

// BuildResponse pairs a composed workflow with its quality report. It is
// shared by the build tool and the HTTP adapter's generate endpoint shape.
type BuildResponse struct {
	Workflow *domain.Workflow `json:"workflow"`
	Report   score.Report     `json:"report"`
}

// ValidateResponse carries structural findings plus the quality report.
type ValidateResponse struct {
	Findings validate.GraphResult `json:"findings"`
	Report   score.Report         `json:"report"`
}

// Server wraps the engine and exposes it over MCP.
type Server struct {
	engine    *flowforge.Engine
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server instance around the engine.
func NewServer(engine *flowforge.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("flowforge-mcp", strings.TrimSpace(flowforge.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: build_workflow
	buildTool := mcp.NewTool("build_workflow",
		mcp.WithDescription("Deterministically compose a workflow graph from a flat requirements record, repair it, and score it."),
		mcp.WithString("requirements", mcp.Required(), mcp.Description("JSON object with the requirements record (trigger, outputs, needs_* flags, ...)")),
		mcp.WithString("tier", mcp.Description("Complexity tier: light, standard, or heavy (default standard)")),
		mcp.WithOutputSchema[BuildResponse](),
	)
	s.mcpServer.AddTool(buildTool, mcp.NewStructuredToolHandler(s.handleBuild))

	// TOOL: validate_workflow
	validateTool := mcp.NewTool("validate_workflow",
		mcp.WithDescription("Run structural validation and quality scoring on an existing workflow graph."),
		mcp.WithString("workflow", mcp.Required(), mcp.Description("Workflow graph as JSON")),
		mcp.WithString("tier", mcp.Description("Complexity tier for scoring (default standard)")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: score_workflow
	scoreTool := mcp.NewTool("score_workflow",
		mcp.WithDescription("Score a workflow graph against the seven weighted quality checks and return the breakdown with feedback."),
		mcp.WithString("workflow", mcp.Required(), mcp.Description("Workflow graph as JSON")),
		mcp.WithString("tier", mcp.Description("Complexity tier for scoring (default standard)")),
		mcp.WithOutputSchema[score.Report](),
	)
	s.mcpServer.AddTool(scoreTool, mcp.NewStructuredToolHandler(s.handleScore))
}

func (s *Server) handleBuild(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BuildResponse, error) {
	raw, _ := args["requirements"].(string)
	var reqMap map[string]any
	if err := json.Unmarshal([]byte(raw), &reqMap); err != nil {
		return BuildResponse{}, fmt.Errorf("requirements must be a JSON object: %w", err)
	}

	req, err := assemble.Decode(reqMap)
	if err != nil {
		return BuildResponse{}, err
	}
	tier, err := parseTierArg(args)
	if err != nil {
		return BuildResponse{}, err
	}

	wf := s.engine.Repairer.Repair(s.engine.Builder.Build(req))
	return BuildResponse{
		Workflow: wf,
		Report:   s.engine.Scorer.Score(wf, tier),
	}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	wf, err := parseWorkflowArg(args)
	if err != nil {
		return ValidateResponse{}, err
	}
	tier, err := parseTierArg(args)
	if err != nil {
		return ValidateResponse{}, err
	}
	return ValidateResponse{
		Findings: s.engine.Validator.ValidateGraph(wf),
		Report:   s.engine.Scorer.Score(wf, tier),
	}, nil
}

func (s *Server) handleScore(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (score.Report, error) {
	wf, err := parseWorkflowArg(args)
	if err != nil {
		return score.Report{}, err
	}
	tier, err := parseTierArg(args)
	if err != nil {
		return score.Report{}, err
	}
	return s.engine.Scorer.Score(wf, tier), nil
}

func parseWorkflowArg(args map[string]interface{}) (*domain.Workflow, error) {
	raw, _ := args["workflow"].(string)
	var wf domain.Workflow
	if err := json.Unmarshal([]byte(raw), &wf); err != nil {
		return nil, fmt.Errorf("workflow must be a JSON graph: %w", err)
	}
	return &wf, nil
}

func parseTierArg(args map[string]interface{}) (score.Tier, error) {
	raw, _ := args["tier"].(string)
	tier, err := score.ParseTier(raw)
	if err != nil {
		return "", fmt.Errorf("tier %q: %w", raw, err)
	}
	return tier, nil
}
