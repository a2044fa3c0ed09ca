// Package mcp exposes the change classifier as MCP tools over stdio, so
// agents can request an analysis or a rendered description without shelling
// out to the CLI.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/shipit-cli/shipit/internal/classify"
	"github.com/shipit-cli/shipit/internal/report"
)

// Server exposes the classifier and renderer as MCP tools. Both tools are
// pure functions over their arguments, so the server holds no state.
type Server struct{}

// NewServer creates the MCP server wrapper.
func NewServer() *Server {
	return &Server{}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("shipit", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.analyzeChangesTool())
	srv.AddTool(s.generateDescriptionTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// shipit_analyze_changes
func (s *Server) analyzeChangesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("shipit_analyze_changes",
		mcp.WithDescription("Classify a change set by severity and impact. Returns JSON with metrics, severity, reasoning, impact_areas, and risks."),
		mcp.WithString("diff", mcp.Description("Unified diff text")),
		mcp.WithString("commits", mcp.Description("Commit subjects, newline-separated")),
		mcp.WithString("stat", mcp.Description("git diff --stat output")),
	)
	return tool, s.handleAnalyzeChanges
}

func (s *Server) handleAnalyzeChanges(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := inputFromRequest(request)
	if strings.TrimSpace(in.Diff) == "" {
		return mcp.NewToolResultError("nothing to analyze: diff is empty"), nil
	}

	data, err := json.Marshal(classify.Classify(in))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal classification: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// shipit_generate_description
func (s *Server) generateDescriptionTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("shipit_generate_description",
		mcp.WithDescription("Generate a pull request description in markdown from a diff, commit subjects, and stat text."),
		mcp.WithString("diff", mcp.Description("Unified diff text")),
		mcp.WithString("commits", mcp.Description("Commit subjects, newline-separated")),
		mcp.WithString("stat", mcp.Description("git diff --stat output")),
	)
	return tool, s.handleGenerateDescription
}

func (s *Server) handleGenerateDescription(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := inputFromRequest(request)
	if strings.TrimSpace(in.Diff) == "" {
		return mcp.NewToolResultError("nothing to describe: diff is empty"), nil
	}

	c := classify.Classify(in)
	body := report.Render(splitSubjects(in.Commits), in.Stat, c)
	return mcp.NewToolResultText(body), nil
}

func inputFromRequest(request mcp.CallToolRequest) classify.Input {
	return classify.Input{
		Diff:    request.GetString("diff", ""),
		Commits: request.GetString("commits", ""),
		Stat:    request.GetString("stat", ""),
	}
}

func splitSubjects(commits string) []string {
	var subjects []string
	for _, line := range strings.Split(commits, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			subjects = append(subjects, trimmed)
		}
	}
	return subjects
}
