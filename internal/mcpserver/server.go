// Package mcpserver exposes the review tools over the Model Context Protocol.
package mcpserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
	"github.com/ludo-technologies/pyreview/internal/version"
)

// PathArgument is the single argument every review tool takes
const PathArgument = "path"

const instructions = `This server reviews Python source code.

Each tool takes the path to a Python file or directory and returns a markdown report:
- analyze_code_quality: code smells, complexity metrics and a quality score
- analyze_design_patterns: design patterns and anti-patterns with confidence
- analyze_solid_principles: SOLID principle violations and per-principle scores`

// ToolFor builds the MCP definition and handler of one review tool. Argument
// errors become tool errors; a rejected path is part of the text result.
func ToolFor(tool domain.ReviewTool, logger *slog.Logger) (mcp.Tool, server.ToolHandlerFunc) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("tool", tool.Name())

	definition := mcp.NewTool(tool.Name(),
		mcp.WithDescription(tool.Description()),
		mcp.WithString(PathArgument,
			mcp.Required(),
			mcp.Description("Path to a Python file or directory"),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := request.RequireString(PathArgument)
		if err != nil {
			logger.Warn("invalid tool arguments", slog.String("error", err.Error()))
			return mcp.NewToolResultError(err.Error()), nil
		}

		callLogger := logger.With("call_id", uuid.NewString(), "path", path)
		callLogger.Info("tool call started")
		start := time.Now()

		report := tool.Analyze(ctx, path)

		callLogger.Info("tool call finished", slog.Duration("duration", time.Since(start)))
		return mcp.NewToolResultText(report), nil
	}

	return definition, handler
}

// NewServer creates an MCP server with one tool per review tool
func NewServer(tools []domain.ReviewTool, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	hooks := &server.Hooks{}
	hooks.AddAfterInitialize(func(ctx context.Context, id any, message *mcp.InitializeRequest, result *mcp.InitializeResult) {
		logger.Debug("client initialized", slog.String("client", message.Params.ClientInfo.Name))
	})
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		logger.Error("request failed", slog.String("method", string(method)), slog.String("error", err.Error()))
	})

	s := server.NewMCPServer(
		constants.ToolName,
		version.GetVersion(),
		server.WithToolCapabilities(false),
		server.WithHooks(hooks),
		server.WithInstructions(instructions),
	)

	for _, tool := range tools {
		s.AddTool(ToolFor(tool, logger))
	}
	return s
}

// ServeStdio serves s on stdin/stdout until the input is closed
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
