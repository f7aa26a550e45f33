package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	configAdapter "github.com/sniffgate/sniffgate/internal/adapters/outbound/config"
	"github.com/sniffgate/sniffgate/internal/adapters/outbound/gitindex"
	"github.com/sniffgate/sniffgate/internal/adapters/outbound/phpcs"
	"github.com/sniffgate/sniffgate/internal/adapters/outbound/toolchain"
	"github.com/sniffgate/sniffgate/internal/application"
	"github.com/sniffgate/sniffgate/internal/domain"
	"github.com/sniffgate/sniffgate/internal/logging"
)

// services bundles the application services the tool handlers share.
type services struct {
	check     *application.CheckService
	fix       *application.FixService
	precommit *application.PreCommitService
}

// buildServices wires config, toolchain, and the outbound adapters into
// the application services.
func buildServices(ctx context.Context, projectPath string) (*services, error) {
	cfg, err := configAdapter.New().Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	env, err := toolchain.Discover(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("toolchain discovery: %w", err)
	}

	logger := logging.New("warn")
	analyzer := phpcs.NewAnalyzer(env.PHPCSPath, cfg.CheckTimeout())
	fixer := phpcs.NewFixer(env.PHPCBFPath, analyzer, cfg.FixTimeout())
	git := gitindex.New()

	return &services{
		check:     application.NewCheckService(analyzer, git, cfg, logger),
		fix:       application.NewFixService(fixer, cfg, logger),
		precommit: application.NewPreCommitService(git, analyzer, fixer, cfg, logger),
	}, nil
}

// registerTools registers all sniffgate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svcs *services) {
	s.AddTool(
		mcplib.NewTool("sniffgate_check_staged",
			mcplib.WithDescription("Run phpcs over the currently staged files and return the violation report as JSON"),
			mcplib.WithString("path", mcplib.Description("Working directory override (defaults to the server's project path)")),
			mcplib.WithString("standard", mcplib.Description("Ruleset override (e.g. PSR12)")),
		),
		handleCheckStaged(projectPath, svcs),
	)

	s.AddTool(
		mcplib.NewTool("sniffgate_check_file",
			mcplib.WithDescription("Run phpcs over a single file and return the violation report as JSON"),
			mcplib.WithString("file", mcplib.Required(), mcplib.Description("File to check, relative to the working directory")),
			mcplib.WithString("path", mcplib.Description("Working directory override")),
			mcplib.WithString("standard", mcplib.Description("Ruleset override")),
		),
		handleCheckFile(projectPath, svcs),
	)

	s.AddTool(
		mcplib.NewTool("sniffgate_check_directory",
			mcplib.WithDescription("Run phpcs recursively over a directory and return the violation report as JSON"),
			mcplib.WithString("directory", mcplib.Required(), mcplib.Description("Directory to check, relative to the working directory")),
			mcplib.WithString("path", mcplib.Description("Working directory override")),
			mcplib.WithString("standard", mcplib.Description("Ruleset override")),
		),
		handleCheckDirectory(projectPath, svcs),
	)

	s.AddTool(
		mcplib.NewTool("sniffgate_fix_file",
			mcplib.WithDescription("Run phpcbf on a single file, re-check it, and return what was fixed and what remains"),
			mcplib.WithString("file", mcplib.Required(), mcplib.Description("File to fix, relative to the working directory")),
			mcplib.WithString("path", mcplib.Description("Working directory override")),
			mcplib.WithString("standard", mcplib.Description("Ruleset override")),
		),
		handleFixFile(projectPath, svcs),
	)

	s.AddTool(
		mcplib.NewTool("sniffgate_run_precommit",
			mcplib.WithDescription("Fix and verify all staged files, decide whether the commit may proceed, and optionally re-stage fixed files"),
			mcplib.WithString("path", mcplib.Description("Working directory override")),
			mcplib.WithString("standard", mcplib.Description("Ruleset override")),
			mcplib.WithBoolean("restage", mcplib.Description("Re-add fixed files to the index (default true)")),
		),
		handleRunPreCommit(projectPath, svcs),
	)
}

func handleCheckStaged(projectPath string, svcs *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dir := workingDir(request, projectPath)
		standard, _ := request.GetArguments()["standard"].(string)

		report, err := svcs.check.CheckStaged(ctx, dir, standard)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return reportResult(report)
	}
}

func handleCheckFile(projectPath string, svcs *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		dir := workingDir(request, projectPath)
		standard, _ := request.GetArguments()["standard"].(string)

		report, err := svcs.check.CheckFile(ctx, dir, file, standard)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return reportResult(report)
	}
}

func handleCheckDirectory(projectPath string, svcs *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		directory, err := request.RequireString("directory")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		dir := workingDir(request, projectPath)
		standard, _ := request.GetArguments()["standard"].(string)

		report, err := svcs.check.CheckDirectory(ctx, dir, directory, standard)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return reportResult(report)
	}
}

func handleFixFile(projectPath string, svcs *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		dir := workingDir(request, projectPath)
		standard, _ := request.GetArguments()["standard"].(string)

		result, err := svcs.fix.FixFile(ctx, dir, file, standard)
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleRunPreCommit(projectPath string, svcs *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dir := workingDir(request, projectPath)
		args := request.GetArguments()
		standard, _ := args["standard"].(string)

		restage := true
		if v, ok := args["restage"].(bool); ok {
			restage = v
		}

		result, err := svcs.precommit.Run(ctx, dir, domain.PreCommitOptions{
			Standard: standard,
			Restage:  restage,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("pre-commit failed: %v", err)), nil
		}

		res, jerr := jsonResult(result)
		if jerr != nil {
			return nil, jerr
		}
		res.IsError = !result.CanCommit
		return res, nil
	}
}

func workingDir(request mcplib.CallToolRequest, fallback string) string {
	if path, ok := request.GetArguments()["path"].(string); ok && path != "" {
		return path
	}
	return fallback
}

// reportResult serializes a BatchReport, flagging the result as an error
// exactly when the report blocks the commit.
func reportResult(report *domain.BatchReport) (*mcplib.CallToolResult, error) {
	res, err := jsonResult(report)
	if err != nil {
		return nil, err
	}
	res.IsError = !report.CanCommit
	return res, nil
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
