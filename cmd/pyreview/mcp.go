package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pyreview/app"
	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/mcpserver"
	"github.com/ludo-technologies/pyreview/service"
)

func mcpCmd() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analyzers as MCP tools over stdio",
		Long: `Serve the three analyzers as Model Context Protocol tools on stdin/stdout.

Tools:
  analyze_code_quality      code smells, metrics and quality score
  analyze_design_patterns   design patterns and anti-patterns
  analyze_solid_principles  SOLID principle violations and scores

Each tool takes a "path" argument naming a Python file or directory.
Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := service.NewConfigurationLoader().Load(configPath, "")
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), verbose)

			tools, err := reviewTools(cfg, logger)
			if err != nil {
				return err
			}

			logger.Info("starting MCP server", "tools", len(tools))
			return mcpserver.ServeStdio(mcpserver.NewServer(tools, logger))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

// reviewTools builds the three review tools over a shared file collector
func reviewTools(cfg *config.Config, logger *slog.Logger) ([]domain.ReviewTool, error) {
	quality, err := service.NewQualityService(cfg, logger)
	if err != nil {
		return nil, err
	}
	collector := app.NewFileHelper(
		app.WithExcludePatterns(cfg.Analysis.ExcludePatterns),
		app.WithGitignore(cfg.Analysis.RespectGitignore),
		app.WithLogger(logger),
	)
	return []domain.ReviewTool{
		service.NewQualityTool(quality, collector),
		service.NewPatternTool(service.NewPatternService(cfg, logger), collector),
		service.NewPrincipleTool(service.NewPrincipleService(cfg, logger), collector),
	}, nil
}
