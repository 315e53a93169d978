package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pyreview/internal/config"
	"github.com/ludo-technologies/pyreview/internal/constants"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a pyreview configuration file",
		Long: `Generate a documented pyreview configuration file with default thresholds.

By default, creates .pyreview.yaml in the current directory. Use
--strictness to pick a threshold profile or --interactive for a guided setup.

Examples:
  # Create .pyreview.yaml in current directory
  pyreview init

  # Custom output path
  pyreview init --config configs/pyreview.yaml

  # Overwrite existing file with strict thresholds
  pyreview init --force --strictness strict

  # Interactive setup wizard
  pyreview init --interactive`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().String("strictness", string(config.StrictnessStandard),
		"Threshold profile: standard, relaxed, strict")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	level, _ := cmd.Flags().GetString("strictness")
	interactive, _ := cmd.Flags().GetBool("interactive")

	strictness, err := config.ParseStrictness(level)
	if err != nil {
		return err
	}

	if interactive {
		strictness, configPath, err = runInteractiveSetup(strictness, configPath)
		if err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	content := config.GetFullConfigTemplate(strictness)
	if minimal {
		content = config.GetMinimalConfigTemplate()
	}

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", color.GreenString("Created"), displayPath)
	fmt.Fprintln(out, "\nRun 'pyreview analyze .' to review your project.")
	return nil
}

func runInteractiveSetup(current config.Strictness, defaultConfigPath string) (config.Strictness, string, error) {
	fmt.Println()
	fmt.Println("pyreview Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	descriptions := map[config.Strictness]string{
		config.StrictnessStandard: "Balanced thresholds for most projects",
		config.StrictnessRelaxed:  "Higher thresholds, fewer findings",
		config.StrictnessStrict:   "Lower thresholds, CI enforcement",
	}

	type level struct {
		Label       string
		Description string
		Value       config.Strictness
	}
	levels := make([]level, 0, len(config.Strictnesses))
	cursor := 0
	for i, s := range config.Strictnesses {
		label := string(s)
		if s == config.StrictnessStandard {
			label += " (recommended)"
		}
		if s == current {
			cursor = i
		}
		levels = append(levels, level{Label: label, Description: descriptions[s], Value: s})
	}

	strictnessPrompt := promptui.Select{
		Label: "How strict should the review be?",
		Items: levels,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
			Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
			Selected: "\U00002705 {{ .Label | green }}",
		},
		CursorPos: cursor,
	}

	idx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}
	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	return levels[idx].Value, outputPath, nil
}
