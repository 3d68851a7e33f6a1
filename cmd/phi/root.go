// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for phi.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"philang/internal/config"
	"philang/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// srcFiles are explicit Phi source files, overriding manifest and config
	srcFiles []string

	// cfg is the loaded configuration, populated by initRootConfig.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "phi",
		Short: "Rule-governed validation for Phi programs",
		Long: TitleStyle.Render("phi") + SubtitleStyle.Render(" - rule-governed validation for Phi programs") + `

phi loads Phi modules, composes them through their import graph, and
validates transformation invocations against every rule a module declares
or inherits. Hard rules reject an invocation outright; soft rules may be
deactivated for a single invocation.

Modules are defined in '.phi' files and composed with acyclic imports.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Write your modules in one or more .phi files
  2. List the files in a phiproj.toml manifest
  3. Validate invocations with: phi validate <transformation> <operands>

` + SubtitleStyle.Render("Examples:") + `
  phi check                          Load and check the project sources
  phi graph                          Show modules and their import graph
  phi graph --module Finance         Show everything Finance can see
  phi validate divide 10 2 --module Finance
  phi config show                    Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/phi/config.cue)")
	rootCmd.PersistentFlags().StringArrayVar(&srcFiles, "src", nil, "Phi source file (repeatable; overrides manifest and config)")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	loaded, err := config.NewProvider().Load(context.Background(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded != nil {
		cfg = loaded
	}

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}

	initLogging()
}

// initLogging routes slog through a charmbracelet handler so package-level
// debug traces share the CLI's styling.
func initLogging() {
	handler := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "phi",
	})
	if verbose {
		handler.SetLevel(log.DebugLevel)
	} else {
		handler.SetLevel(log.WarnLevel)
	}
	slog.SetDefault(slog.New(handler))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
