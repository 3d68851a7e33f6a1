// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"philang/internal/config"
	"philang/internal/issue"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage phi configuration",
	Long: `Manage phi configuration.

Configuration is stored in:
  - Linux: ~/.config/phi/config.cue
  - macOS: ~/Library/Application Support/phi/config.cue
  - Windows: %APPDATA%\phi\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateDefaultConfig(); err != nil {
				printIssue(issue.ConfigLoadFailedId)
				return err
			}
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("created ")+
				filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	keyStyle := NameStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	cfgDir, dirErr := config.ConfigDir()
	cfgPath := ""
	if dirErr == nil {
		cfgPath = filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	}
	if cfgPath != "" && fileExistsCheck(cfgPath) {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("validation.max_probe_depth"),
		valueStyle.Render(fmt.Sprintf("%d", cfg.Validation.MaxProbeDepth)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("validation.trail"),
		valueStyle.Render(fmt.Sprintf("%v", cfg.Validation.Trail)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("ui.color_scheme"),
		valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("ui.verbose"),
		valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	if len(cfg.Sources) > 0 {
		fmt.Fprintf(out, "%s:\n", keyStyle.Render("sources"))
		for _, src := range cfg.Sources {
			fmt.Fprintf(out, "  - %s\n", valueStyle.Render(src))
		}
	}
	return nil
}

func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
