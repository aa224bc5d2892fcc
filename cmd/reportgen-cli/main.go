// Package main provides the entry point for the reportgen CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportgen/internal/output"
)

// Build info set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

const defaultManifest = "reports.yaml"

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

func manifestPath(cmd *cobra.Command) string {
	flag := cmd.Flags().Lookup("manifest")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("manifest")
	}
	if flag == nil || flag.Value.String() == "" {
		return defaultManifest
	}
	return flag.Value.String()
}

func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	return output.NewPrinter(out, isJSONMode(cmd), output.IsTTY(out)).WithStderr(cmd.ErrOrStderr())
}

func buildVersion() string {
	if commit == "none" {
		return version
	}
	short := commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s)", version, short)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportgen",
		Short: "Render template driven reports",
		Long: `reportgen renders the reports declared in a manifest file.

Each report combines a body template with an optional layout, stylesheet and
helper macros, and can be converted to PDF or sanitized HTML.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("manifest", "m", defaultManifest, "Report manifest (YAML or JSON)")

	lipgloss.SetHasDarkBackground(true)

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newConvertCmd())
	return cmd
}
