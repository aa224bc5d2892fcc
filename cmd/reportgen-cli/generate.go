package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportgen/internal/manifest"
	"github.com/goliatone/go-reportgen/internal/output"
)

type generateFlags struct {
	data string
	out  string
}

func newRenderCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "render [<report>]",
		Short: "Render a report to HTML",
		Long: `Render a report template against a data file and write the markup.

Examples:
  reportgen render invoice --data invoice.json
  reportgen render invoice --data invoice.yaml --out invoice.html
  reportgen render                  # pick a report interactively`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, flags, false)
		},
	}
	addGenerateFlags(cmd, &flags)
	return cmd
}

func newConvertCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "convert [<report>]",
		Short: "Render a report and run its converter",
		Long: `Render a report and pass the markup through the converter named in the
manifest (pdf, sanitize or html).

Examples:
  reportgen convert invoice --data invoice.json --out invoice.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, flags, true)
		},
	}
	addGenerateFlags(cmd, &flags)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command, flags *generateFlags) {
	cmd.Flags().StringVarP(&flags.data, "data", "d", "", "Model data file (JSON or YAML)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output file (stdout if empty)")
}

func runGenerate(cmd *cobra.Command, args []string, flags generateFlags, convert bool) error {
	printer := newPrinter(cmd)
	fail := func(err *output.ExitError) error {
		printer.Error(err)
		return err
	}

	m, err := manifest.Load(manifestPath(cmd))
	if err != nil {
		return fail(output.NewUserErrorWithCause("cannot load manifest", err))
	}

	id, err := resolveReportID(cmd, m, args)
	if err != nil {
		return fail(output.NewUserErrorWithCause("no report selected", err))
	}
	def, ok := m.Report(id)
	if !ok {
		return fail(output.NewUserError("unknown report \"" + id + "\""))
	}

	model, err := loadData(flags.data)
	if err != nil {
		return fail(output.NewUserErrorWithCause("cannot read data", err))
	}

	builder, err := buildReport(cmd.Context(), def)
	if err != nil {
		return fail(output.NewUserErrorWithCause("cannot configure report \""+id+"\"", err))
	}

	var result []byte
	if convert {
		result, err = builder.Convert(model)
	} else {
		var markup string
		markup, err = builder.Render(model)
		result = []byte(markup)
	}
	if err != nil {
		return fail(output.NewSystemErrorWithCause("report \""+id+"\" failed", err))
	}

	if flags.out == "" {
		if _, err := printer.Write(result); err != nil {
			return fail(output.NewSystemErrorWithCause("cannot write output", err))
		}
		return nil
	}

	if err := os.WriteFile(flags.out, result, 0o644); err != nil {
		return fail(output.NewSystemErrorWithCause("cannot write output", err))
	}
	return printer.Success(map[string]any{
		"message": "Report " + id + " written to " + flags.out,
		"report":  id,
		"path":    flags.out,
		"bytes":   len(result),
	})
}
