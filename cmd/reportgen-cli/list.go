package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportgen/internal/manifest"
	"github.com/goliatone/go-reportgen/internal/output"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the reports declared in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

type listedReport struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Engine      string `json:"engine"`
	Converter   string `json:"converter,omitempty"`
	Template    string `json:"template"`
}

func runList(cmd *cobra.Command) error {
	printer := newPrinter(cmd)

	m, err := manifest.Load(manifestPath(cmd))
	if err != nil {
		exitErr := output.NewUserErrorWithCause("cannot load manifest", err)
		printer.Error(exitErr)
		return exitErr
	}

	reports := m.Reports()
	if printer.IsJSON() {
		listed := make([]listedReport, 0, len(reports))
		for _, r := range reports {
			listed = append(listed, listedReport{
				ID:          r.ID,
				Description: r.Description,
				Engine:      r.Engine,
				Converter:   r.Converter,
				Template:    r.Template,
			})
		}
		return printer.WriteJSON(map[string]any{"reports": listed})
	}

	if len(reports) == 0 {
		printer.Warn("manifest %s declares no reports", m.Path)
		return nil
	}

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{r.ID, r.Engine, r.Converter, r.Description})
	}
	printer.Table([]string{"ID", "ENGINE", "CONVERTER", "DESCRIPTION"}, rows)
	return nil
}
