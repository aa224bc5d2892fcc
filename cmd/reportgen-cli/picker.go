package main

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goliatone/go-reportgen/internal/manifest"
)

var errAborted = errors.New("selection aborted")

// picker chooses one of options. Tests replace it.
var picker = surveyPick

// interactive reports whether stdin can drive a prompt.
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func resolveReportID(cmd *cobra.Command, m *manifest.Manifest, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	ids := m.IDs()
	switch {
	case len(ids) == 0:
		return "", errors.New("manifest declares no reports")
	case isJSONMode(cmd) || !interactive():
		return "", errors.New("report id is required when not running in a terminal")
	}
	return picker("Report to generate:", ids)
}

func surveyPick(message string, options []string) (string, error) {
	var out string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errAborted
		}
		return "", err
	}
	return out, nil
}
