package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	spec "github.com/nihei9/ll1/spec/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print a report in a readable format",
		Example: `  ll1 show grammar-report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	report, err := readReport(args[0])
	if err != nil {
		return err
	}

	err = writeReport(os.Stdout, report)
	if err != nil {
		return err
	}

	return nil
}

func readReport(path string) (*spec.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	report := &spec.Report{}
	err = json.Unmarshal(d, report)
	if err != nil {
		return nil, err
	}

	return report, nil
}

const reportTemplate = `# Conflicts

{{ printConflictSummary }}
{{ range printConflicts -}}
{{ . }}
{{ end }}
# Terminals

{{ range slice .Terminals 1 -}}
{{ printTerminal . }}
{{ end }}
# Non-terminals

{{ range slice .NonTerminals 1 -}}
{{ printNonTerminal . }}
{{ end }}
# Productions

{{ range slice .Productions 1 -}}
{{ printProduction . }}
{{ end }}
# FIRST / FOLLOW

{{ printFirstFollow }}

# Prediction table

{{ printTable }}
# Table digest

{{ .TableDigest }}
`

func writeReport(w io.Writer, report *spec.Report) error {
	v := &reportView{
		report: report,
	}

	fns := template.FuncMap{
		"printConflictSummary": v.conflictSummary,
		"printConflicts":       v.conflicts,
		"printTerminal": func(term *spec.Terminal) string {
			var attrs []string
			if term.Pattern != "" {
				attrs = append(attrs, fmt.Sprintf("%q", term.Pattern))
			}
			if term.Skip {
				attrs = append(attrs, "skip")
			}
			if len(attrs) == 0 {
				return fmt.Sprintf("%4v %v", term.Number, term.Name)
			}
			return fmt.Sprintf("%4v %v (%v)", term.Number, term.Name, strings.Join(attrs, ", "))
		},
		"printNonTerminal": func(nonTerm *spec.NonTerminal) string {
			return fmt.Sprintf("%4v %v", nonTerm.Number, nonTerm.Name)
		},
		"printProduction": func(prod *spec.Production) string {
			return fmt.Sprintf("%4v %v", prod.Number, v.production(prod.Number))
		},
		"printFirstFollow": func() string {
			return v.firstFollowTable(120)
		},
		"printTable": v.tableList,
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	err = tmpl.Execute(w, report)
	if err != nil {
		return err
	}

	return nil
}
