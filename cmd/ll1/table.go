package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tableFlags = struct {
	matrix *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "table [grammar file path]",
		Short: "Print the LL(1) prediction table of a grammar",
		Long: `table prints the non-empty cells of the prediction table, or the whole table as pages of
columns with --matrix. When the grammar file is omitted, the built-in grammar of Lockbixo is used.`,
		Example: `  ll1 table grammar.ll1 --matrix`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTable,
	}
	tableFlags.matrix = cmd.Flags().Bool("matrix", false, "print the table as a matrix")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	_, report, err := compileGrammar(grmPath)
	if err != nil {
		return err
	}

	v := &reportView{
		report: report,
	}
	if *tableFlags.matrix {
		fmt.Fprintln(os.Stdout, v.tableMatrix(cfg.MatrixColumns, cfg.MatrixCellWidth))
	} else {
		fmt.Fprint(os.Stdout, v.tableList())
	}
	fmt.Fprintln(os.Stdout, v.conflictSummary())
	for _, c := range v.conflicts() {
		fmt.Fprintln(os.Stdout, c)
	}
	return nil
}
