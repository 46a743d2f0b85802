package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nihei9/ll1/driver"
	"github.com/nihei9/ll1/lang/lockbixo"
	gspec "github.com/nihei9/ll1/spec/grammar"
)

// errRejected is returned when a source is syntactically wrong. The reason has already been
// printed, so the main function only sets the exit status.
var errRejected = errors.New("rejected")

var parseFlags = struct {
	grammar         *string
	err             *bool
	tokens          *bool
	trace           *bool
	traceLimit      *int
	dumpFirstFollow *bool
	dumpTable       *bool
	dumpTableMatrix *bool
	strict          *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse [source file path]",
		Short: "Parse a source with the predictive parser",
		Long: `parse tokenizes a source and runs the table-driven predictive parser over it. By default the
built-in grammar and scanner of Lockbixo are used, and the built-in example is parsed when the source
is omitted. With --grammar, a grammar file is compiled on the fly and the source is tokenized with
the lexical patterns of its terminals.`,
		Example: `  ll1 parse program.lbx --trace
  ll1 parse --err
  ll1 parse expr.txt -g expr.ll1 --tokens`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	parseFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (default the built-in grammar of Lockbixo)")
	parseFlags.err = cmd.Flags().Bool("err", false, "parse the built-in example containing a syntax error")
	parseFlags.tokens = cmd.Flags().Bool("tokens", false, "print the tokens of the source")
	parseFlags.trace = cmd.Flags().Bool("trace", false, "print each step of the parse")
	parseFlags.traceLimit = cmd.Flags().Int("trace-limit", -1, "the number of trace rows to print, 0 prints all (default trace_limit of the configuration)")
	parseFlags.dumpFirstFollow = cmd.Flags().Bool("dump-first-follow", false, "print FIRST and FOLLOW of the grammar")
	parseFlags.dumpTable = cmd.Flags().Bool("dump-table", false, "print the prediction table as a list")
	parseFlags.dumpTableMatrix = cmd.Flags().Bool("dump-table-matrix", false, "print the prediction table as a matrix")
	parseFlags.strict = cmd.Flags().Bool("strict", false, "refuse to parse when the grammar is not LL(1)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && *parseFlags.err {
		return fmt.Errorf("You cannot pass a source file and --err at the same time")
	}

	srcName, src, err := readSource(args)
	if err != nil {
		return err
	}

	cg, report, err := compileGrammar(*parseFlags.grammar)
	if err != nil {
		return err
	}

	v := &reportView{
		report: report,
	}
	if *parseFlags.dumpFirstFollow {
		fmt.Fprintln(os.Stdout, v.firstFollowTable(120))
	}
	if *parseFlags.dumpTable {
		fmt.Fprint(os.Stdout, v.tableList())
	}
	if *parseFlags.dumpTableMatrix {
		fmt.Fprintln(os.Stdout, v.tableMatrix(cfg.MatrixColumns, cfg.MatrixCellWidth))
	}
	if !report.LL1() {
		for _, c := range v.conflicts() {
			fmt.Fprintln(os.Stderr, c)
		}
		if *parseFlags.strict {
			return fmt.Errorf("%v Parsing was refused because --strict is enabled.", v.conflictSummary())
		}
		pterm.Warning.Println(fmt.Sprintf("%v Each conflicting cell keeps the production declared first.", v.conflictSummary()))
	}

	gram := driver.NewGrammar(cg)
	builtin := *parseFlags.grammar == ""

	if *parseFlags.tokens {
		toks, err := scanTokens(cg, gram, src, builtin)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, formatTokens(toks))
	}

	toks, err := newTokenStream(cg, gram, src, builtin)
	if err != nil {
		return err
	}
	var opts []driver.ParserOption
	if *parseFlags.trace {
		opts = append(opts, driver.TraceLimit(cfg.MaxTraceEntries))
	} else {
		opts = append(opts, driver.DisableTrace())
	}
	p, err := driver.NewParser(gram, toks, opts...)
	if err != nil {
		return err
	}
	ok, err := p.Parse()

	if *parseFlags.trace {
		limit := cfg.TraceLimit
		if *parseFlags.traceLimit >= 0 {
			limit = *parseFlags.traceLimit
		}
		fmt.Fprintln(os.Stdout, driver.FormatTrace(p.Trace(), limit, 160))
		if p.TraceTruncated() {
			fmt.Fprintf(os.Stdout, "the trace was truncated at %v entries (max_trace_entries)\n", cfg.MaxTraceEntries)
		}
	}

	return printVerdict(srcName, ok, err)
}

func printVerdict(srcName string, ok bool, err error) error {
	if err != nil {
		var synErr *driver.SyntaxError
		if errors.As(err, &synErr) {
			pterm.Error.Println(fmt.Sprintf("%v:%v", srcName, synErr))
			return errRejected
		}
		return err
	}
	if !ok {
		pterm.Error.Println(fmt.Sprintf("%v: the parser stopped without accepting the source", srcName))
		return errRejected
	}
	pterm.Success.Println(fmt.Sprintf("%v: accepted", srcName))
	return nil
}

func readSource(args []string) (string, string, error) {
	switch {
	case len(args) > 0:
		src, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("Cannot read the source file %s: %w", args[0], err)
		}
		return args[0], string(src), nil
	case *parseFlags.err:
		return "<example err>", lockbixo.ExampleErr, nil
	}
	return "<example ok>", lockbixo.ExampleOK, nil
}

// newTokenStream tokenizes a source with the scanner of Lockbixo when builtin is true, and with
// the lexical patterns of the compiled grammar otherwise.
func newTokenStream(cg *gspec.CompiledGrammar, gram driver.Grammar, src string, builtin bool) (driver.TokenStream, error) {
	if !builtin {
		return driver.NewTokenStream(cg, strings.NewReader(src))
	}
	toks, err := lockbixo.Scan(src)
	if err != nil {
		return nil, err
	}
	return driver.NewSliceTokenStream(gram, toks)
}

func scanTokens(cg *gspec.CompiledGrammar, gram driver.Grammar, src string, builtin bool) ([]*driver.Token, error) {
	if builtin {
		return lockbixo.Scan(src)
	}
	ts, err := driver.NewTokenStream(cg, strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	var toks []*driver.Token
	for {
		tok, err := ts.Next()
		if err != nil {
			return nil, err
		}
		row, col := tok.Position()
		kind := "<invalid>"
		switch {
		case tok.EOF():
			kind = gram.Terminal(gram.EOF())
		case !tok.Invalid():
			kind = gram.Terminal(tok.TerminalID())
		}
		toks = append(toks, &driver.Token{
			Kind:   kind,
			Lexeme: string(tok.Lexeme()),
			Row:    row,
			Col:    col,
		})
		if tok.EOF() {
			return toks, nil
		}
	}
}

func formatTokens(toks []*driver.Token) string {
	data := [][]string{
		{"#", "Kind", "Lexeme", "Position"},
	}
	for i, tok := range toks {
		data = append(data, []string{
			fmt.Sprintf("%v", i+1),
			tok.Kind,
			fmt.Sprintf("%q", tok.Lexeme),
			fmt.Sprintf("%v:%v", tok.Row, tok.Col),
		})
	}
	return renderTable(data, 100)
}
