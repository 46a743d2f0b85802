package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nihei9/ll1/driver"
	"github.com/nihei9/ll1/lang/lockbixo"
	gspec "github.com/nihei9/ll1/spec/grammar"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse Lockbixo sources interactively",
		Long: `repl reads a line at a time and parses it with the built-in grammar of Lockbixo.
Commands:
  :trace  toggle printing the trace of each parse
  :quit   quit (<ctrl>D also quits)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

type repl struct {
	rl    *readline.Instance
	out   io.Writer
	cg    *gspec.CompiledGrammar
	trace bool
}

func runREPL(cmd *cobra.Command, args []string) error {
	initDisplay()

	cg, report, err := compileGrammar("")
	if err != nil {
		return err
	}

	rl, err := readline.New("ll1> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	r := &repl{
		rl:  rl,
		out: rl.Stdout(),
		cg:  cg,
	}
	v := &reportView{
		report: report,
	}
	pterm.Info.Println("Lockbixo: " + v.conflictSummary())
	pterm.Info.Println("Quit with <ctrl>D")
	return r.loop()
}

func (r *repl) loop() error {
	for {
		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := r.eval(line); quit {
			return nil
		}
	}
}

// eval parses a line or runs a command. It reports whether the loop should stop.
func (r *repl) eval(line string) bool {
	switch line {
	case ":quit":
		return true
	case ":trace":
		r.trace = !r.trace
		fmt.Fprint(r.out, pterm.Info.Sprintln(fmt.Sprintf("trace: %v", r.trace)))
		return false
	}

	var opts []driver.ParserOption
	if r.trace {
		opts = append(opts, driver.TraceLimit(cfg.MaxTraceEntries))
	} else {
		opts = append(opts, driver.DisableTrace())
	}
	p, ok, err := lockbixo.Parse(r.cg, line, opts...)
	if p != nil && r.trace {
		fmt.Fprintln(r.out, driver.FormatTrace(p.Trace(), cfg.TraceLimit, 160))
	}
	switch {
	case err != nil:
		fmt.Fprint(r.out, pterm.Error.Sprintln(err.Error()))
	case ok:
		fmt.Fprint(r.out, pterm.Success.Sprintln("accepted"))
	default:
		fmt.Fprint(r.out, pterm.Error.Sprintln("the parser stopped without accepting the source"))
	}
	return false
}
