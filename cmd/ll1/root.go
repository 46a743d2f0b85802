package main

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	config     *string
	traceLevel *string
}{}

// cfg is loaded before any subcommand runs.
var cfg = defaultConfig()

var rootCmd = &cobra.Command{
	Use:   "ll1",
	Short: "Analyze LL(1) grammars and parse sources with a predictive parser",
	Long: `ll1 provides the following features:
- Computes FIRST and FOLLOW sets and builds an LL(1) prediction table from a grammar.
- Reports conflicts of grammars that are not LL(1).
- Parses a source with a table-driven predictive parser and shows each step of the parse.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUp,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().String("config", "", "configuration file path (default ./"+defaultConfigFileName+" if present)")
	rootFlags.traceLevel = rootCmd.PersistentFlags().String("trace-level", "", "trace level of the library [Debug|Info|Error]")
}

var tracedPackages = []string{
	"ll1.grammar",
	"ll1.driver",
	"ll1.lockbixo",
}

func setUp(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(*rootFlags.config)
	if err != nil {
		return err
	}
	if *rootFlags.traceLevel != "" {
		c.TraceLevel = *rootFlags.traceLevel
	}
	cfg = c

	lv := tracing.TraceLevelFromString(cfg.TraceLevel)
	for _, key := range tracedPackages {
		tracing.Select(key).SetTraceLevel(lv)
	}
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
