package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	gspec "github.com/nihei9/ll1/spec/grammar"
	"github.com/nihei9/ll1/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "test <grammar file path>|- <test file path>|<test directory path>",
		Short: "Test a grammar",
		Long: `test runs test cases against a grammar. The grammar is either a compiled grammar (a .json
file, or - to read it from stdin) or a grammar file that is compiled on the fly. Its terminals need
lexical patterns so that the sources of the test cases can be tokenized.`,
		Example: `  ll1 test grammar.ll1 test
  ll1 compile grammar.ll1 | ll1 test - test`,
		Args: cobra.ExactArgs(2),
		RunE: runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	var cg *gspec.CompiledGrammar
	if args[0] == "-" || strings.HasSuffix(args[0], ".json") {
		var err error
		cg, err = readCompiledGrammar(args[0])
		if err != nil {
			return fmt.Errorf("Cannot read a compiled grammar: %w", err)
		}
	} else {
		var err error
		cg, _, err = compileGrammar(args[0])
		if err != nil {
			return fmt.Errorf("Cannot read a grammar: %w", err)
		}
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Grammar: cg,
		Cases:   cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
