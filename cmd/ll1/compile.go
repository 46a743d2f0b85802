package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	verr "github.com/nihei9/ll1/error"
	"github.com/nihei9/ll1/grammar"
	"github.com/nihei9/ll1/lang/lockbixo"
	"github.com/nihei9/ll1/spec"
	gspec "github.com/nihei9/ll1/spec/grammar"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile [grammar file path]",
		Short: "Compile a grammar into an LL(1) prediction table",
		Long: `compile builds an LL(1) prediction table from a grammar and writes it as JSON along with
a report containing FIRST, FOLLOW, and conflicts. When the grammar file is omitted, the built-in
grammar of Lockbixo is compiled.`,
		Example: `  ll1 compile grammar.ll1 -o grammar.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	cgram, report, err := compileGrammar(grmPath)
	if err != nil {
		return err
	}

	err = writeCompiledGrammarAndReport(cgram, report, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write an output files: %w", err)
	}

	if len(report.Conflicts) > 0 {
		fmt.Fprintf(os.Stdout, "%v conflicts\n", len(report.Conflicts))
	}

	return nil
}

// compileGrammar compiles a grammar file, or the built-in grammar of Lockbixo when path is empty.
// Reporting is always enabled.
func compileGrammar(path string) (*gspec.CompiledGrammar, *gspec.Report, error) {
	opts := []grammar.CompileOption{
		grammar.EnableReporting(),
		grammar.CompressionLevel(cfg.CompressionLevel),
	}
	if path == "" {
		return lockbixo.Compile(opts...)
	}

	gram, err := readGrammar(path)
	if err != nil {
		return nil, nil, err
	}
	return grammar.Compile(gram, opts...)
}

func readGrammar(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	ast, err := spec.Parse(f)
	if err != nil {
		return nil, attachSource(err, path)
	}
	def, err := ast.Definition()
	if err != nil {
		return nil, attachSource(err, path)
	}

	b := grammar.GrammarBuilder{
		Definition: def,
	}
	gram, err := b.Build()
	if err != nil {
		return nil, attachSource(err, path)
	}
	return gram, nil
}

// attachSource makes grammar errors print the file name and the offending line.
func attachSource(err error, path string) error {
	switch e := err.(type) {
	case verr.SpecErrors:
		return verr.WithSource(e, path, path)
	case *verr.SpecError:
		return verr.WithSource(verr.SpecErrors{e}, path, path)
	}
	return err
}

// writeCompiledGrammarAndReport writes a compiled grammar and a report to a files located at a specified path.
// This function selects one of the following output methods depending on how the path is specified.
//
//  1. When the path is a directory path, this function writes the compiled grammar and the report to
//     <path>/<grammar-name>.json and <path>/<grammar-name>-report.json files, respectively.
//  2. When the path is a file path or a non-existent path, this function assumes that the path represents a file
//     path for the compiled grammar. Then it also writes the report in the same directory as the compiled grammar.
//     The report file is named <grammar-name>-report.json.
//  3. When the path is an empty string, this function writes the compiled grammar to the stdout and writes
//     the report to a file named <current-directory>/<grammar-name>-report.json.
func writeCompiledGrammarAndReport(cgram *gspec.CompiledGrammar, report *gspec.Report, path string) error {
	cgramPath, reportPath, err := makeOutputFilePaths(cgram.Name, path)
	if err != nil {
		return err
	}

	{
		var cgramW io.Writer
		if cgramPath != "" {
			cgramFile, err := os.OpenFile(cgramPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				return err
			}
			defer cgramFile.Close()
			cgramW = cgramFile
		} else {
			cgramW = os.Stdout
		}

		b, err := json.Marshal(cgram)
		if err != nil {
			return err
		}
		fmt.Fprintf(cgramW, "%v\n", string(b))
	}

	{
		reportFile, err := os.OpenFile(reportPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer reportFile.Close()

		b, err := json.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintf(reportFile, "%v\n", string(b))
	}

	return nil
}

func makeOutputFilePaths(gramName string, path string) (string, string, error) {
	reportFileName := gramName + "-report.json"

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		return "", filepath.Join(wd, reportFileName), nil
	}

	fi, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return "", "", err
	}
	if os.IsNotExist(err) || !fi.IsDir() {
		dir, _ := filepath.Split(path)
		return path, filepath.Join(dir, reportFileName), nil
	}

	return filepath.Join(path, gramName+".json"), filepath.Join(path, reportFileName), nil
}

func readCompiledGrammar(path string) (*gspec.CompiledGrammar, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cgram := &gspec.CompiledGrammar{}
	err = json.Unmarshal(data, cgram)
	if err != nil {
		return nil, err
	}
	return cgram, nil
}
