package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nihei9/ll1/grammar"
)

const defaultConfigFileName = "ll1.toml"

type config struct {
	// TraceLevel is the level of the library tracing.
	TraceLevel string `toml:"trace_level"`

	// TraceLimit is the number of trace rows printed by the parse command. 0 prints all rows.
	TraceLimit int `toml:"trace_limit"`

	// MaxTraceEntries caps the trace entries a parser records. 0 means unbounded.
	MaxTraceEntries int `toml:"max_trace_entries"`

	MatrixColumns    int `toml:"matrix_columns"`
	MatrixCellWidth  int `toml:"matrix_cell_width"`
	CompressionLevel int `toml:"compression_level"`
}

func defaultConfig() *config {
	return &config{
		TraceLevel:       "Error",
		TraceLimit:       200,
		MaxTraceEntries:  0,
		MatrixColumns:    6,
		MatrixCellWidth:  34,
		CompressionLevel: grammar.CompressionLevelMax,
	}
}

// loadConfig reads a configuration file over the default values. When path is empty, ./ll1.toml
// is read if it exists; otherwise the default values are returned as they are.
func loadConfig(path string) (*config, error) {
	c := defaultConfig()
	if path == "" {
		if _, err := os.Stat(defaultConfigFileName); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return c, nil
			}
			return nil, err
		}
		path = defaultConfigFileName
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the configuration file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key: %v", path, undecoded[0].String())
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *config) validate() error {
	if c.TraceLimit < 0 {
		return fmt.Errorf("trace_limit must be greater than or equal to 0; got: %v", c.TraceLimit)
	}
	if c.MaxTraceEntries < 0 {
		return fmt.Errorf("max_trace_entries must be greater than or equal to 0; got: %v", c.MaxTraceEntries)
	}
	if c.MatrixColumns < 1 {
		return fmt.Errorf("matrix_columns must be greater than 0; got: %v", c.MatrixColumns)
	}
	if c.MatrixCellWidth < 2 {
		return fmt.Errorf("matrix_cell_width must be greater than 1; got: %v", c.MatrixCellWidth)
	}
	if c.CompressionLevel < grammar.CompressionLevelMin || c.CompressionLevel > grammar.CompressionLevelMax {
		return fmt.Errorf("compression_level must be %v to %v; got: %v", grammar.CompressionLevelMin, grammar.CompressionLevelMax, c.CompressionLevel)
	}
	return nil
}
