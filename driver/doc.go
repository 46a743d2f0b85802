/*
Package driver implements the table-driven predictive parser.

A parser keeps an explicit stack initialised with the end marker and the start symbol. Each step
pops one symbol: a terminal is matched against the lookahead, a non-terminal is expanded with the
production the prediction table names for the lookahead, and popping the end marker at the end of
the input accepts it.
*/
package driver

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("ll1.driver")
}
