/*
Package lockbixo provides Lockbixo, a small C-like language, as a ready-made grammar for the LL(1)
analyzer. It consists of the grammar definition, a scanner producing tokens for the predictive
parser, and example sources.
*/
package lockbixo

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("ll1.lockbixo")
}
