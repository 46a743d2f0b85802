/*
Package grammar analyzes context-free grammars for top-down parsing.

A Grammar is built from a plain-data definition by GrammarBuilder, which validates it once and
interns every symbol. Analyze then computes FIRST sets for every non-terminal and production,
FOLLOW sets for every non-terminal, and the LL(1) prediction table. The resulting Analysis answers
queries by symbol name.

Both set computations are monotone fixed-point iterations, so cyclic and left-recursive grammars
are accepted; such grammars simply yield conflicts in the table. A conflict never aborts the
construction: the table keeps the production assigned first and every conflict is recorded.

Compile runs the same analysis and converts the result into a serializable CompiledGrammar and,
with EnableReporting, a Report. The results are immutable and can be shared among any number of
parsers.
*/
package grammar

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("ll1.grammar")
}
