package grammar

import mlspec "github.com/nihei9/maleeni/spec"

type CompiledGrammar struct {
	Name      string         `json:"name"`
	Lexical   *LexicalSpec   `json:"lexical,omitempty"`
	Syntactic *SyntacticSpec `json:"syntactic"`
}

// LexicalSpec is present only when at least one terminal of a grammar has a lexical pattern.
type LexicalSpec struct {
	Lexer   string   `json:"lexer"`
	Maleeni *Maleeni `json:"maleeni"`
}

type Maleeni struct {
	Spec           *mlspec.CompiledLexSpec `json:"spec"`
	KindToTerminal []int                   `json:"kind_to_terminal"`
	TerminalToKind []int                   `json:"terminal_to_kind"`
	Skip           []int                   `json:"skip"`
}

const (
	// ProductionNumNil represents an empty entry of a prediction table.
	ProductionNumNil = 0

	// SymbolEpsilon is the encoded epsilon in an alternative. Terminals are encoded as positive
	// numbers and non-terminals as negative numbers.
	SymbolEpsilon = 0
)

type SyntacticSpec struct {
	StartSymbol      int      `json:"start_symbol"`
	Terminals        []string `json:"terminals"`
	TerminalCount    int      `json:"terminal_count"`
	NonTerminals     []string `json:"non_terminals"`
	NonTerminalCount int      `json:"non_terminal_count"`
	EOFSymbol        int      `json:"eof_symbol"`

	// LHSSymbols and Alternatives are indexed by production numbers. The index 0 is unused.
	LHSSymbols   []int   `json:"lhs_symbols"`
	Alternatives [][]int `json:"alternatives"`

	Prediction *PredictionTable `json:"prediction"`
	Conflicts  []*Conflict      `json:"conflicts,omitempty"`
}

// PredictionTable maps a pair of a non-terminal (row) and a terminal (column) to a production.
// Exactly one of Table and UncompressedTable is set.
type PredictionTable struct {
	RowCount          int                 `json:"row_count"`
	ColCount          int                 `json:"col_count"`
	CompressionLevel  int                 `json:"compression_level"`
	Table             *UniqueEntriesTable `json:"table,omitempty"`
	UncompressedTable []int               `json:"uncompressed_table,omitempty"`
}

type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}

type UniqueEntriesTable struct {
	UniqueEntries             *RowDisplacementTable `json:"unique_entries,omitempty"`
	UncompressedUniqueEntries []int                 `json:"uncompressed_unique_entries,omitempty"`
	RowNums                   []int                 `json:"row_nums"`
	OriginalRowCount          int                   `json:"original_row_count"`
	OriginalColCount          int                   `json:"original_col_count"`
}
