package main

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	gspec "github.com/nihei9/ll1/spec/grammar"
)

// reportView resolves the numbers in a report into names.
type reportView struct {
	report *gspec.Report
}

func (v *reportView) terminal(num int) string {
	if num <= 0 || num >= len(v.report.Terminals) || v.report.Terminals[num] == nil {
		return fmt.Sprintf("<terminal %v>", num)
	}
	return v.report.Terminals[num].Name
}

func (v *reportView) nonTerminal(num int) string {
	if num <= 0 || num >= len(v.report.NonTerminals) || v.report.NonTerminals[num] == nil {
		return fmt.Sprintf("<non-terminal %v>", num)
	}
	return v.report.NonTerminals[num].Name
}

func (v *reportView) symbol(sym int) string {
	switch {
	case sym > 0:
		return v.terminal(sym)
	case sym < 0:
		return v.nonTerminal(-sym)
	}
	return "ε"
}

func (v *reportView) production(num int) string {
	if num <= 0 || num >= len(v.report.Productions) || v.report.Productions[num] == nil {
		return fmt.Sprintf("<production %v>", num)
	}
	prod := v.report.Productions[num]
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", v.nonTerminal(prod.LHS))
	if len(prod.RHS) == 0 {
		fmt.Fprintf(&b, " ε")
	}
	for _, sym := range prod.RHS {
		fmt.Fprintf(&b, " %v", v.symbol(sym))
	}
	return b.String()
}

func (v *reportView) terminalSet(terms []int, extra string) string {
	names := make([]string, 0, len(terms)+1)
	for _, t := range terms {
		names = append(names, v.terminal(t))
	}
	if extra != "" {
		names = append(names, extra)
	}
	return "{ " + strings.Join(names, ", ") + " }"
}

func (v *reportView) conflictSummary() string {
	n := len(v.report.Conflicts)
	switch n {
	case 0:
		return "No conflict. The grammar is LL(1)."
	case 1:
		return "1 conflict occurred. The grammar is not LL(1)."
	}
	return fmt.Sprintf("%v conflicts occurred. The grammar is not LL(1).", n)
}

func (v *reportView) conflicts() []string {
	lines := make([]string, len(v.report.Conflicts))
	for i, c := range v.report.Conflicts {
		lines[i] = fmt.Sprintf("M[%v, %v]: %v (kept) vs %v",
			v.nonTerminal(c.NonTerminal), v.terminal(c.Terminal),
			v.production(c.Production1), v.production(c.Production2))
	}
	return lines
}

// firstFollowTable renders FIRST and FOLLOW of every non-terminal. ε in FIRST means the
// non-terminal derives the empty string.
func (v *reportView) firstFollowTable(width int) string {
	follows := map[int]*gspec.Follow{}
	for _, f := range v.report.Follow {
		follows[f.NonTerminal] = f
	}

	data := [][]string{
		{"Non-terminal", "FIRST", "FOLLOW"},
	}
	for _, fst := range v.report.First {
		var empty string
		if fst.Empty {
			empty = "ε"
		}
		var follow string
		if f, ok := follows[fst.NonTerminal]; ok {
			follow = v.terminalSet(f.Terminals, "")
		}
		data = append(data, []string{
			v.nonTerminal(fst.NonTerminal),
			v.terminalSet(fst.Terminals, empty),
			follow,
		})
	}
	return renderTable(data, width)
}

// tableList renders the non-empty cells of the prediction table one per line.
func (v *reportView) tableList() string {
	var b strings.Builder
	for _, e := range v.report.Table {
		fmt.Fprintf(&b, "M[%v, %v] = %v\n", v.nonTerminal(e.NonTerminal), v.terminal(e.Terminal), v.production(e.Production))
	}
	return b.String()
}

// tableMatrix renders the prediction table as pages of columns terminals each. Cells longer than
// cellWidth are clipped with an ellipsis.
func (v *reportView) tableMatrix(columns, cellWidth int) string {
	cells := map[[2]int]int{}
	for _, e := range v.report.Table {
		cells[[2]int{e.NonTerminal, e.Terminal}] = e.Production
	}

	var terms []int
	for _, t := range v.report.Terminals {
		if t == nil {
			continue
		}
		terms = append(terms, t.Number)
	}
	var nonTerms []int
	for _, n := range v.report.NonTerminals {
		if n == nil {
			continue
		}
		nonTerms = append(nonTerms, n.Number)
	}

	width := (columns+1)*(cellWidth+4) + 4
	var pages []string
	for head := 0; head < len(terms); head += columns {
		tail := head + columns
		if tail > len(terms) {
			tail = len(terms)
		}
		page := terms[head:tail]

		header := []string{""}
		for _, t := range page {
			header = append(header, clip(v.terminal(t), cellWidth))
		}
		data := [][]string{header}
		for _, n := range nonTerms {
			row := []string{clip(v.nonTerminal(n), cellWidth)}
			for _, t := range page {
				var cell string
				if p, ok := cells[[2]int{n, t}]; ok {
					cell = clip(v.production(p), cellWidth)
				}
				row = append(row, cell)
			}
			data = append(data, row)
		}
		pages = append(pages, fmt.Sprintf("Terminals %v-%v of %v\n%v", head+1, tail, len(terms), renderTable(data, width)))
	}
	return strings.Join(pages, "\n\n")
}

// clip shortens a text to at most n runes. A clipped text ends with an ellipsis.
func clip(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(rs[:n-1]) + "…"
}

func renderTable(data [][]string, width int) string {
	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
