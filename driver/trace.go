package driver

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// FormatTrace renders a trace as a text table. When limit is greater than 0, only the first limit
// entries are rendered followed by a line telling how many were omitted.
func FormatTrace(trace []*TraceEntry, limit int, width int) string {
	shown := trace
	if limit > 0 && len(trace) > limit {
		shown = trace[:limit]
	}

	data := [][]string{
		{"#", "Stack (top → bottom)", "X", "Lookahead", "Action"},
	}
	for i, e := range shown {
		act := string(e.Action)
		if e.Action == ActionExpand {
			act = e.Production
		}
		data = append(data, []string{
			fmt.Sprintf("%v", i+1),
			strings.Join(e.Stack, " "),
			e.Symbol,
			e.Lookahead,
			act,
		})
	}

	out := rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	if len(shown) < len(trace) {
		out += fmt.Sprintf("\n... %v more steps", len(trace)-len(shown))
	}
	return out
}
