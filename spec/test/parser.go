package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

type OutcomeDiff struct {
	Field   string
	Message string
}

func newOutcomeDiff(field string, expected, actual interface{}) *OutcomeDiff {
	return &OutcomeDiff{
		Field:   field,
		Message: fmt.Sprintf("unexpected %v: expected '%v' but got '%v'", field, expected, actual),
	}
}

// Outcome is the result of parsing a source. A rejected source has the position of the offending
// token. ExpectedTerminals may be nil in an expectation, and then any set matches.
type Outcome struct {
	Accept            bool
	Row               int
	Col               int
	ExpectedTerminals []string
}

func NewAcceptOutcome() *Outcome {
	return &Outcome{
		Accept: true,
	}
}

func NewErrorOutcome(row, col int, expected ...string) *Outcome {
	return &Outcome{
		Row:               row,
		Col:               col,
		ExpectedTerminals: expected,
	}
}

func (o *Outcome) String() string {
	if o.Accept {
		return "accept"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "error %v:%v", o.Row, o.Col)
	if o.ExpectedTerminals != nil {
		fmt.Fprintf(&b, "\nexpected: %v", strings.Join(o.ExpectedTerminals, ", "))
	}
	return b.String()
}

func DiffOutcome(expected, actual *Outcome) []*OutcomeDiff {
	if expected.Accept != actual.Accept {
		return []*OutcomeDiff{
			newOutcomeDiff("verdict", verdict(expected), verdict(actual)),
		}
	}
	if expected.Accept {
		return nil
	}
	var diffs []*OutcomeDiff
	if expected.Row != actual.Row || expected.Col != actual.Col {
		diffs = append(diffs, newOutcomeDiff("position",
			fmt.Sprintf("%v:%v", expected.Row, expected.Col),
			fmt.Sprintf("%v:%v", actual.Row, actual.Col)))
	}
	if expected.ExpectedTerminals != nil {
		exp := strings.Join(expected.ExpectedTerminals, ", ")
		act := strings.Join(actual.ExpectedTerminals, ", ")
		if exp != act {
			diffs = append(diffs, newOutcomeDiff("expected terminals", exp, act))
		}
	}
	return diffs
}

func verdict(o *Outcome) string {
	if o.Accept {
		return "accept"
	}
	return "error"
}

type TestCase struct {
	Description string
	Source      []byte
	Output      *Outcome
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	op := &outcomeParser{
		lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
	}
	o, err := op.parseOutcome(parts[2].buf)
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Output:      o,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

var (
	reAccept   = regexp.MustCompile(`^accept$`)
	reError    = regexp.MustCompile(`^error\s+([0-9]+):([0-9]+)$`)
	reExpected = regexp.MustCompile(`^expected:\s*(.*)$`)
)

type outcomeParser struct {
	lineOffset int
}

// parseOutcome reads the last part of a test case. Blank lines are ignored, so the part may be
// surrounded by empty lines.
func (op *outcomeParser) parseOutcome(src []byte) (*Outcome, error) {
	var lines []string
	var lineNums []int
	for i, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		lineNums = append(lineNums, op.lineOffset+i+1)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%v: an expected outcome is missing", op.lineOffset+1)
	}

	if reAccept.MatchString(lines[0]) {
		if len(lines) > 1 {
			return nil, fmt.Errorf("%v: an accept outcome cannot take other lines", lineNums[1])
		}
		return NewAcceptOutcome(), nil
	}

	m := reError.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, fmt.Errorf("%v: an outcome must be 'accept' or 'error <row>:<col>': %v", lineNums[0], lines[0])
	}
	row, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%v: %v", lineNums[0], err)
	}
	col, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("%v: %v", lineNums[0], err)
	}
	o := NewErrorOutcome(row, col)

	switch len(lines) {
	case 1:
		return o, nil
	case 2:
		m := reExpected.FindStringSubmatch(lines[1])
		if m == nil {
			return nil, fmt.Errorf("%v: an error outcome can take only 'expected: ...': %v", lineNums[1], lines[1])
		}
		o.ExpectedTerminals = []string{}
		for _, term := range strings.Split(m[1], ",") {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			o.ExpectedTerminals = append(o.ExpectedTerminals, term)
		}
		return o, nil
	}
	return nil, fmt.Errorf("%v: too many lines in an error outcome", lineNums[2])
}
