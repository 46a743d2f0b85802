package grammar

type Terminal struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Pattern string `json:"pattern,omitempty"`
	Skip    bool   `json:"skip,omitempty"`
}

type NonTerminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type Production struct {
	Number int   `json:"number"`
	LHS    int   `json:"lhs"`
	RHS    []int `json:"rhs"`
}

type First struct {
	NonTerminal int   `json:"non_terminal"`
	Terminals   []int `json:"terminals"`
	Empty       bool  `json:"empty"`
}

type Follow struct {
	NonTerminal int   `json:"non_terminal"`
	Terminals   []int `json:"terminals"`
	EOF         bool  `json:"eof"`
}

type TableEntry struct {
	NonTerminal int `json:"non_terminal"`
	Terminal    int `json:"terminal"`
	Production  int `json:"production"`
}

// Conflict records a second production predicted for a cell that is already occupied.
// The table keeps Production1, the one assigned first.
type Conflict struct {
	NonTerminal int `json:"non_terminal"`
	Terminal    int `json:"terminal"`
	Production1 int `json:"production_1"`
	Production2 int `json:"production_2"`
}

type Report struct {
	Name         string         `json:"name"`
	Terminals    []*Terminal    `json:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals"`
	Productions  []*Production  `json:"productions"`
	First        []*First       `json:"first"`
	Follow       []*Follow      `json:"follow"`
	Table        []*TableEntry  `json:"table"`
	Conflicts    []*Conflict    `json:"conflicts"`

	// TableDigest is a fingerprint of the uncompressed prediction table.
	TableDigest string `json:"table_digest"`
}

// LL1 reports whether the grammar is LL(1), that is, whether no conflict was detected.
func (r *Report) LL1() bool {
	return len(r.Conflicts) == 0
}
