package compressor

import (
	"fmt"
	"testing"
)

func TestCompressor_Compress(t *testing.T) {
	x := 0 // an empty cell

	allCompressors := func() []Compressor {
		return []Compressor{
			NewUniqueEntriesTable(),
			NewRowDisplacementTable(x),
		}
	}

	tests := []struct {
		caption  string
		original []int
		rowCount int
		colCount int
	}{
		{
			caption: "every cell is filled",
			original: []int{
				1, 1, 1, 1, 1,
				2, 2, 2, 2, 2,
				1, 1, 1, 1, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			caption: "every cell is empty",
			original: []int{
				x, x, x, x, x,
				x, x, x, x, x,
			},
			rowCount: 2,
			colCount: 5,
		},
		{
			// Rows of a prediction table: the nil row, a row predicting one production for
			// two terminals, and rows of a non-terminal having an epsilon production.
			caption: "sparse rows of a prediction table",
			original: []int{
				x, x, x, x, x, x,
				x, x, 1, x, 1, x,
				3, x, x, 2, x, 3,
				3, x, x, 2, x, 3,
				x, 4, x, x, x, x,
			},
			rowCount: 5,
			colCount: 6,
		},
		{
			caption: "diagonal holes",
			original: []int{
				1, x, 1, 1, 1,
				1, 1, x, 1, 1,
				1, 1, 1, x, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
	}
	for _, tt := range tests {
		for _, comp := range allCompressors() {
			t.Run(fmt.Sprintf("%v: %T", tt.caption, comp), func(t *testing.T) {
				dup := make([]int, len(tt.original))
				copy(dup, tt.original)

				orig, err := NewOriginalTable(tt.original, tt.colCount)
				if err != nil {
					t.Fatal(err)
				}
				err = comp.Compress(orig)
				if err != nil {
					t.Fatal(err)
				}
				rowCount, colCount := comp.OriginalTableSize()
				if rowCount != tt.rowCount || colCount != tt.colCount {
					t.Fatalf("unexpected table size; want: %vx%v, got: %vx%v", tt.rowCount, tt.colCount, rowCount, colCount)
				}
				for r := 0; r < tt.rowCount; r++ {
					for c := 0; c < tt.colCount; c++ {
						v, err := comp.Lookup(r, c)
						if err != nil {
							t.Fatal(err)
						}
						expected := tt.original[r*tt.colCount+c]
						if v != expected {
							t.Fatalf("unexpected entry (%v, %v); want: %v, got: %v", r, c, expected, v)
						}
					}
				}

				outOfRange := [][2]int{
					{0, -1},
					{-1, 0},
					{rowCount - 1, colCount},
					{rowCount, colCount - 1},
				}
				for _, idx := range outOfRange {
					if _, err := comp.Lookup(idx[0], idx[1]); err == nil {
						t.Fatalf("expected error didn't occur %v", idx)
					}
				}

				for i := range tt.original {
					if tt.original[i] != dup[i] {
						t.Fatalf("the original table was modified at %v; want: %v, got: %v", i, dup[i], tt.original[i])
					}
				}
			})
		}
	}
}

func TestUniqueEntriesTable_SharesIdenticalRows(t *testing.T) {
	orig, err := NewOriginalTable([]int{
		0, 1, 0,
		2, 0, 2,
		0, 1, 0,
	}, 3)
	if err != nil {
		t.Fatal(err)
	}
	tab := NewUniqueEntriesTable()
	if err := tab.Compress(orig); err != nil {
		t.Fatal(err)
	}
	if len(tab.UniqueEntries) != 6 {
		t.Fatalf("identical rows must be stored once; got %v entries", len(tab.UniqueEntries))
	}
	if tab.RowNums[0] != tab.RowNums[2] {
		t.Fatalf("rows 0 and 2 must share a unique row; got: %v", tab.RowNums)
	}
}

func TestNewOriginalTable_InvalidShape(t *testing.T) {
	if _, err := NewOriginalTable(nil, 1); err == nil {
		t.Fatalf("an empty table must be rejected")
	}
	if _, err := NewOriginalTable([]int{1, 2, 3}, 0); err == nil {
		t.Fatalf("a zero column count must be rejected")
	}
	if _, err := NewOriginalTable([]int{1, 2, 3}, 2); err == nil {
		t.Fatalf("a ragged table must be rejected")
	}
}
