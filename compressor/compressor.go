// Package compressor packs sparse integer matrices such as numbered parsing
// tables.
package compressor

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var errOutOfRange = errors.New("indexes are out of range")

// Matrix is a row-major matrix of integers.
type Matrix struct {
	entries []int
	rows    int
	cols    int
}

func NewMatrix(entries []int, cols int) (*Matrix, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("a matrix needs at least one entry")
	}
	if cols <= 0 {
		return nil, fmt.Errorf("a matrix needs at least one column")
	}
	if len(entries)%cols != 0 {
		return nil, fmt.Errorf("%v entries cannot be split into rows of %v columns", len(entries), cols)
	}

	return &Matrix{
		entries: entries,
		rows:    len(entries) / cols,
		cols:    cols,
	}, nil
}

func (m *Matrix) row(n int) []int {
	return m.entries[n*m.cols : (n+1)*m.cols]
}

type Compressor interface {
	Compress(m *Matrix) error
	Lookup(row, col int) (int, error)
	Size() (int, int)
}

var (
	_ Compressor = &UniqueRowsTable{}
	_ Compressor = &RowDisplacementTable{}
)

// UniqueRowsTable stores every distinct row once.
type UniqueRowsTable struct {
	Rows    []int `json:"rows" yaml:"rows"`
	RowNums []int `json:"row_nums" yaml:"row_nums"`
	RowLen  int   `json:"row_len" yaml:"row_len"`
}

func NewUniqueRowsTable() *UniqueRowsTable {
	return &UniqueRowsTable{}
}

func (tab *UniqueRowsTable) Size() (int, int) {
	return len(tab.RowNums), tab.RowLen
}

func (tab *UniqueRowsTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= len(tab.RowNums) || col < 0 || col >= tab.RowLen {
		return 0, fmt.Errorf("%w: [%v, %v]", errOutOfRange, row, col)
	}
	return tab.Rows[tab.RowNums[row]*tab.RowLen+col], nil
}

func (tab *UniqueRowsTable) Compress(m *Matrix) error {
	var rows []int
	rowNums := make([]int, m.rows)
	known := map[string]int{}
	for n := 0; n < m.rows; n++ {
		r := m.row(n)
		key := rowKey(r)
		num, ok := known[key]
		if !ok {
			num = len(known)
			known[key] = num
			rows = append(rows, r...)
		}
		rowNums[n] = num
	}

	tab.Rows = rows
	tab.RowNums = rowNums
	tab.RowLen = m.cols

	return nil
}

func rowKey(row []int) string {
	var b strings.Builder
	for _, v := range row {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}
	return b.String()
}

// unowned marks a slot of a RowDisplacementTable no row occupies.
const unowned = -1

// RowDisplacementTable overlays the rows of a sparse matrix so that the
// non-empty entries of no two rows collide. Owners records which row each
// slot belongs to.
type RowDisplacementTable struct {
	Rows         int   `json:"rows" yaml:"rows"`
	Cols         int   `json:"cols" yaml:"cols"`
	EmptyValue   int   `json:"empty_value" yaml:"empty_value"`
	Entries      []int `json:"entries" yaml:"entries"`
	Owners       []int `json:"owners" yaml:"owners"`
	Displacement []int `json:"displacement" yaml:"displacement"`
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Size() (int, int) {
	return tab.Rows, tab.Cols
}

func (tab *RowDisplacementTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.Rows || col < 0 || col >= tab.Cols {
		return tab.EmptyValue, fmt.Errorf("%w: [%v, %v]", errOutOfRange, row, col)
	}
	pos := tab.Displacement[row] + col
	if pos >= len(tab.Owners) || tab.Owners[pos] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[pos], nil
}

type sparseRow struct {
	num  int
	cols []int
}

func (tab *RowDisplacementTable) Compress(m *Matrix) error {
	rows := make([]sparseRow, m.rows)
	for n := range rows {
		rows[n].num = n
		for col, v := range m.row(n) {
			if v != tab.EmptyValue {
				rows[n].cols = append(rows[n].cols, col)
			}
		}
	}
	// Dense rows are the hardest to place, so they go first.
	sort.SliceStable(rows, func(i, j int) bool {
		return len(rows[i].cols) > len(rows[j].cols)
	})

	var entries, owners []int
	displacement := make([]int, m.rows)
	next := 0
	for _, r := range rows {
		if len(r.cols) == 0 {
			continue
		}
		d := next
		for collides(owners, d, r.cols) {
			d++
		}
		for len(entries) < d+m.cols {
			entries = append(entries, tab.EmptyValue)
			owners = append(owners, unowned)
		}
		orig := m.row(r.num)
		for _, col := range r.cols {
			entries[d+col] = orig[col]
			owners[d+col] = r.num
		}
		displacement[r.num] = d
		next = d + 1
	}

	tab.Rows = m.rows
	tab.Cols = m.cols
	tab.Entries = entries
	tab.Owners = owners
	tab.Displacement = displacement

	return nil
}

func collides(owners []int, d int, cols []int) bool {
	for _, col := range cols {
		if d+col < len(owners) && owners[d+col] != unowned {
			return true
		}
	}
	return false
}
