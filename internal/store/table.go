package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Table is a reconstructed log in the current column layout.
type Table struct {
	Variant Variant
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// getter returns a lookup for row i by column name; unknown columns and
// short rows read as "".
func (t *Table) getter(i int) func(string) string {
	row := t.Rows[i]
	return func(name string) string {
		j := t.Index(name)
		if j < 0 || j >= len(row) {
			return ""
		}
		return row[j]
	}
}

// Filter selects rows for the results view.
type Filter struct {
	// NameContains matches the name column case-insensitively. Empty
	// matches everything.
	NameContains string

	// ClassPeriod matches the class_period column exactly. Empty matches
	// everything.
	ClassPeriod string
}

// Filter returns a new table containing the rows that match f.
func (t *Table) Filter(f Filter) *Table {
	if t == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(f.NameContains))
	nameIdx := t.Index(ColName)
	periodIdx := t.Index(ColClassPeriod)

	out := &Table{Variant: t.Variant, Columns: t.Columns}
	for _, row := range t.Rows {
		if needle != "" && !strings.Contains(strings.ToLower(cell(row, nameIdx)), needle) {
			continue
		}
		if f.ClassPeriod != "" && cell(row, periodIdx) != f.ClassPeriod {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Tail returns a table with at most the last n rows.
func (t *Table) Tail(n int) *Table {
	if t == nil {
		return nil
	}
	rows := t.Rows
	if n >= 0 && len(rows) > n {
		rows = rows[len(rows)-n:]
	}
	return &Table{Variant: t.Variant, Columns: t.Columns, Rows: rows}
}

// Periods returns the distinct non-empty class periods, sorted.
func (t *Table) Periods() []string {
	if t == nil {
		return nil
	}
	idx := t.Index(ColClassPeriod)
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.Rows {
		p := cell(row, idx)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// WriteCSV writes the header and rows as CSV.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// CSV returns the table encoded as CSV bytes, ready for download or export.
func (t *Table) CSV() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
