package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Variant records which schema branch reconstructed a table.
type Variant int

const (
	VariantCurrent  Variant = iota // header carries every current column
	VariantLegacy                  // header carries every legacy column; fill synthesized
	VariantRepaired                // header unusable; rows repaired by length
)

func (v Variant) String() string {
	switch v {
	case VariantCurrent:
		return "current"
	case VariantLegacy:
		return "legacy"
	case VariantRepaired:
		return "repaired"
	default:
		return "unknown"
	}
}

// ReadTable reads the CSV log at path and reconciles it against schema.
//
// A missing file yields (nil, nil). Malformed content never produces an
// error: the reader degrades to best-effort reconstruction and returns
// whatever rows it could parse. Only I/O failures opening the file are
// returned.
func ReadTable(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	return schema.Reconcile(readRecords(f)), nil
}

// readRecords tokenizes r leniently. Records that fail to parse are kept
// as far as they were read; reading stops only when the input stops
// advancing.
func readRecords(r io.Reader) [][]string {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out [][]string
	var offset int64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) || cr.InputOffset() <= offset {
				break
			}
		}
		offset = cr.InputOffset()
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out
}

// Reconcile builds a table from raw records (header first), trying the
// current layout, then the legacy layout, then row-by-row repair.
func (s Schema) Reconcile(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{Variant: VariantCurrent, Columns: s.columns()}
	}
	header, rows := records[0], records[1:]

	if t, ok := s.matchCurrent(header, rows); ok {
		return t
	}
	if t, ok := s.matchLegacy(header, rows); ok {
		return t
	}
	return s.repairRows(rows)
}

// matchCurrent succeeds when the header names every current column.
func (s Schema) matchCurrent(header []string, rows [][]string) (*Table, bool) {
	idx := indexHeader(header)
	if !hasAll(idx, s.Columns) || !fitsHeader(rows, len(header)) {
		return nil, false
	}
	return &Table{
		Variant: VariantCurrent,
		Columns: s.columns(),
		Rows:    project(rows, idx, s.Columns, ""),
	}, true
}

// matchLegacy succeeds when the header names every legacy column. The
// missing column is synthesized with s.Fill.
func (s Schema) matchLegacy(header []string, rows [][]string) (*Table, bool) {
	idx := indexHeader(header)
	if !hasAll(idx, s.Legacy) || !fitsHeader(rows, len(header)) {
		return nil, false
	}
	return &Table{
		Variant: VariantLegacy,
		Columns: s.columns(),
		Rows:    project(rows, idx, s.Columns, s.Fill),
	}, true
}

// repairRows ignores the header and fixes each row by length: rows of
// legacy width get s.Fill inserted at s.InsertIndex, longer rows are
// truncated and shorter rows padded with empty values.
func (s Schema) repairRows(rows [][]string) *Table {
	width := len(s.Columns)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		fixed := make([]string, 0, width)
		switch {
		case len(row) == width-1 && s.InsertIndex >= 0 && s.InsertIndex <= len(row):
			fixed = append(fixed, row[:s.InsertIndex]...)
			fixed = append(fixed, s.Fill)
			fixed = append(fixed, row[s.InsertIndex:]...)
		case len(row) > width:
			fixed = append(fixed, row[:width]...)
		default:
			fixed = append(fixed, row...)
			for len(fixed) < width {
				fixed = append(fixed, "")
			}
		}
		out = append(out, fixed)
	}
	return &Table{Variant: VariantRepaired, Columns: s.columns(), Rows: out}
}

func (s Schema) columns() []string {
	return append([]string(nil), s.Columns...)
}

// indexHeader maps column name to its first position in header.
func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func hasAll(idx map[string]int, cols []string) bool {
	for _, c := range cols {
		if _, ok := idx[c]; !ok {
			return false
		}
	}
	return true
}

// fitsHeader reports whether no row is wider than the header. Wider rows
// mean the header does not describe the data.
func fitsHeader(rows [][]string, width int) bool {
	for _, row := range rows {
		if len(row) > width {
			return false
		}
	}
	return true
}

// project reorders rows into cols. Cells past the end of a short row are
// empty; columns missing from the header are set to fill.
func project(rows [][]string, idx map[string]int, cols []string, fill string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		proj := make([]string, len(cols))
		for i, c := range cols {
			j, ok := idx[c]
			switch {
			case !ok:
				proj[i] = fill
			case j < len(row):
				proj[i] = row[j]
			}
		}
		out = append(out, proj)
	}
	return out
}
