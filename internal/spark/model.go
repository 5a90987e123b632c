// Package spark loads, indexes, and rolls spark reference tables from CSV,
// JSON, or YAML sources.
package spark

import (
	"errors"

	"go.uber.org/zap"
)

// Errors returned by loading and lookup.
var (
	// ErrMalformedSource marks input that is structurally unrecoverable:
	// invalid JSON/YAML, or a CSV that yields no parseable table at all.
	ErrMalformedSource = errors.New("malformed spark source")
	// ErrNotFound marks a name that matched neither a table nor a sheet.
	ErrNotFound = errors.New("no sheet or table matched")
)

// canonicalRows is the row count the 12-sided pick scheme assumes. Shorter
// tables still roll; their index wraps into the actual row count.
const canonicalRows = 12

// Table is a single spark table: named columns over string rows.
//
// Invariant after load: len(Columns) >= 1, len(Rows) >= 1, and every row has
// exactly len(Columns) values.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Sheet is a named group of tables in file order.
type Sheet struct {
	Name   string
	Tables []*Table
}

// TableRef identifies one table for listing: its sheet, name, and columns.
type TableRef struct {
	Sheet   string
	Table   string
	Columns []string
}

// Store is the loaded, immutable collection of sheets. It keeps sheets and
// tables in file order and maintains a flat normalized-name index over all
// tables for direct lookup regardless of sheet.
type Store struct {
	sheets   []*Sheet
	sheetIdx map[string]*Sheet
	tableIdx map[string]Match
}

// Match pairs a table with the sheet that contains it.
type Match struct {
	Sheet *Sheet
	Table *Table
}

// Sheets returns the sheets in file order.
func (s *Store) Sheets() []*Sheet {
	return s.sheets
}

// Len returns the total number of tables across all sheets.
func (s *Store) Len() int {
	return len(s.tableIdx)
}

func newStore() *Store {
	return &Store{
		sheetIdx: make(map[string]*Sheet),
		tableIdx: make(map[string]Match),
	}
}

// sheet returns the sheet registered under name, creating it on first use.
// Duplicate names (after normalization) fold into the existing sheet.
func (s *Store) sheet(name string, logger *zap.Logger) *Sheet {
	key := NameKey(name)
	if existing, ok := s.sheetIdx[key]; ok {
		if existing.Name != name {
			logger.Warn("sheet name collides after normalization, folding",
				zap.String("sheet", name),
				zap.String("existing", existing.Name),
			)
		}
		return existing
	}
	sh := &Sheet{Name: name}
	s.sheets = append(s.sheets, sh)
	s.sheetIdx[key] = sh
	return sh
}

// addTable attaches a finished table to its sheet and registers it in the
// flat index. The first table claims a contested normalized name.
func (s *Store) addTable(sh *Sheet, t *Table, logger *zap.Logger) {
	sh.Tables = append(sh.Tables, t)

	key := NameKey(t.Name)
	if existing, ok := s.tableIdx[key]; ok {
		logger.Warn("duplicate table name, direct lookup keeps the first",
			zap.String("table", t.Name),
			zap.String("sheet", sh.Name),
			zap.String("existing_sheet", existing.Sheet.Name),
		)
		return
	}
	s.tableIdx[key] = Match{Sheet: sh, Table: t}
}
