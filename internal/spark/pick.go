package spark

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hollowvale/sparkroll/internal/dice"
)

// Find resolves a sheet or table name to a concrete table.
//
// The query is normalized with NameKey and tried in order: a direct table
// match in the flat index, a sheet match (one of the sheet's tables is picked
// uniformly via src), then a substring pass over normalized sheet and table
// names in file order.
//
// Postcondition: Returns a Match with non-nil Sheet and Table, or an error
// wrapping ErrNotFound.
func (s *Store) Find(name string, src dice.Source) (Match, error) {
	key := NameKey(name)
	if key == "" {
		return Match{}, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	if m, ok := s.tableIdx[key]; ok {
		return m, nil
	}
	if sh, ok := s.sheetIdx[key]; ok && len(sh.Tables) > 0 {
		return pickFromSheet(sh, src), nil
	}

	// Fuzzy fallback: substring over normalized names, sheets first.
	for _, sh := range s.sheets {
		if len(sh.Tables) > 0 && strings.Contains(NameKey(sh.Name), key) {
			return pickFromSheet(sh, src), nil
		}
		for _, t := range sh.Tables {
			if strings.Contains(NameKey(t.Name), key) {
				return Match{Sheet: sh, Table: t}, nil
			}
		}
	}

	return Match{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func pickFromSheet(sh *Sheet, src dice.Source) Match {
	return Match{Sheet: sh, Table: sh.Tables[src.Intn(len(sh.Tables))]}
}

// ColumnPick is one column's contribution to a table roll.
type ColumnPick struct {
	Column string
	Die    int    // the raw d12 value drawn for this column
	Row    int    // zero-based row index the die resolved to
	Value  string // the picked cell
}

// TablePick is the outcome of rolling a table: one pick per column.
type TablePick struct {
	Table *Table
	Picks []ColumnPick
}

// Dice returns the raw die values in column order.
func (p TablePick) Dice() []int {
	out := make([]int, len(p.Picks))
	for i, pick := range p.Picks {
		out[i] = pick.Die
	}
	return out
}

// RollTable draws one d12 per column and picks that column's value from the
// indexed row. Tables shorter than the canonical twelve rows wrap the index
// into the actual row count, so every draw yields a valid pick.
//
// Precondition: src must be non-nil.
// Postcondition: len(result.Picks) == len(t.Columns) and every Row index is
// within t.Rows, or an error if the table has no rows or no columns.
func RollTable(t *Table, src dice.Source) (TablePick, error) {
	if len(t.Columns) == 0 || len(t.Rows) == 0 {
		return TablePick{}, fmt.Errorf("table %q has no rollable content", t.Name)
	}

	picks := make([]ColumnPick, len(t.Columns))
	for i, col := range t.Columns {
		die := src.Intn(canonicalRows) + 1
		row := (die - 1) % len(t.Rows)
		picks[i] = ColumnPick{
			Column: col,
			Die:    die,
			Row:    row,
			Value:  t.Rows[row][i],
		}
	}
	return TablePick{Table: t, Picks: picks}, nil
}

// All returns a restartable iterator over every table in file order.
func (s *Store) All() iter.Seq[TableRef] {
	return func(yield func(TableRef) bool) {
		for _, sh := range s.sheets {
			for _, t := range sh.Tables {
				if !yield(TableRef{Sheet: sh.Name, Table: t.Name, Columns: t.Columns}) {
					return
				}
			}
		}
	}
}
