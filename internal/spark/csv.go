package spark

import (
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// defaultSheetName is synthesized when a table appears before any sheet header.
const defaultSheetName = "UNKNOWN"

// csvState tracks the line classifier through the single-column export format.
type csvState int

const (
	seekingSheet csvState = iota
	seekingTable
	seekingHeader
	readingRows
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parseCSV parses the semicolon-delimited single-column export format.
//
// The format interleaves three line shapes inside a flat file: a bare line
// names a sheet, a ";NAME;" line starts a table, the next line carries the
// column header, and "index;v1;v2;..." lines are data rows until the shape
// breaks. Deviations are table- or row-scoped: malformed sections are skipped
// with a warning and parsing continues.
//
// Postcondition: Returns a Store with at least one table, or an error
// wrapping ErrMalformedSource.
func parseCSV(data []byte, logger *zap.Logger) (*Store, error) {
	store := newStore()
	lines := strings.Split(string(bytes.TrimPrefix(data, utf8BOM)), "\n")

	var (
		state   = seekingSheet
		sheet   *Sheet
		pending *Table
	)

	finish := func() {
		if pending == nil {
			return
		}
		t := pending
		pending = nil
		switch {
		case len(t.Columns) == 0:
			logger.Warn("table has no column header, skipping",
				zap.String("table", t.Name), zap.String("sheet", sheet.Name))
		case len(t.Rows) == 0:
			logger.Warn("table has no usable rows, skipping",
				zap.String("table", t.Name), zap.String("sheet", sheet.Name))
		default:
			if len(t.Rows) < canonicalRows {
				logger.Warn("table is shorter than the canonical pick range",
					zap.String("table", t.Name),
					zap.Int("rows", len(t.Rows)),
					zap.Int("expected", canonicalRows))
			}
			store.addTable(sheet, t, logger)
		}
	}

	for _, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")

		if name, ok := sheetHeaderLine(line); ok {
			finish()
			sheet = store.sheet(name, logger)
			state = seekingTable
			continue
		}
		if name, ok := tableStartLine(line); ok {
			finish()
			if sheet == nil {
				sheet = store.sheet(defaultSheetName, logger)
			}
			pending = &Table{Name: name}
			state = seekingHeader
			continue
		}

		switch state {
		case seekingHeader:
			if cols, ok := headerLine(line); ok {
				pending.Columns = cols
				state = readingRows
			} else {
				finish()
				state = seekingTable
			}
		case readingRows:
			values, isRow := dataRowLine(line)
			if !isRow {
				finish()
				state = seekingTable
				continue
			}
			if len(values) != len(pending.Columns) {
				logger.Warn("row field count does not match header, dropping row",
					zap.String("table", pending.Name),
					zap.Int("fields", len(values)),
					zap.Int("columns", len(pending.Columns)))
				continue
			}
			pending.Rows = append(pending.Rows, values)
		}
	}
	finish()

	if store.Len() == 0 {
		return nil, fmt.Errorf("%w: no parseable tables in CSV input", ErrMalformedSource)
	}
	return store, nil
}

// sheetHeaderLine matches a bare non-empty line with no semicolons; a
// trailing ':' on the name is dropped.
func sheetHeaderLine(line string) (string, bool) {
	if strings.Contains(line, ";") {
		return "", false
	}
	name := strings.TrimSpace(line)
	if name == "" {
		return "", false
	}
	name = strings.TrimSpace(strings.TrimSuffix(name, ":"))
	if name == "" {
		return "", false
	}
	return name, true
}

// tableStartLine matches ";NAME;": exactly one non-empty field flanked by
// empty fields.
func tableStartLine(line string) (string, bool) {
	if !strings.Contains(line, ";") {
		return "", false
	}
	parts := splitFields(line)
	if len(parts) < 2 || parts[0] != "" || parts[1] == "" {
		return "", false
	}
	for _, p := range parts[2:] {
		if p != "" {
			return "", false
		}
	}
	return parts[1], true
}

// headerLine matches the column header: a leading empty field, then one
// non-empty field per column. At least two columns are required; a single
// flanked name is a table-start line, not a header.
func headerLine(line string) ([]string, bool) {
	if !strings.Contains(line, ";") {
		return nil, false
	}
	parts := splitFields(line)
	if parts[0] != "" {
		return nil, false
	}
	cols := trimTrailingEmpty(parts[1:])
	if len(cols) < 2 {
		return nil, false
	}
	for _, c := range cols {
		if c == "" {
			return nil, false
		}
	}
	return cols, true
}

// dataRowLine matches "index;v1;v2;...": a positive-integer row counter
// followed by the row values. The index only marks the line as a row; it is
// not stored.
func dataRowLine(line string) ([]string, bool) {
	if !strings.Contains(line, ";") {
		return nil, false
	}
	parts := splitFields(line)
	if !isPositiveInt(parts[0]) {
		return nil, false
	}
	return trimTrailingEmpty(parts[1:]), true
}

func splitFields(line string) []string {
	parts := strings.Split(line, ";")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func trimTrailingEmpty(fields []string) []string {
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func isPositiveInt(s string) bool {
	if s == "" {
		return false
	}
	nonzero := false
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		if s[i] != '0' {
			nonzero = true
		}
	}
	return nonzero
}
