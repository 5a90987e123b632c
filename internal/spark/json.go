package spark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// jsonTable is the wire shape of one table in the JSON (and YAML) format.
type jsonTable struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// parseJSON parses the structured format: an object keyed by sheet name,
// each sheet an object keyed by table name, each table {columns, rows}.
//
// It walks the token stream instead of unmarshalling into maps so that sheet
// and table order match the file. Tables that fail to decode and rows whose
// length does not match the columns are dropped with a warning; only invalid
// JSON at the document level is fatal.
//
// Postcondition: Returns a Store or an error wrapping ErrMalformedSource.
func parseJSON(data []byte, logger *zap.Logger) (*Store, error) {
	store := newStore()
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}

	for dec.More() {
		sheetName, err := nextKey(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
		}
		sheet := store.sheet(sheetName, logger)

		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrMalformedSource, sheetName, err)
		}
		for dec.More() {
			tableName, err := nextKey(dec)
			if err != nil {
				return nil, fmt.Errorf("%w: sheet %q: %v", ErrMalformedSource, sheetName, err)
			}

			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("%w: table %q: %v", ErrMalformedSource, tableName, err)
			}

			var jt jsonTable
			if err := json.Unmarshal(raw, &jt); err != nil {
				logger.Warn("table does not match the expected shape, skipping",
					zap.String("sheet", sheetName),
					zap.String("table", tableName),
					zap.Error(err))
				continue
			}
			if t, ok := buildTable(tableName, sheetName, jt.Columns, jt.Rows, logger); ok {
				store.addTable(sheet, t, logger)
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrMalformedSource, sheetName, err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content after document: %v", ErrMalformedSource, tok)
	}

	if store.Len() == 0 {
		return nil, fmt.Errorf("%w: no parseable tables in JSON input", ErrMalformedSource)
	}
	return store, nil
}

// buildTable validates columns and filters rows by shape. Shared by the JSON
// and YAML ingesters.
func buildTable(name, sheetName string, columns []string, rows [][]string, logger *zap.Logger) (*Table, bool) {
	if len(columns) == 0 {
		logger.Warn("table has no columns, skipping",
			zap.String("sheet", sheetName), zap.String("table", name))
		return nil, false
	}

	t := &Table{Name: name, Columns: columns}
	for i, row := range rows {
		if len(row) != len(columns) {
			logger.Warn("row length does not match columns, dropping row",
				zap.String("sheet", sheetName),
				zap.String("table", name),
				zap.Int("row", i),
				zap.Int("fields", len(row)),
				zap.Int("columns", len(columns)))
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		logger.Warn("table has no usable rows, skipping",
			zap.String("sheet", sheetName), zap.String("table", name))
		return nil, false
	}
	if len(t.Rows) < canonicalRows {
		logger.Warn("table is shorter than the canonical pick range",
			zap.String("sheet", sheetName),
			zap.String("table", name),
			zap.Int("rows", len(t.Rows)),
			zap.Int("expected", canonicalRows))
	}
	return t, true
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func nextKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
