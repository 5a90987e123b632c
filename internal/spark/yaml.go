package spark

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// parseYAML parses the structured format from YAML. The document shape
// mirrors the JSON format: sheet name → table name → {columns, rows}.
//
// Decoding goes through yaml.Node so sheet and table order follow the file.
// Per-table shape problems are skipped with a warning; only an invalid
// document is fatal.
//
// Postcondition: Returns a Store or an error wrapping ErrMalformedSource.
func parseYAML(data []byte, logger *zap.Logger) (*Store, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty YAML document", ErrMalformedSource)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of sheets", ErrMalformedSource)
	}

	store := newStore()
	for i := 0; i < len(root.Content)-1; i += 2 {
		sheetName := root.Content[i].Value
		sheetNode := root.Content[i+1]
		if sheetNode.Kind != yaml.MappingNode {
			logger.Warn("sheet is not a mapping of tables, skipping",
				zap.String("sheet", sheetName))
			continue
		}
		sheet := store.sheet(sheetName, logger)

		for j := 0; j < len(sheetNode.Content)-1; j += 2 {
			tableName := sheetNode.Content[j].Value
			tableNode := sheetNode.Content[j+1]

			var jt jsonTable
			if err := tableNode.Decode(&jt); err != nil {
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
	}

	if store.Len() == 0 {
		return nil, fmt.Errorf("%w: no parseable tables in YAML input", ErrMalformedSource)
	}
	return store, nil
}
