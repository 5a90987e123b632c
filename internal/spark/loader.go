package spark

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Format selects the source format for Load.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DetectFormat picks the format from a file path's extension. Anything that
// is not .json/.yaml/.yml is treated as the CSV export format, matching the
// tool's historical default.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// Load parses spark tables from raw bytes in the given format.
//
// Precondition: logger must be non-nil; recoverable parse problems are
// reported through it, never swallowed.
// Postcondition: Returns a Store holding at least one table, or an error
// wrapping ErrMalformedSource.
func Load(data []byte, format Format, logger *zap.Logger) (*Store, error) {
	switch format {
	case FormatCSV:
		return parseCSV(data, logger)
	case FormatJSON:
		return parseJSON(data, logger)
	case FormatYAML:
		return parseYAML(data, logger)
	default:
		return nil, fmt.Errorf("%w: unknown format %v", ErrMalformedSource, format)
	}
}

// LoadFile reads path in one shot and parses it with the format implied by
// its extension.
//
// Postcondition: Returns a Store, or the unmodified read error, or a parse
// error wrapping ErrMalformedSource.
func LoadFile(path string, logger *zap.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spark file %s: %w", path, err)
	}

	store, err := Load(data, DetectFormat(path), logger)
	if err != nil {
		return nil, fmt.Errorf("parsing spark file %s: %w", path, err)
	}
	logger.Debug("spark tables loaded",
		zap.String("path", path),
		zap.Stringer("format", DetectFormat(path)),
		zap.Int("sheets", len(store.Sheets())),
		zap.Int("tables", store.Len()),
	)
	return store, nil
}
