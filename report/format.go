package report

import (
	"fmt"
	"path"
	"strings"

	"github.com/hupe1980/episcan/internal/compress"
)

// Format identifies an output format.
type Format int

const (
	// TSV is tab-separated text.
	TSV Format = iota
	// JSONL is newline-delimited JSON.
	JSONL
	// SQLite is a SQLite database.
	SQLite
)

func (f Format) String() string {
	switch f {
	case JSONL:
		return "jsonl"
	case SQLite:
		return "sqlite"
	default:
		return "tsv"
	}
}

// ParseFormat parses a format name as produced by String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "tsv", "txt", "text":
		return TSV, nil
	case "jsonl", "ndjson", "json":
		return JSONL, nil
	case "sqlite", "sqlite3", "db":
		return SQLite, nil
	default:
		return TSV, fmt.Errorf("report: unknown format %q", s)
	}
}

// FormatFor picks the format from a file name, ignoring any compression
// extension. Unknown extensions select TSV.
func FormatFor(name string) Format {
	switch strings.ToLower(path.Ext(compress.Trim(name))) {
	case ".jsonl", ".ndjson", ".json":
		return JSONL
	case ".db", ".sqlite", ".sqlite3":
		return SQLite
	default:
		return TSV
	}
}
