// Package report writes pair-scan results.
//
// Three formats are supported, chosen by the output name:
//
//	*.tsv, *.txt        tab-separated, one pair per line
//	*.jsonl, *.ndjson   one JSON object per line, via the codec package
//	*.db, *.sqlite      SQLite table pairs(marker_a, marker_b, statistic, p_value)
//
// Text formats may carry a compression extension (pairs.tsv.zst). The
// SQLite driver is modernc.org/sqlite unless the build has cgo, in which
// case github.com/mattn/go-sqlite3 is used.
package report
