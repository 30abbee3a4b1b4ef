//go:build !cgo

package report

import _ "modernc.org/sqlite"

const sqliteDriver = "sqlite"
