//go:build cgo

package report

// With cgo the mattn driver is used; it is faster than the pure Go one.

import _ "github.com/mattn/go-sqlite3"

const sqliteDriver = "sqlite3"
