// Package store persists finished reviews in SQLite via modernc.org/sqlite.
// Schema changes are embedded SQL migrations applied in filename order.
package store
