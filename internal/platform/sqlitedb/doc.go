// Package sqlitedb implements the world and fortune accessors on an
// embedded SQLite database (modernc.org/sqlite, no cgo). It is meant for
// single-node runs that want real SQL without a PostgreSQL server.
package sqlitedb
