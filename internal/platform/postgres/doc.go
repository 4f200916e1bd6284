// Package postgres provides the raw-SQL PostgreSQL implementations of the
// store accessors, the shared *sql.DB constructor used by every database
// backend, and the embedded goose migrations that create and seed the world
// and fortune tables.
package postgres
