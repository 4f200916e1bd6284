// Package gormdb implements the store accessors on top of gorm. It shares
// the pgx-backed *sql.DB opened by the postgres package, so pool limits and
// query tracing apply to ORM traffic as well.
package gormdb
