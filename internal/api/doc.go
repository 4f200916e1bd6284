// Package api serves the benchmark HTTP endpoints. Handlers translate
// requests into store.DbRepository calls and format the results as text,
// JSON or HTML.
package api
