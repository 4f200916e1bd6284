// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml and WORLDBENCH_* environment
// variables. It provides type-safe access to server, database and tracing
// settings while keeping configuration details separate from request
// handling and storage code.
package config
