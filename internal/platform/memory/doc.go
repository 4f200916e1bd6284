// Package memory provides in-process implementations of the store accessors.
// They back the "memory" database backend and serve as fixtures in tests.
package memory
