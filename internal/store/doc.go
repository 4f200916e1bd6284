// Package store defines the persistence contracts of the benchmark.
//
// DbRepository is the capability the HTTP layer depends on. WorldAccessor and
// FortuneAccessor are the narrower, backend-facing collaborators a
// DbRepository implementation delegates to. Each backend under
// internal/platform provides accessors; internal/repository adapts them to
// DbRepository.
package store
