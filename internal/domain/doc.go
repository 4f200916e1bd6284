// Package domain contains the benchmark entities (World and Fortune) and the
// small amount of logic that belongs to them: random key generation, query
// count clamping and fortune ordering. It is independent of any storage or
// delivery mechanism.
package domain
