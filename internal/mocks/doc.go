// Package mocks provides hand-written test doubles for the store interfaces.
// Each mock records its calls and lets a test override behavior through Fn
// fields, falling back to canned return values.
package mocks
