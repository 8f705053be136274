// Package mocks provides hand-rolled mock implementations of the store and
// auth interfaces for use in tests. Each mock exposes function fields for
// customizable behavior and falls back to a simple in-memory default.
package mocks
