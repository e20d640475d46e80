// Package views computes the read-only views rendered from task and project
// collections: filtered lists, completion progress, tag sets and status
// labels.
//
// Every function is pure. Inputs are never mutated and results never share
// backing arrays with the inputs, so callers may invoke them concurrently
// and recompute them after each mutation of the underlying collections.
package views
