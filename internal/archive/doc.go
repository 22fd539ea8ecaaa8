// Package archive implements the resumable batch-download engine: the
// per-URL fetch state machine, its outcome taxonomy, and the sequential
// run orchestration around it.
package archive
