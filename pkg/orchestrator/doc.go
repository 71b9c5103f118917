// Package orchestrator wires the load → parse → prepare → render pipeline,
// providing dependency injection friendly helpers for consumers that prefer a
// single entry point.
package orchestrator
