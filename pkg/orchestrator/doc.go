// Package orchestrator wires the contract → schema → model builder → renderer
// pipeline for the registration form, providing dependency injection friendly
// helpers for consumers that prefer a single entry point.
package orchestrator
