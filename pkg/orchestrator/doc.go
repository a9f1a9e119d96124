// Package orchestrator wires the page-ready pipeline of a dynamic form:
// schema loader → optional descriptor transformer → form renderer →
// submission handler. The result is a live form owned by the caller, plus
// helpers to render it through a renderer registry.
package orchestrator
