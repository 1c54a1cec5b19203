// Package uischema loads presentation overlays for form models: titles, submit
// labels, and per-field labels, placeholders, help text, widgets and option
// order. The model builder stays unaware of presentation while callers opt in
// through the Decorator.
package uischema
