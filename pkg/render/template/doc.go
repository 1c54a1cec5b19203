// Package template defines the template engine seam HTML renderers rely on.
// The pongo subpackage provides the default implementation.
package template
