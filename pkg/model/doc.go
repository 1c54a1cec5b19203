// Package model defines the typed form model consumed by renderers. Builders
// reside in internal/model but return the types defined here. A model is
// derived from a validation schema: every schema field becomes a Field with a
// widget (text, radio, select, checkbox), its options, and length/required
// rules exposed as ValidationRule entries so renderers can map them onto HTML
// attributes. Presentation details such as labels, placeholders and option
// order come from Decorators (see pkg/uischema).
package model
