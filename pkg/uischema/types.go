package uischema

// Store keeps the parsed form overlays keyed by form id. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]Form
}

// Form describes the overrides for one form model.
type Form struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig captures form level copy.
type FormConfig struct {
	Title       string            `json:"title" yaml:"title"`
	SubmitLabel string            `json:"submitLabel" yaml:"submitLabel"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

// FieldConfig customises how a single field is presented.
type FieldConfig struct {
	Label       string         `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string         `json:"help,omitempty" yaml:"help,omitempty"`
	Widget      string         `json:"widget,omitempty" yaml:"widget,omitempty"`
	Options     []OptionConfig `json:"options,omitempty" yaml:"options,omitempty"`
}

// OptionConfig relabels and orders a radio/select choice.
type OptionConfig struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type documentFile struct {
	Forms map[string]formFile `yaml:"forms"`
}

type formFile struct {
	Form   FormConfig             `yaml:"form"`
	Fields map[string]FieldConfig `yaml:"fields"`
}
