package form

// InputType mirrors the kind of control that produced a change.
type InputType string

const (
	InputText     InputType = "text"
	InputRadio    InputType = "radio"
	InputSelect   InputType = "select"
	InputCheckbox InputType = "checkbox"
)

// Input is a single field change event. Checkbox controls report their state
// through Checked; every other control reports Value.
type Input struct {
	Name    string    `json:"name"`
	Type    InputType `json:"type,omitempty"`
	Value   string    `json:"value,omitempty"`
	Checked bool      `json:"checked,omitempty"`
}

// Text builds a change event for a text-like control.
func Text(name, value string) Input {
	return Input{Name: name, Type: InputText, Value: value}
}

// Checkbox builds a change event for a checkbox control.
func Checkbox(name string, checked bool) Input {
	return Input{Name: name, Type: InputCheckbox, Checked: checked}
}

func (in Input) normalized() any {
	if in.Type == InputCheckbox {
		return in.Checked
	}
	return in.Value
}
