package model

// Decorator enriches a form model with presentation details after the
// schema-derived structure has been built.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Apply runs decorators in order, stopping at the first error.
func Apply(form *FormModel, decorators ...Decorator) error {
	for _, d := range decorators {
		if d == nil {
			continue
		}
		if err := d.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}
