package helpers

// ConfigOption changes one setting of a T. Constructors take a variadic list of them and pass it
// to ApplyOptions.
type ConfigOption[T any] interface {
	Configure(*T) error
}

// ConfigOptionFunc adapts a plain function to ConfigOption.
type ConfigOptionFunc[T any] func(*T) error

// Configure calls f.
func (f ConfigOptionFunc[T]) Configure(target *T) error { return f(target) }

// ApplyOptions applies options to target in order and stops at the first error. U may be any
// type implementing ConfigOption[T], so packages can give their option type its own name.
func ApplyOptions[T any, U ConfigOption[T]](target *T, options ...U) error {
	for _, o := range options {
		if err := o.Configure(target); err != nil {
			return err
		}
	}
	return nil
}
