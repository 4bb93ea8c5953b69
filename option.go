package parley

// Option is one selectable entry in a Select or MultiSelect: a display
// label, the value handed back on submission, and whether the entry
// starts out selected.
type Option[T any] struct {
	Label    string
	Value    T
	Selected bool
}

// NewOption returns an option whose label and value are set together.
func NewOption[T any](label string, value T) Option[T] {
	return Option[T]{Label: label, Value: value}
}

// WithSelected marks the option as initially selected.
func (o Option[T]) WithSelected(selected bool) Option[T] {
	o.Selected = selected
	return o
}
