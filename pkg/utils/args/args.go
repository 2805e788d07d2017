// Package args adapts parsing functions to the flag.Value interface.
package args

// Adapter carries a flag value of type T parsed from its string form.
type Adapter[T interface{ String() string }] struct {
	value  T
	parser func(string) (T, error)
	isSet  bool
}

// Parser builds an Adapter around parser, for use with flag.Var.
func Parser[T interface{ String() string }](parser func(string) (T, error)) *Adapter[T] {
	return &Adapter[T]{parser: parser}
}

func (a *Adapter[T]) String() string {
	if !a.isSet {
		return ""
	}
	return a.value.String()
}

func (a *Adapter[T]) Set(s string) error {
	v, err := a.parser(s)
	if err != nil {
		return err
	}
	a.value = v
	a.isSet = true
	return nil
}

func (a Adapter[T]) Value() T {
	return a.value
}

// IsSet reports whether the flag appeared on the command line.
func (a Adapter[T]) IsSet() bool {
	return a.isSet
}
