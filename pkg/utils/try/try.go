// Package try wraps (value, error) pairs so tests and setup code can
// unwrap them in one expression.
package try

// Fataler is anything with Fatal, like *testing.T or *log.Logger.
type Fataler interface {
	Fatal(...any)
}

// Either holds either a valid T or the error that prevented one.
type Either[T any] interface {
	// Get returns the wrapped pair as it was.
	Get() (T, error)

	// OrFatal returns the value, or calls ftl.Fatal with the error.
	//
	// When ftl has a Helper method (as *testing.T does), it is called
	// first so the failure points at the caller.
	OrFatal(ftl Fataler) T

	// OrDefault returns the value, or d on error.
	OrDefault(d T) T
}

// To wraps the return values of a (T, error) call.
func To[T any](ok T, ng error) Either[T] {
	if ng == nil {
		return tryOk[T]{ok}
	}
	return tryNg[T]{ng}
}

type tryOk[T any] struct {
	value T
}

type tryNg[T any] struct {
	err error
}

func (ok tryOk[T]) Get() (T, error) {
	return ok.value, nil
}

func (ok tryOk[T]) OrFatal(Fataler) T {
	return ok.value
}

func (ok tryOk[T]) OrDefault(T) T {
	return ok.value
}

func (ng tryNg[T]) Get() (T, error) {
	return *new(T), ng.err
}

func (ng tryNg[T]) OrFatal(ftl Fataler) T {
	if hlp, ok := ftl.(interface{ Helper() }); ok {
		hlp.Helper()
	}
	ftl.Fatal(ng.err)
	return *new(T)
}

func (ng tryNg[T]) OrDefault(d T) T {
	return d
}
