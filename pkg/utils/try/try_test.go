package try_test

import (
	"errors"
	"testing"

	"github.com/nitikab23/autoai/pkg/utils/try"
)

type fataler struct {
	fatal  []any
	helped bool
}

func (f *fataler) Fatal(args ...any) {
	f.fatal = append(f.fatal, args...)
}

func (f *fataler) Helper() {
	f.helped = true
}

func TestTo(t *testing.T) {

	t.Run("a value passes through", func(t *testing.T) {
		testee := try.To(42, nil)

		value, err := testee.Get()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if value != 42 {
			t.Errorf("unmatch: actual = %d, expected = 42", value)
		}

		f := &fataler{}
		if testee.OrFatal(f) != 42 {
			t.Error("OrFatal should return the value")
		}
		if len(f.fatal) != 0 {
			t.Error("Fatal should not be called")
		}
		if testee.OrDefault(7) != 42 {
			t.Error("OrDefault should return the value")
		}
	})

	t.Run("an error reaches Fatal", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		testee := try.To(0, expectedErr)

		if _, err := testee.Get(); !errors.Is(err, expectedErr) {
			t.Errorf("unmatch error: actual = %v, expected = %v", err, expectedErr)
		}

		f := &fataler{}
		testee.OrFatal(f)
		if len(f.fatal) != 1 || !errors.Is(f.fatal[0].(error), expectedErr) {
			t.Errorf("Fatal should be called with the error: %v", f.fatal)
		}
		if !f.helped {
			t.Error("Helper should be called before Fatal")
		}

		if testee.OrDefault(7) != 7 {
			t.Error("OrDefault should fall back to the default")
		}
	})
}
