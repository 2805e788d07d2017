package args_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/nitikab23/autoai/pkg/utils/args"
)

type port int

func (p port) String() string {
	return strconv.Itoa(int(p))
}

func parsePort(s string) (port, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 || 65535 < v {
		return 0, fmt.Errorf("port out of range: %d", v)
	}
	return port(v), nil
}

func TestParser(t *testing.T) {

	t.Run("an unset flag is empty", func(t *testing.T) {
		testee := args.Parser(parsePort)

		if testee.IsSet() {
			t.Error("a fresh adapter should not be set")
		}
		if testee.String() != "" {
			t.Errorf("a fresh adapter should render empty: %q", testee.String())
		}
	})

	t.Run("a parsable value is stored", func(t *testing.T) {
		testee := args.Parser(parsePort)

		if err := testee.Set("8080"); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if !testee.IsSet() {
			t.Error("the adapter should be set")
		}
		if testee.Value() != 8080 {
			t.Errorf("unmatch: actual = %d, expected = 8080", testee.Value())
		}
		if testee.String() != "8080" {
			t.Errorf("unmatch: actual = %s, expected = 8080", testee.String())
		}
	})

	t.Run("a parse error is passed through and nothing is stored", func(t *testing.T) {
		testee := args.Parser(parsePort)

		if err := testee.Set("not-a-port"); err == nil {
			t.Error("a broken value should be rejected")
		}
		if testee.IsSet() {
			t.Error("a rejected value should not set the adapter")
		}
	})

	t.Run("a rejecting parser propagates its error", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		testee := args.Parser(func(string) (port, error) { return 0, expectedErr })

		if err := testee.Set("8080"); !errors.Is(err, expectedErr) {
			t.Errorf("unmatch error: actual = %v, expected = %v", err, expectedErr)
		}
	})
}
