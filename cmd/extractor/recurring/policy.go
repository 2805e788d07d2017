package recurring

import (
	"fmt"
	"strings"
	"time"

	"github.com/nitikab23/autoai/pkg/loop"
)

// Policy decides, from a cycle's outcome, how the loop goes on.
type Policy interface {
	Next(picked bool, err error) loop.Next
	String() string
}

// ParsePolicy reads a policy from its command line form,
// "forever[:COOLDOWN]" or "backlog".
func ParsePolicy(s string) (Policy, error) {
	typ, param, hasParam := strings.Cut(s, ":")
	switch typ {
	case "forever":
		if !hasParam || param == "" {
			return Forever(0), nil
		}
		cooldown, err := time.ParseDuration(param)
		if err != nil {
			return nil, fmt.Errorf(`cannot parse %s as "forever:COOLDOWN": %w`, s, err)
		}
		return Forever(cooldown), nil
	case "backlog":
		if hasParam {
			return nil, fmt.Errorf("backlog policy takes no parameter: %s", s)
		}
		return Backlog(), nil
	}
	return nil, fmt.Errorf("unknown policy: %s (forever or backlog)", typ)
}

// Forever keeps the loop running: immediately while tasks keep coming,
// after cooldown when the queue runs dry.
func Forever(cooldown time.Duration) Policy {
	return forever(cooldown)
}

type forever time.Duration

func (f forever) String() string {
	return fmt.Sprintf("forever:%s", time.Duration(f).String())
}

func (f forever) Next(picked bool, _ error) loop.Next {
	if picked {
		return loop.Continue(0)
	}
	return loop.Continue(time.Duration(f))
}

// Backlog drains what is queued now and then stops.
func Backlog() Policy {
	return backlog{}
}

type backlog struct{}

func (backlog) String() string {
	return "backlog"
}

func (backlog) Next(picked bool, _ error) loop.Next {
	if picked {
		return loop.Continue(0)
	}
	return loop.Break(nil)
}

// UntilError wraps p so any cycle error stops the loop with that error.
func UntilError(p Policy) Policy {
	return untilError{base: p}
}

type untilError struct {
	base Policy
}

func (u untilError) String() string {
	return fmt.Sprintf("%s (until error)", u.base.String())
}

func (u untilError) Next(picked bool, err error) loop.Next {
	if err != nil {
		return loop.Break(err)
	}
	return u.base.Next(picked, err)
}
