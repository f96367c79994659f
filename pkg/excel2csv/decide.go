package excel2csv

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Decision is the verdict for an export target that already exists.
type Decision int

const (
	// Skip keeps the existing file and writes nothing.
	Skip Decision = iota
	// Overwrite replaces the existing file.
	Overwrite
)

func (d Decision) String() string {
	if d == Overwrite {
		return "overwrite"
	}
	return "skip"
}

// DecideFunc settles what to do with an existing export target.
type DecideFunc func(existingPath string) Decision

// Overwrite policy names accepted by ParsePolicy.
const (
	PolicyAsk    = "ask"
	PolicyAlways = "always"
	PolicyNever  = "never"
)

// AlwaysOverwrite replaces every existing target.
func AlwaysOverwrite(string) Decision { return Overwrite }

// NeverOverwrite keeps every existing target.
func NeverOverwrite(string) Decision { return Skip }

// Prompt asks on out and reads the answer from in. Only "y" or "yes"
// overwrites; any other answer, an empty line or EOF skips. Calls are
// serialized so concurrent callers never interleave prompts.
func Prompt(in io.Reader, out io.Writer) DecideFunc {
	var mu sync.Mutex
	r := bufio.NewReader(in)
	return func(existingPath string) Decision {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(out, "Found %q.\nWould you like to overwrite? (y/[n]): ", existingPath)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return Skip
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return Overwrite
		default:
			return Skip
		}
	}
}

// ParsePolicy maps a policy name to a DecideFunc. The ask policy prompts
// through in and out.
func ParsePolicy(name string, in io.Reader, out io.Writer) (DecideFunc, error) {
	switch strings.ToLower(name) {
	case PolicyAsk:
		return Prompt(in, out), nil
	case PolicyAlways:
		return AlwaysOverwrite, nil
	case PolicyNever:
		return NeverOverwrite, nil
	default:
		return nil, fmt.Errorf("%w: overwrite policy %q (must be ask, always, or never)", ErrInvalidOptions, name)
	}
}
