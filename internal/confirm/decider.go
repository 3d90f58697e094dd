// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decision is the user's answer to a confirmation prompt.
type Decision int

const (
	Invalid Decision = iota
	Accept
	Reject
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "invalid"
	}
}

// ParseDecision normalizes a raw answer. Matching is case-insensitive and
// ignores surrounding whitespace; an empty answer accepts.
func ParseDecision(s string) Decision {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "y":
		return Accept
	case "n":
		return Reject
	default:
		return Invalid
	}
}

// Decider supplies the yes/no answer for a prompt. An error means no
// answer can be obtained (for example, input was closed) and aborts the
// search.
type Decider interface {
	Decide(ctx context.Context, prompt string) (Decision, error)
}

// ConsoleDecider writes the prompt to Out and reads one line from In. It
// blocks until a line is available; there is no timeout.
type ConsoleDecider struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleDecider returns a decider reading answers from in and writing
// prompts to out.
func NewConsoleDecider(in io.Reader, out io.Writer) *ConsoleDecider {
	return &ConsoleDecider{in: bufio.NewReader(in), out: out}
}

// Decide prints prompt and parses the next input line. A final line
// without a trailing newline is still honoured; input closed before any
// text is read returns io.EOF.
func (d *ConsoleDecider) Decide(ctx context.Context, prompt string) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Invalid, err
	}
	fmt.Fprint(d.out, prompt)

	line, err := d.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return ParseDecision(line), nil
		}
		return Invalid, err
	}
	return ParseDecision(line), nil
}
