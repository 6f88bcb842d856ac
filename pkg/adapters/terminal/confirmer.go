package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrInvalidAnswer is returned by ParseConfirm for anything but yes/no forms.
var ErrInvalidAnswer = errors.New("invalid confirmation input")

// ParseConfirm interprets a yes/no answer. Empty input yields def.
func ParseConfirm(input string, def bool) (bool, error) {
	clean := strings.ToLower(strings.TrimSpace(input))
	switch clean {
	case "":
		return def, nil
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: '%s' (expected y/n/yes/no)", ErrInvalidAnswer, input)
}

// Confirmer implements ports.Confirmer on a line reader.
// Invalid answers are asked again up to MaxAttempts; EOF counts as "no".
type Confirmer struct {
	mu          sync.Mutex
	in          *bufio.Reader
	out         io.Writer
	def         bool
	MaxAttempts int
}

// NewConfirmer reads answers from in and prints prompts to out. Nil values
// default to stdin and stdout. def is the answer to an empty line.
func NewConfirmer(in io.Reader, out io.Writer, def bool) *Confirmer {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Confirmer{in: bufio.NewReader(in), out: out, def: def, MaxAttempts: 3}
}

// Confirm implements ports.Confirmer.
func (c *Confirmer) Confirm(message string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	hint := "[y/N]"
	if c.def {
		hint = "[Y/n]"
	}
	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		fmt.Fprintf(c.out, "%s %s ", message, hint)
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(c.out)
			return false
		}
		ok, perr := ParseConfirm(line, c.def)
		if perr == nil {
			return ok
		}
		fmt.Fprintln(c.out, perr)
	}
	return false
}
