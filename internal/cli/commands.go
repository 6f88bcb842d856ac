package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/tourguide/pkg/condition"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/aretw0/tourguide/pkg/tour"
)

const helpText = `Commands:
  [enter], n, next     next step
  b, back              previous step
  s, show [id|index]   show a step (the current one again when omitted)
  h, hide              hide the current step
  1-9                  press a step button
  set key=value        set a show_on variable (value parsed as JSON)
  steps                list steps
  c, cancel            cancel the tour
  done, complete       complete the tour
  q, quit              leave without confirmation
`

// executor runs line commands against a tour.
type executor struct {
	tour *tour.Tour
	env  *condition.Env
	out  io.Writer
}

// exec runs one command line. It reports whether the user asked to quit.
func (x *executor) exec(line string) (bool, error) {
	line, err := sanitizeLine(line)
	if err != nil {
		return false, err
	}
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "", "n", "next":
		x.tour.Next()
	case "b", "back", "p", "prev":
		x.tour.Back()
	case "h", "hide":
		x.tour.Hide()
	case "s", "show":
		return false, x.show(arg)
	case "c", "cancel", "esc":
		x.tour.Cancel()
	case "done", "complete":
		x.tour.Complete()
	case "set":
		return false, x.set(arg)
	case "steps":
		x.listSteps()
	case "?", "help":
		fmt.Fprint(x.out, helpText)
	case "q", "quit", "exit":
		x.tour.CancelWith(ports.Accept)
		return true, nil
	default:
		if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= 9 {
			return false, x.press(n - 1)
		}
		return false, fmt.Errorf("unknown command %q (type 'help')", name)
	}
	return false, nil
}

func (x *executor) show(key string) error {
	if key == "" {
		cur := x.tour.GetCurrentStep()
		if cur == nil {
			return fmt.Errorf("no current step")
		}
		key = cur.ID()
	}
	if x.tour.Show(key) {
		return nil
	}
	if i, err := strconv.Atoi(key); err == nil && x.tour.ShowAt(i) {
		return nil
	}
	return fmt.Errorf("no step %q", key)
}

func (x *executor) set(assignment string) error {
	key, raw, ok := strings.Cut(assignment, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("usage: set key=value")
	}
	raw = strings.TrimSpace(raw)

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	x.env.SetPath(key, value)
	printSystemMessage(x.out, "%s = %v", key, value)
	return nil
}

func (x *executor) press(i int) error {
	cur := x.tour.GetCurrentStep()
	if cur == nil {
		return fmt.Errorf("no current step")
	}
	buttons := cur.Options().Buttons
	if i >= len(buttons) {
		return fmt.Errorf("step %q has %d buttons", cur.ID(), len(buttons))
	}
	return x.tour.Dispatch(buttons[i].Action)
}

func (x *executor) listSteps() {
	cur := x.tour.GetCurrentStep()
	for i, s := range x.tour.Steps() {
		mark := " "
		if s == cur {
			mark = "*"
		}
		skipped := ""
		if !s.Eligible() {
			skipped = " (skipped)"
		}
		fmt.Fprintf(x.out, "%s %d. %s%s\n", mark, i, s.ID(), skipped)
	}
}
