package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/aretw0/tourguide/pkg/adapters/terminal"
	"github.com/aretw0/tourguide/pkg/condition"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/aretw0/tourguide/pkg/tour"
)

// pumpLines reads in line by line on its own goroutine, so the session loop
// can also watch the context. The channel closes on EOF.
func pumpLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// lineConfirmer answers confirmation prompts from the session's line feed.
// Invalid answers are asked again up to three times; EOF and cancellation count as "no".
func lineConfirmer(ctx context.Context, lines <-chan string, out io.Writer) ports.Confirmer {
	return ports.ConfirmFunc(func(message string) bool {
		for attempt := 0; attempt < 3; attempt++ {
			fmt.Fprintf(out, "%s [y/N] ", message)
			select {
			case <-ctx.Done():
				return false
			case line, ok := <-lines:
				if !ok {
					return false
				}
				answer, err := terminal.ParseConfirm(line, false)
				if err == nil {
					return answer
				}
				fmt.Fprintln(out, err)
			}
		}
		return false
	})
}

// RunSession drives t from text commands until it completes, is cancelled,
// or ctx ends. Steps render through whatever renderer t was built with.
func RunSession(ctx context.Context, t *tour.Tour, env *condition.Env, lines <-chan string, out io.Writer) error {
	var outcome domain.TourEvent
	t.On(domain.TourComplete, func(tour.Event) { outcome = domain.TourComplete })
	t.On(domain.TourCancel, func(tour.Event) { outcome = domain.TourCancel })

	printSystemMessage(out, "Tour '%s' (%d steps). Type 'help' for commands.", t.Name(), t.Len())
	if err := t.Start(); err != nil {
		return err
	}

	x := &executor{tour: t, env: env, out: out}
	for t.State() == domain.StateActive {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			t.CancelWith(ports.Accept)
			fmt.Fprintln(out)
			printSystemMessage(out, "Interrupted.")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				t.CancelWith(ports.Accept)
				fmt.Fprintln(out)
				return io.EOF
			}
			quit, err := x.exec(line)
			if err != nil {
				fmt.Fprintln(out, err)
			}
			if quit {
				printSystemMessage(out, "Left tour '%s'.", t.Name())
				return nil
			}
		}
	}

	switch outcome {
	case domain.TourComplete:
		printSystemMessage(out, "Tour '%s' completed.", t.Name())
	case domain.TourCancel:
		printSystemMessage(out, "Tour '%s' cancelled.", t.Name())
	}
	return nil
}
