package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tourguide/pkg/adapters/loam"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/dsl"
	"github.com/aretw0/tourguide/pkg/schema"
)

// SampleTour returns the starter tour written by Scaffold.
func SampleTour(name string) (*schema.Tour, error) {
	return dsl.New(name).
		ConfirmCancel("Leave the tour? You can restart it any time.").
		Var("user", map[string]any{"plan": "free"}).
		Defaults().Button("Back", domain.ActionBack).Button("Next", domain.ActionNext).
		Step("welcome").Title("Welcome").
		Text("Each step is a Markdown file in this directory. Edit the text and run `tourguide run` again.").
		Button("Start", domain.ActionNext).
		Step("pro-features").Title("Pro features").
		Text("This step only shows when `user.plan == \"pro\"`. Try `set user.plan=\"pro\"` and go back.").
		ShowOn(`user.plan == "pro"`).
		Step("done").Title("That's it").
		Text("Press **enter** to finish.").
		Button("Back", domain.ActionBack).Button("Finish", domain.ActionComplete).
		Done().
		Build()
}

// Scaffold writes a sample tour to dir as a step directory. It refuses to
// write into a directory that already has files.
func Scaffold(ctx context.Context, dir string, out io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("%s is not empty", dir)
	}

	l, err := loam.Create(dir)
	if err != nil {
		return err
	}
	def, err := SampleTour(l.Name)
	if err != nil {
		return err
	}
	if err := l.Save(ctx, def); err != nil {
		return err
	}
	printSystemMessage(out, "Created tour '%s' with %d steps in %s. Try: tourguide run %s", def.Name, len(def.Steps), dir, dir)
	return nil
}
