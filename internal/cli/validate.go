package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/tourguide"
	"github.com/aretw0/tourguide/internal/validator"
	"github.com/aretw0/tourguide/pkg/adapters/loam"
	"github.com/aretw0/tourguide/pkg/schema"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Path       string
	Predicates []string // Named predicates show_on may call; nil skips the check
	Watch      bool
}

// Validate loads and checks the definition at opts.Path, printing warnings
// and errors to out.
func Validate(ctx context.Context, opts ValidateOptions, out io.Writer) error {
	def, err := tourguide.New().Load(ctx, opts.Path)
	if err != nil {
		return err
	}

	var vOpts []validator.Option
	if opts.Predicates != nil {
		vOpts = append(vOpts, validator.WithPredicates(opts.Predicates...))
	}
	warnings, err := validator.Validate(def, vOpts...)
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	if err != nil {
		if errs := schema.ValidationErrors(err); errs != nil {
			for _, e := range errs {
				fmt.Fprintf(out, "error: %s\n", e)
			}
			return fmt.Errorf("%s: %d validation errors", opts.Path, len(errs))
		}
		return err
	}

	printSystemMessage(out, "%s: tour '%s' is valid (%d steps).", opts.Path, def.Name, len(def.Steps))
	return nil
}

// WatchValidate re-runs Validate whenever the definition changes, until ctx ends.
// A single file is watched through its parent directory.
func WatchValidate(ctx context.Context, opts ValidateOptions, out io.Writer) error {
	dir := opts.Path
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	loader, err := loam.Open(dir)
	if err != nil {
		return err
	}
	changes, err := loader.Watch(ctx)
	if err != nil {
		return err
	}

	if err := Validate(ctx, opts, out); err != nil {
		fmt.Fprintln(out, err)
	}
	printSystemMessage(out, "Waiting for changes...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-changes:
			if !ok {
				return nil
			}
			printSystemMessage(out, "Change detected in '%s'.", id)
			// Delay slightly to ensure file system is stable
			time.Sleep(100 * time.Millisecond)
			if err := Validate(ctx, opts, out); err != nil {
				fmt.Fprintln(out, err)
			}
		}
	}
}
