package condition

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/tourguide/internal/logging"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition is a compiled ShowOn expression.
type Condition struct {
	source  string
	program *vm.Program
}

// Compile parses source. Variables are resolved at evaluation time, so an
// expression may reference names the Env does not hold yet; they evaluate to nil.
func Compile(source string) (*Condition, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("compile condition: empty expression")
	}
	program, err := expr.Compile(source, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", source, err)
	}
	return &Condition{source: source, program: program}, nil
}

// Source returns the expression text.
func (c *Condition) Source() string { return c.source }

// Eval runs the expression against vars.
func (c *Condition) Eval(vars map[string]any) (bool, error) {
	output, err := expr.Run(c.program, vars)
	if err != nil {
		return false, fmt.Errorf("eval condition %q: %w", c.source, err)
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q did not return bool (got %T: %v)", c.source, output, output)
	}
	return result, nil
}

// Predicate binds c to env. Evaluation errors make the step ineligible and are
// logged at warn level.
func (c *Condition) Predicate(env *Env, logger *slog.Logger) func() bool {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func() bool {
		ok, err := c.Eval(env.Snapshot())
		if err != nil {
			logger.Warn("show_on evaluation failed", "expr", c.source, "err", err)
			return false
		}
		return ok
	}
}

// Predicate compiles source and binds it to env in one call.
// An empty source yields a nil predicate, which means "always eligible".
func Predicate(source string, env *Env, logger *slog.Logger) (func() bool, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}
	c, err := Compile(source)
	if err != nil {
		return nil, err
	}
	return c.Predicate(env, logger), nil
}
