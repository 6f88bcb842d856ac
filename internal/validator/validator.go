package validator

import (
	"fmt"
	"sort"

	"github.com/aretw0/tourguide/pkg/condition"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/schema"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/builtin"
	"github.com/expr-lang/expr/parser"
)

type options struct {
	predicates map[string]bool
}

// Option configures Validate.
type Option func(*options)

// WithPredicates lists the named predicates show_on expressions may call.
// Without it, calls are not checked.
func WithPredicates(names ...string) Option {
	return func(o *options) {
		if o.predicates == nil {
			o.predicates = make(map[string]bool, len(names))
		}
		for _, n := range names {
			o.predicates[n] = true
		}
	}
}

// Validate runs the structural checks of schema.Validate and then the
// semantic ones: show_on expressions must compile and only call known
// predicates. Problems that do not prevent the tour from running come back
// as warnings.
func Validate(def *schema.Tour, opts ...Option) ([]string, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var errs []error
	if err := schema.Validate(def); err != nil {
		if verrs := schema.ValidationErrors(err); verrs != nil {
			errs = append(errs, verrs...)
		} else {
			return nil, err
		}
	}
	if def == nil {
		return nil, &schema.AggregateError{Errors: errs}
	}

	for i, s := range def.Steps {
		if s.ShowOn == "" {
			continue
		}
		key := fmt.Sprintf("steps[%d].show_on", i)
		if _, err := condition.Compile(s.ShowOn); err != nil {
			errs = append(errs, &schema.ValidationError{Key: key, Reason: "invalid expression", Value: err})
			continue
		}
		if o.predicates == nil {
			continue
		}
		for _, name := range calls(s.ShowOn) {
			if !o.predicates[name] {
				errs = append(errs, &schema.ValidationError{Key: key, Reason: "unknown predicate", Value: name})
			}
		}
	}

	if len(errs) > 0 {
		return nil, &schema.AggregateError{Errors: errs}
	}
	return warnings(def), nil
}

func warnings(def *schema.Tour) []string {
	var out []string

	if def.ConfirmCancelMessage != "" && !def.ConfirmCancel {
		out = append(out, "confirm_cancel_message is set but confirm_cancel is false")
	}

	conditional := 0
	for i, s := range def.Steps {
		if s.ShowOn != "" {
			conditional++
		}
		buttons := s.Buttons
		if buttons == nil {
			buttons = def.DefaultStepOptions.Buttons
		}
		if i == 0 && hasAction(buttons, domain.ActionBack) {
			out = append(out, fmt.Sprintf("step %q: back button on the first step does nothing", s.ID))
		}
		if len(buttons) > 0 && !hasAction(buttons, domain.ActionNext) && !hasAction(buttons, domain.ActionComplete) {
			out = append(out, fmt.Sprintf("step %q: no button moves the tour forward", s.ID))
		}
	}
	if len(def.Steps) > 0 && conditional == len(def.Steps) {
		out = append(out, "every step has show_on; the tour completes at once when none holds")
	}
	return out
}

func hasAction(buttons []domain.Button, action string) bool {
	for _, b := range buttons {
		if b.Action == action {
			return true
		}
	}
	return false
}

type callVisitor struct {
	names map[string]bool
}

func (v *callVisitor) Visit(node *ast.Node) {
	call, ok := (*node).(*ast.CallNode)
	if !ok {
		return
	}
	ident, ok := call.Callee.(*ast.IdentifierNode)
	if !ok {
		return
	}
	if _, isBuiltin := builtin.Index[ident.Value]; isBuiltin {
		return
	}
	v.names[ident.Value] = true
}

// calls returns the non-builtin functions an expression calls, sorted.
func calls(source string) []string {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil
	}
	v := &callVisitor{names: make(map[string]bool)}
	ast.Walk(&tree.Node, v)

	out := make([]string, 0, len(v.names))
	for n := range v.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
