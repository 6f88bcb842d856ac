// Package condition evaluates step ShowOn expressions.
//
// Expressions use the expr-lang syntax and run against an Env, a mutable variable
// table shared by every step of a tour. Because predicates read the Env on each
// call, changing a variable changes which steps the next traversal visits:
//
//	env := condition.NewEnv(map[string]any{"user": map[string]any{"plan": "free"}})
//	pred, _ := condition.Predicate(`user.plan == "pro"`, env, nil)
//	pred() // false
//	env.SetPath("user.plan", "pro")
//	pred() // true
package condition
