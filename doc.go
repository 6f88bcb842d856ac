/*
Package tourguide drives guided tours: ordered steps, each anchored to an
element of a user interface, advanced by the user one at a time.

A tour owns its steps and a small state machine (idle, active, done). Only one
tour may be active per registry; starting a second one fails with
domain.ErrAnotherTourActive until the first completes or is cancelled.
Steps can be skipped with a show_on predicate, evaluated each time a
traversal reaches them.

# Usage

The Guide wires the shared registry and collaborators:

	g := tourguide.New(
		tourguide.WithRenderer(terminal.NewRenderer()),
		tourguide.WithVars(map[string]any{"user": map[string]any{"plan": "free"}}),
	)

	t, err := g.LoadTour(ctx, "tours/welcome.yaml")
	if err != nil {
		log.Fatal(err)
	}
	if err := t.Start(); err != nil {
		log.Fatal(err)
	}
	t.Next()

Definitions can be YAML or JSON files (package schema), a directory of
Markdown step documents (package adapters/loam), or Go code (package dsl).
Lower-level control is available in package tour.
*/
package tourguide
