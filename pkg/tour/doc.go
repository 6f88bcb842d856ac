/*
Package tour implements the tour/step lifecycle and navigation state machine.

A Tour owns an ordered list of Steps. Start registers the tour as the active one in
its ports.Registry and shows the first eligible step; Next, Back and Show move between
steps, hiding the current one before showing the next; Cancel and Complete tear
everything down through a shared, idempotent teardown.

A step is eligible when its ShowOn predicate is nil or returns true at the moment a
traversal reaches it. Ineligible steps are skipped without events.

	reg := registry.NewActive()
	t, _ := tour.New(reg, domain.TourOptions{TourName: "welcome"})
	t.AddStep(tour.Named("intro", domain.StepOptions{Title: "Hello"}))
	t.AddStep(tour.Named("pro", domain.StepOptions{ShowOn: isPro}))
	_ = t.Start()
	t.Next()
*/
package tour
