package tourguide_test

import (
	"fmt"
	"log"

	"github.com/aretw0/tourguide"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/dsl"
	"github.com/aretw0/tourguide/pkg/tour"
)

// ExampleGuide_Build builds a tour with the DSL and walks it.
func ExampleGuide_Build() {
	def, err := dsl.New("welcome").
		Var("user", map[string]any{"plan": "free"}).
		Step("intro").Title("Welcome").Text("Hello!").
		Step("billing").Title("Billing").ShowOn(`user.plan == "pro"`).
		Step("outro").Title("That's all").
		Done().
		Build()
	if err != nil {
		log.Fatal(err)
	}

	g := tourguide.New()
	t, err := g.Build(def)
	if err != nil {
		log.Fatal(err)
	}
	t.On(domain.TourShow, func(e tour.Event) {
		fmt.Println("show", e.Step.ID())
	})
	t.On(domain.TourComplete, func(tour.Event) {
		fmt.Println("complete")
	})

	if err := t.Start(); err != nil {
		log.Fatal(err)
	}
	t.Next()
	t.Next()

	// Output:
	// show intro
	// show outro
	// complete
}
