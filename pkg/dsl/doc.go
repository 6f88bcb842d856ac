/*
Package dsl provides a fluent Go builder for tour definitions.

It produces the same schema.Tour a YAML file would, so tours can be declared in
code, checked by the compiler and still go through validation:

	b := dsl.New("welcome").ConfirmCancel("Leave the tour?")

	b.Step("intro").
		Title("Welcome").
		Text("Hello **there**").
		AttachTo("#header", domain.PlaceBottom).
		Button("Next", domain.ActionNext)

	b.Step("billing").
		Title("Billing").
		ShowOn(`user.plan == "pro"`)

	def, err := b.Build()
*/
package dsl
