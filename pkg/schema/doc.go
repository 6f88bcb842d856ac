// Package schema defines the declarative form of a tour and its validation.
//
// A definition is usually written in YAML:
//
//	name: welcome
//	confirm_cancel: true
//	default_step_options:
//	  buttons:
//	    - {text: Back, action: back, secondary: true}
//	    - {text: Next, action: next}
//	steps:
//	  - id: intro
//	    title: Welcome
//	    text: "Hello **there**"
//	  - id: billing
//	    title: Billing
//	    show_on: 'user.plan == "pro"'
//
// Parse and ParseFile read YAML or JSON, Decode reads an already decoded map
// (frontmatter, MCP arguments). Validate checks the structure and returns an
// *AggregateError listing every problem found.
//
// Definitions carry no behaviour: show_on stays a string until a tour is built
// from the definition and its expressions are compiled against an environment.
package schema
