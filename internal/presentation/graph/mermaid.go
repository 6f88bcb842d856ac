package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/schema"
)

// Terminal nodes added around the steps.
const (
	StartNode = "__start"
	DoneNode  = "__done"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedSteps []string
	CurrentStep  string
}

// GenerateMermaid produces a Mermaid flowchart of a tour definition.
// Steps are drawn in order:
// - Plain step: [Rectangle]
// - Conditional step (show_on): {{Hexagon}}, entered through a labelled edge
// - Start/Done: ((Circle))
// A conditional step also gets a dotted "skip" edge from its predecessor to
// its successor. Buttons with a back action draw a dotted edge backwards.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(def *schema.Tour, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString(fmt.Sprintf("    %s((\"start\"))\n", StartNode))

	for _, step := range def.Steps {
		safeID := sanitizeMermaidID(step.ID)

		opener, closer := "[", "]"
		if step.ShowOn != "" {
			opener, closer = "{{", "}}"
		}

		label := escapeLabel(step.ID)
		if step.Title != "" && step.Title != step.ID {
			label = fmt.Sprintf("%s <br/> %s", label, escapeLabel(step.Title))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}
	sb.WriteString(fmt.Sprintf("    %s((\"done\"))\n", DoneNode))

	ids := make([]string, 0, len(def.Steps)+2)
	ids = append(ids, StartNode)
	for _, step := range def.Steps {
		ids = append(ids, sanitizeMermaidID(step.ID))
	}
	ids = append(ids, DoneNode)

	for i, step := range def.Steps {
		from, to := ids[i], ids[i+1]

		arrow := "-->"
		if step.ShowOn != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeLabel(step.ShowOn))
			sb.WriteString(fmt.Sprintf("    %s -. skip .-> %s\n", from, ids[i+2]))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, to))

		if i > 0 && hasAction(def, step, domain.ActionBack) {
			sb.WriteString(fmt.Sprintf("    %s -. back .-> %s\n", to, from))
		}
	}
	if len(def.Steps) > 0 {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[len(ids)-2], DoneNode))
	} else {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", StartNode, DoneNode))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedSteps {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentStep != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentStep)))
		}
	}

	return sb.String()
}

// hasAction reports whether step, or the default step options when the step
// declares no buttons, carries a button with the given action.
func hasAction(def *schema.Tour, step schema.Step, action string) bool {
	buttons := step.Buttons
	if buttons == nil {
		buttons = def.DefaultStepOptions.Buttons
	}
	for _, b := range buttons {
		if b.Action == action {
			return true
		}
	}
	return false
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
