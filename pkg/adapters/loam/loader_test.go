package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/tourguide/internal/testutils"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, files)
	return New(loam.NewTypedRepository[StepMetadata](repo), "docs")
}

func TestLoader_Load(t *testing.T) {
	l := newLoader(t, map[string]string{
		"_tour.md": `---
tour:
  name: welcome
  confirm_cancel: true
---
`,
		"intro.md": `---
title: Welcome
order: 1
attach_to:
  element: "#header"
  on: bottom
buttons:
  - text: Next
    action: next
---
Hello **there**`,
		"billing.md": `---
id: billing
title: Billing
order: 2
show_on: user.plan == "pro"
---
Manage your plan.`,
		"extra.json": `{"id": "extra", "title": "Extra", "text": "From JSON", "order": 3}`,
	})

	def, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "welcome", def.Name)
	assert.True(t, def.ConfirmCancel)
	assert.Equal(t, []string{"intro", "billing", "extra"}, def.StepIDs())

	intro := def.Steps[0]
	assert.Equal(t, "Hello **there**", intro.Text)
	require.NotNil(t, intro.AttachTo)
	assert.Equal(t, domain.PlaceBottom, intro.AttachTo.On)
	require.Len(t, intro.Buttons, 1)
	assert.Equal(t, domain.ActionNext, intro.Buttons[0].Action)

	assert.Equal(t, `user.plan == "pro"`, def.Steps[1].ShowOn)
	assert.Equal(t, "From JSON", def.Steps[2].Text)

	assert.NoError(t, schema.Validate(def))
}

func TestLoader_DefaultName(t *testing.T) {
	l := newLoader(t, map[string]string{
		"b.md": "---\ntitle: B\n---\nbody",
		"a.md": "---\ntitle: A\n---\nbody",
	})

	def, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "docs", def.Name)
	assert.Equal(t, []string{"a", "b"}, def.StepIDs(), "ties are broken by id")
}

func TestLoader_DetectsCollisions(t *testing.T) {
	l := newLoader(t, map[string]string{
		"foo.md":   "---\nid: foo\ntitle: Foo\n---\n",
		"foo.json": `{"id": "foo", "title": "Foo again"}`,
	})

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_DuplicateHeader(t *testing.T) {
	l := newLoader(t, map[string]string{
		"one.md": "---\ntour:\n  name: one\n---\n",
		"two.md": "---\ntour:\n  name: two\n---\n",
	})

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tour header")
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "start", trimExtension("start.md"))
	assert.Equal(t, "nested/step", trimExtension("nested/step.yaml"))
	assert.Equal(t, "plain", trimExtension("plain"))
}

func TestLoader_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := Create(dir)
	require.NoError(t, err)

	def := &schema.Tour{
		Name:          "scaffold",
		ConfirmCancel: true,
		Steps: []schema.Step{
			{ID: "zeta", Title: "First", Text: "Shown first despite its id."},
			{Title: "Second", ShowOn: `user.plan == "pro"`},
		},
	}
	require.NoError(t, w.Save(context.Background(), def))

	r, err := Open(dir)
	require.NoError(t, err)
	got, err := r.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "scaffold", got.Name)
	assert.True(t, got.ConfirmCancel)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, "zeta", got.Steps[0].ID)
	assert.Equal(t, "Shown first despite its id.", got.Steps[0].Text)
	assert.Equal(t, "step-02", got.Steps[1].ID)
	assert.Equal(t, `user.plan == "pro"`, got.Steps[1].ShowOn)
}
