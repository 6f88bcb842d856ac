package memory_test

import (
	"testing"

	"github.com/aretw0/tourguide/pkg/adapters/memory"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Contract(t *testing.T) {
	tests.RendererContractTest(t, memory.NewRenderer())
}

func TestRenderer_TracksMounted(t *testing.T) {
	r := memory.NewRenderer()

	h1, err := r.Mount(domain.StepView{StepID: "a"})
	require.NoError(t, err)
	_, err = r.Mount(domain.StepView{StepID: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.Mounted())

	require.NoError(t, r.Unmount(h1))
	assert.Equal(t, []string{"b"}, r.Mounted())
	assert.Equal(t, []string{"mount:a", "mount:b", "unmount:a"}, r.History())

	_, ok := r.View("b")
	assert.True(t, ok)
}

func TestRenderer_FailMount(t *testing.T) {
	r := memory.NewRenderer()
	r.FailMount = map[string]bool{"ghost": true}

	_, err := r.Mount(domain.StepView{StepID: "ghost"})
	assert.Error(t, err)
	assert.Empty(t, r.Mounted())
}

func TestConfirmer(t *testing.T) {
	c := memory.NewConfirmer(false)
	assert.False(t, c.Confirm("sure?"))
	c.Answer(true)
	assert.True(t, c.Confirm("really?"))
	assert.Equal(t, []string{"sure?", "really?"}, c.Prompts())
}
