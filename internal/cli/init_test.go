package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleTour(t *testing.T) {
	def, err := SampleTour("starter")
	require.NoError(t, err)
	assert.Equal(t, "starter", def.Name)
	assert.Len(t, def.Steps, 3)
}

func TestScaffold(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "onboarding")
	var out bytes.Buffer

	require.NoError(t, Scaffold(context.Background(), dir, &out))
	assert.Contains(t, out.String(), "Created tour 'onboarding' with 3 steps")

	out.Reset()
	require.NoError(t, Validate(context.Background(), ValidateOptions{Path: dir}, &out))
	assert.Contains(t, out.String(), "tour 'onboarding' is valid (3 steps)")

	out.Reset()
	opts := RunOptions{Path: dir, Plain: true, NoBanner: true}
	require.NoError(t, Execute(context.Background(), opts, strings.NewReader("\n\n"), &out))
	assert.Contains(t, out.String(), "Welcome")
	assert.NotContains(t, out.String(), "Pro features")
	assert.Contains(t, out.String(), "Tour 'onboarding' completed.")

	err := Scaffold(context.Background(), dir, &bytes.Buffer{})
	assert.ErrorContains(t, err, "is not empty")
}
