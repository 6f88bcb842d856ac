package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditions_Predicate(t *testing.T) {
	r := NewConditions()
	_, err := r.Predicate("missing")
	assert.Error(t, err)

	flag := false
	r.Register("flag", func() bool { return flag })

	pred, err := r.Predicate("flag")
	require.NoError(t, err)
	assert.False(t, pred())

	flag = true
	assert.True(t, pred(), "predicate is evaluated lazily")

	r.Register("flag", func() bool { return false })
	assert.False(t, pred(), "re-registration is picked up by existing closures")

	assert.Equal(t, []string{"flag"}, r.Names())
}
