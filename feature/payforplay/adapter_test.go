package payforplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdapter(t *testing.T) {
	a := NewAdapter()

	assert.Equal(t, Name, a.Name())
	assert.False(t, a.WritesHint())
	assert.False(t, a.Schema().HasHint())
	assert.True(t, a.ComparesImages())
	assert.NoError(t, a.Schema().Validate())

	assert.True(t, a.OwnsCategory("pay & play"))
	assert.True(t, a.OwnsCategory("Pay For Play"))
	assert.False(t, a.OwnsCategory("Pay"))
}
