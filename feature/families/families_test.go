package families

import (
	"testing"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/menu"
	"catalog-sync/feature/openplay"
	"catalog-sync/feature/payforplay"
	"catalog-sync/feature/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	a, err := Lookup(" Menu ")
	require.NoError(t, err)
	assert.Equal(t, "menu", a.Name())

	_, err = Lookup("bar")
	assert.ErrorIs(t, err, ErrUnknownFamily)
	assert.Contains(t, err.Error(), "menu, openplay, payforplay, store")
}

func TestAllSchemasValid(t *testing.T) {
	for _, a := range All() {
		t.Run(a.Name(), func(t *testing.T) {
			schema := a.Schema()
			assert.NoError(t, schema.Validate())
			assert.Equal(t, a.WritesHint(), schema.HasHint(), "hint write-back needs a hint column")
			_, hasImage := schema.Column(reconcile.FieldImageURL)
			assert.Equal(t, a.ComparesImages(), hasImage)
		})
	}
}

func TestOwnership(t *testing.T) {
	tests := []struct {
		adapter  reconcile.Adapter
		category string
		want     bool
	}{
		{menu.NewAdapter(), "coffee", true},
		{menu.NewAdapter(), "Signature Drinks", true},
		{menu.NewAdapter(), "Coffee Beans", false},
		{menu.NewAdapter(), reconcile.Uncategorized, false},
		{openplay.NewAdapter(), "OPEN PLAY", true},
		{openplay.NewAdapter(), "Open Play Add-ons", false},
		{payforplay.NewAdapter(), "Pay & Play", true},
		{payforplay.NewAdapter(), "pay for play", true},
		{payforplay.NewAdapter(), "Play", false},
		{store.NewAdapter(), "Store", true},
		{store.NewAdapter(), "Gift Shop", true},
		{store.NewAdapter(), "Merchandise", true},
		{store.NewAdapter(), "Retail", true},
		{store.NewAdapter(), "Bookstore", true},
		{store.NewAdapter(), "Coffee", false},
	}

	for _, tt := range tests {
		t.Run(tt.adapter.Name()+"/"+tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.adapter.OwnsCategory(tt.category))
		})
	}
}

func TestPayForPlayMatchesByNameOnly(t *testing.T) {
	a := payforplay.NewAdapter()
	assert.False(t, a.WritesHint())
	assert.False(t, a.Schema().HasHint())
}
