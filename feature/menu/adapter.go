package menu

import "catalog-sync/core/reconcile"

// Name is the family name.
const Name = "menu"

// Categories are the POS categories owned by the menu.
var Categories = []string{"Coffee", "Tea", "Signature Drinks", "Smoothies", "Food", "Bakery", "Desserts"}

// Adapter maps menu items.
type Adapter struct {
	owned reconcile.CategorySet
}

// NewAdapter creates the menu adapter.
func NewAdapter() *Adapter {
	return &Adapter{owned: reconcile.NewCategorySet(Categories...)}
}

func (a *Adapter) Name() string { return Name }

func (a *Adapter) Schema() reconcile.SourceSchema {
	return reconcile.SourceSchema{
		Table: "menu_items",
		Columns: map[reconcile.Field]string{
			reconcile.FieldID:           "id",
			reconcile.FieldName:         "name",
			reconcile.FieldCategory:     "category",
			reconcile.FieldPrice:        "price",
			reconcile.FieldDescription:  "description",
			reconcile.FieldImageURL:     "image_url",
			reconcile.FieldDownstreamID: "loyverse_id",
			reconcile.FieldActive:       "status",
		},
		ActiveValues: []any{"Published"},
	}
}

func (a *Adapter) WritesHint() bool     { return true }
func (a *Adapter) ComparesImages() bool { return true }

// OwnsCategory reports exact membership in Categories.
func (a *Adapter) OwnsCategory(name string) bool {
	return a.owned.Contains(name)
}
