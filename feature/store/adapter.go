package store

import "catalog-sync/core/reconcile"

// Name is the family name.
const Name = "store"

// Keywords mark a POS category as a store category when the name contains
// any of them. This also claims names like "Bookstore".
var Keywords = []string{"store", "shop", "retail", "merch"}

// Adapter maps store items.
type Adapter struct{}

// NewAdapter creates the store adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return Name }

func (a *Adapter) Schema() reconcile.SourceSchema {
	return reconcile.SourceSchema{
		Table: "store_items",
		Columns: map[reconcile.Field]string{
			reconcile.FieldID:           "id",
			reconcile.FieldName:         "name",
			reconcile.FieldCategory:     "category",
			reconcile.FieldPrice:        "price",
			reconcile.FieldDescription:  "description",
			reconcile.FieldImageURL:     "image_url",
			reconcile.FieldDownstreamID: "loyverse_item_id",
			reconcile.FieldActive:       "status",
		},
		ActiveValues:    []any{"Published", "Active"},
		DefaultCategory: "Store",
	}
}

func (a *Adapter) WritesHint() bool     { return true }
func (a *Adapter) ComparesImages() bool { return true }

// OwnsCategory applies the keyword heuristic.
func (a *Adapter) OwnsCategory(name string) bool {
	return reconcile.ContainsKeyword(name, Keywords...)
}
