package payforplay

import "catalog-sync/core/reconcile"

// Name is the family name.
const Name = "payforplay"

// Categories are the POS categories owned by pay-for-play.
var Categories = []string{"Pay & Play", "Pay For Play"}

// Adapter maps pay-for-play items.
type Adapter struct {
	owned reconcile.CategorySet
}

// NewAdapter creates the pay-for-play adapter.
func NewAdapter() *Adapter {
	return &Adapter{owned: reconcile.NewCategorySet(Categories...)}
}

func (a *Adapter) Name() string { return Name }

func (a *Adapter) Schema() reconcile.SourceSchema {
	return reconcile.SourceSchema{
		Table: "pay_for_play_items",
		Columns: map[reconcile.Field]string{
			reconcile.FieldID:          "id",
			reconcile.FieldName:        "name",
			reconcile.FieldCategory:    "category",
			reconcile.FieldPrice:       "price",
			reconcile.FieldDescription: "description",
			reconcile.FieldImageURL:    "image_url",
			reconcile.FieldActive:      "status",
		},
		ActiveValues:    []any{"Published"},
		DefaultCategory: Categories[0],
	}
}

func (a *Adapter) WritesHint() bool     { return false }
func (a *Adapter) ComparesImages() bool { return true }

func (a *Adapter) OwnsCategory(name string) bool {
	return a.owned.Contains(name)
}
