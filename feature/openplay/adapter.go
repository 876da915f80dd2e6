package openplay

import "catalog-sync/core/reconcile"

const (
	// Name is the family name.
	Name = "openplay"
	// Category is the single POS category of passes.
	Category = "Open Play"
)

// Adapter maps open-play passes.
type Adapter struct{}

// NewAdapter creates the open-play adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return Name }

func (a *Adapter) Schema() reconcile.SourceSchema {
	return reconcile.SourceSchema{
		Table: "open_play_passes",
		Columns: map[reconcile.Field]string{
			reconcile.FieldID:           "id",
			reconcile.FieldName:         "name",
			reconcile.FieldPrice:        "price",
			reconcile.FieldDescription:  "description",
			reconcile.FieldDownstreamID: "loyverse_id",
			reconcile.FieldActive:       "active",
		},
		ActiveValues:    []any{true},
		DefaultCategory: Category,
	}
}

func (a *Adapter) WritesHint() bool     { return true }
func (a *Adapter) ComparesImages() bool { return false }

func (a *Adapter) OwnsCategory(name string) bool {
	return reconcile.Fold(name) == reconcile.Fold(Category)
}
