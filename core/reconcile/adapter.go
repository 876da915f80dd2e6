package reconcile

import (
	"context"
	"fmt"
)

// Field is a logical source field an adapter can map to a physical column.
type Field string

const (
	FieldID           Field = "id"
	FieldName         Field = "name"
	FieldCategory     Field = "category"
	FieldPrice        Field = "price"
	FieldDescription  Field = "description"
	FieldImageURL     Field = "image_url"
	FieldDownstreamID Field = "downstream_id"
	FieldActive       Field = "active"
)

// knownFields is the closed set of fields a schema may map.
var knownFields = map[Field]struct{}{
	FieldID:           {},
	FieldName:         {},
	FieldCategory:     {},
	FieldPrice:        {},
	FieldDescription:  {},
	FieldImageURL:     {},
	FieldDownstreamID: {},
	FieldActive:       {},
}

// requiredFields must be mapped by every schema.
var requiredFields = []Field{FieldID, FieldName, FieldPrice}

// SourceSchema describes where a family's records live in the source catalog.
type SourceSchema struct {
	// Table is the source table name.
	Table string

	// Columns maps logical fields to physical column names.
	Columns map[Field]string

	// ActiveValues lists the values of the active column that count as
	// active/published. Ignored when FieldActive is not mapped.
	ActiveValues []any

	// DefaultCategory is used when the category is unmapped or empty.
	DefaultCategory string
}

// Column returns the physical column for f.
func (s SourceSchema) Column(f Field) (string, bool) {
	col, ok := s.Columns[f]
	return col, ok && col != ""
}

// HasHint reports whether the schema persists the downstream id.
func (s SourceSchema) HasHint() bool {
	_, ok := s.Column(FieldDownstreamID)
	return ok
}

// Validate checks the schema against the closed field set.
func (s SourceSchema) Validate() error {
	if s.Table == "" {
		return fmt.Errorf("schema has no table: %w", ErrUnknownField)
	}
	for f := range s.Columns {
		if _, ok := knownFields[f]; !ok {
			return fmt.Errorf("%s.%s: %w", s.Table, f, ErrUnknownField)
		}
	}
	for _, f := range requiredFields {
		if _, ok := s.Column(f); !ok {
			return fmt.Errorf("%s: required field %s is not mapped: %w", s.Table, f, ErrUnknownField)
		}
	}
	if _, ok := s.Column(FieldActive); ok && len(s.ActiveValues) == 0 {
		return fmt.Errorf("%s: active column mapped without active values", s.Table)
	}
	return nil
}

// Adapter supplies the per-family rules to the generic engine.
// Adapters hold no control flow beyond these accessors and predicates.
type Adapter interface {
	// Name returns the family name (e.g. "menu", "store").
	Name() string

	// Schema returns the typed field table of the family's source records.
	Schema() SourceSchema

	// WritesHint reports whether matched downstream ids are persisted back
	// to the source record.
	WritesHint() bool

	// ComparesImages reports whether image presence is part of the diff.
	ComparesImages() bool

	// OwnsCategory reports whether a downstream category belongs to this
	// family, scoping orphan detection and deletion.
	OwnsCategory(categoryName string) bool
}

// SourceClient reads and annotates the source of truth.
type SourceClient interface {
	// QueryActive returns every active/published record of the family.
	QueryActive(ctx context.Context) ([]SourceRecord, error)

	// WriteBack persists the downstream id into the record's hint field.
	WriteBack(ctx context.Context, id, downstreamID string) error
}

// DownstreamClient reads and mutates the POS catalog.
type DownstreamClient interface {
	ListItems(ctx context.Context) ([]DownstreamRecord, error)
	ListCategories(ctx context.Context) ([]DownstreamCategory, error)
	CreateCategory(ctx context.Context, name string) (DownstreamCategory, error)
	CreateItem(ctx context.Context, payload DownstreamPayload) (DownstreamRecord, error)
	UpdateItem(ctx context.Context, id string, payload DownstreamPayload) error
	DeleteItem(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id, imageURL string) error
}
