package sourcedb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"

	"gorm.io/gorm"
)

// Client reads one family's records from the source catalog database.
type Client struct {
	db     *gorm.DB
	schema reconcile.SourceSchema

	mu       sync.Mutex
	prepared bool
}

// NewClient creates a client for the given schema.
func NewClient(db *gorm.DB, schema reconcile.SourceSchema) *Client {
	return &Client{db: db, schema: schema}
}

// Schema returns the schema the client reads.
func (c *Client) Schema() reconcile.SourceSchema {
	return c.schema
}

// Prepare validates the schema and checks that every mapped column exists.
// A successful check is remembered for the life of the client.
func (c *Client) Prepare(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prepared {
		return nil
	}

	if err := c.schema.Validate(); err != nil {
		return err
	}

	missing, err := database.MissingColumns(c.db.WithContext(ctx), c.schema.Table, c.columns())
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s is missing columns %s: %w", c.schema.Table, strings.Join(missing, ", "), reconcile.ErrUnknownField)
	}

	c.prepared = true
	return nil
}

// columns returns the mapped physical columns in field order.
func (c *Client) columns() []string {
	order := []reconcile.Field{
		reconcile.FieldID,
		reconcile.FieldName,
		reconcile.FieldCategory,
		reconcile.FieldPrice,
		reconcile.FieldDescription,
		reconcile.FieldImageURL,
		reconcile.FieldDownstreamID,
		reconcile.FieldActive,
	}
	var cols []string
	for _, f := range order {
		if col, ok := c.schema.Column(f); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// QueryActive returns the active records ordered by id.
func (c *Client) QueryActive(ctx context.Context) ([]reconcile.SourceRecord, error) {
	if err := c.Prepare(ctx); err != nil {
		return nil, err
	}

	idCol, _ := c.schema.Column(reconcile.FieldID)
	query := c.db.WithContext(ctx).
		Table(c.schema.Table).
		Select(c.columns()).
		Order(idCol)
	if activeCol, ok := c.schema.Column(reconcile.FieldActive); ok {
		query = query.Where(activeCol+" IN ?", c.schema.ActiveValues)
	}

	rows, err := query.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.schema.Table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[strings.ToLower(col)] = i
	}
	for _, col := range c.columns() {
		if _, ok := index[strings.ToLower(col)]; !ok {
			return nil, fmt.Errorf("%s.%s: %w", c.schema.Table, col, reconcile.ErrUnknownField)
		}
	}

	var records []reconcile.SourceRecord
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record, err := c.parseRow(func(f reconcile.Field) (any, bool) {
			col, ok := c.schema.Column(f)
			if !ok {
				return nil, false
			}
			return values[index[strings.ToLower(col)]], true
		})
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.schema.Table, err)
	}

	return records, nil
}

// parseRow converts one row through the field table.
func (c *Client) parseRow(get func(reconcile.Field) (any, bool)) (reconcile.SourceRecord, error) {
	str := func(f reconcile.Field) string {
		v, ok := get(f)
		if !ok {
			return ""
		}
		return strings.TrimSpace(utils.ToString(v))
	}

	record := reconcile.SourceRecord{
		ID:               str(reconcile.FieldID),
		Name:             str(reconcile.FieldName),
		Category:         str(reconcile.FieldCategory),
		Description:      str(reconcile.FieldDescription),
		ImageURL:         str(reconcile.FieldImageURL),
		DownstreamIDHint: str(reconcile.FieldDownstreamID),
	}
	if record.Category == "" {
		record.Category = c.schema.DefaultCategory
	}

	raw, _ := get(reconcile.FieldPrice)
	price, err := utils.ToDecimal(raw)
	if err != nil {
		return reconcile.SourceRecord{}, fmt.Errorf("record %s: invalid price: %w", record.ID, err)
	}
	record.Price = price

	return record, nil
}

// WriteBack stores downstreamID in the record's hint column.
func (c *Client) WriteBack(ctx context.Context, id, downstreamID string) error {
	hintCol, ok := c.schema.Column(reconcile.FieldDownstreamID)
	if !ok {
		return fmt.Errorf("%s has no downstream id column: %w", c.schema.Table, reconcile.ErrUnknownField)
	}
	idCol, _ := c.schema.Column(reconcile.FieldID)

	result := c.db.WithContext(ctx).
		Table(c.schema.Table).
		Where(idCol+" = ?", id).
		Update(hintCol, downstreamID)
	if result.Error != nil {
		return fmt.Errorf("failed to write back %s: %w", id, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the value is unchanged
	var count int64
	if err := c.db.WithContext(ctx).Table(c.schema.Table).Where(idCol+" = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to write back %s: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("failed to write back %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
