package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// testAdapter is a configurable family adapter.
type testAdapter struct {
	writesHint bool
	images     bool
	owned      CategorySet
}

func (a *testAdapter) Name() string { return "test" }

func (a *testAdapter) Schema() SourceSchema {
	return SourceSchema{
		Table: "test_items",
		Columns: map[Field]string{
			FieldID:    "id",
			FieldName:  "name",
			FieldPrice: "price",
		},
	}
}

func (a *testAdapter) WritesHint() bool     { return a.writesHint }
func (a *testAdapter) ComparesImages() bool { return a.images }

func (a *testAdapter) OwnsCategory(name string) bool {
	return a.owned.Contains(name)
}

func newTestAdapter(owned ...string) *testAdapter {
	return &testAdapter{writesHint: true, images: true, owned: NewCategorySet(owned...)}
}

// fakeSource is an in-memory source catalog.
type fakeSource struct {
	mu         sync.Mutex
	records    []SourceRecord
	queryErr   error
	writeErr   error
	writeBacks map[string]string
}

func newFakeSource(records ...SourceRecord) *fakeSource {
	return &fakeSource{records: records, writeBacks: map[string]string{}}
}

func (s *fakeSource) QueryActive(ctx context.Context) ([]SourceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	out := make([]SourceRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *fakeSource) WriteBack(ctx context.Context, id, downstreamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].DownstreamIDHint = downstreamID
			s.writeBacks[id] = downstreamID
			return nil
		}
	}
	return fmt.Errorf("record %s not found", id)
}

func (s *fakeSource) record(id string) SourceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r
		}
	}
	return SourceRecord{}
}

// fakeDownstream is an in-memory POS catalog.
type fakeDownstream struct {
	mu         sync.Mutex
	items      []DownstreamRecord
	categories []DownstreamCategory
	seq        int

	listErr     error
	categoryErr error
	createErr   map[string]error
	panicOn     map[string]bool
	uploadErr   error
	deleteErr   map[string]error

	createdCategories []string
	updates           []DownstreamPayload
	uploads           []string
	deletes           []string
}

func newFakeDownstream() *fakeDownstream {
	return &fakeDownstream{
		createErr: map[string]error{},
		panicOn:   map[string]bool{},
		deleteErr: map[string]error{},
	}
}

func (d *fakeDownstream) addCategory(id, name string) *fakeDownstream {
	d.categories = append(d.categories, DownstreamCategory{ID: id, Name: name})
	return d
}

func (d *fakeDownstream) addItem(item DownstreamRecord) *fakeDownstream {
	d.items = append(d.items, item)
	return d
}

func (d *fakeDownstream) ListItems(ctx context.Context) ([]DownstreamRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listErr != nil {
		return nil, d.listErr
	}
	out := make([]DownstreamRecord, len(d.items))
	copy(out, d.items)
	return out, nil
}

func (d *fakeDownstream) ListCategories(ctx context.Context) ([]DownstreamCategory, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.categoryErr != nil {
		return nil, d.categoryErr
	}
	out := make([]DownstreamCategory, len(d.categories))
	copy(out, d.categories)
	return out, nil
}

func (d *fakeDownstream) CreateCategory(ctx context.Context, name string) (DownstreamCategory, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	c := DownstreamCategory{ID: fmt.Sprintf("cat-%d", d.seq), Name: name}
	d.categories = append(d.categories, c)
	d.createdCategories = append(d.createdCategories, name)
	return c, nil
}

func (d *fakeDownstream) CreateItem(ctx context.Context, p DownstreamPayload) (DownstreamRecord, error) {
	if d.panicOn[p.Name] {
		panic("boom")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.createErr[p.Name]; err != nil {
		return DownstreamRecord{}, err
	}
	d.seq++
	item := DownstreamRecord{
		ID:          fmt.Sprintf("lv-%d", d.seq),
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		VariantID:   fmt.Sprintf("var-%d", d.seq),
	}
	if len(p.Variants) > 0 {
		item.Price = p.Variants[0].Price
	}
	d.items = append(d.items, item)
	return item, nil
}

func (d *fakeDownstream) UpdateItem(ctx context.Context, id string, p DownstreamPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.items {
		if d.items[i].ID == id {
			d.items[i].Name = p.Name
			d.items[i].CategoryID = p.CategoryID
			d.items[i].Description = p.Description
			if len(p.Variants) > 0 {
				d.items[i].Price = p.Variants[0].Price
			}
			d.updates = append(d.updates, p)
			return nil
		}
	}
	return fmt.Errorf("item %s not found", id)
}

func (d *fakeDownstream) DeleteItem(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.deleteErr[id]; err != nil {
		return err
	}
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			d.deletes = append(d.deletes, id)
			return nil
		}
	}
	return fmt.Errorf("item %s not found", id)
}

func (d *fakeDownstream) UploadImage(ctx context.Context, id, imageURL string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.uploadErr != nil {
		return d.uploadErr
	}
	for i := range d.items {
		if d.items[i].ID == id {
			d.items[i].ImageURL = imageURL
			d.uploads = append(d.uploads, id)
			return nil
		}
	}
	return fmt.Errorf("item %s not found", id)
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
