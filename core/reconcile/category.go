package reconcile

import (
	"context"
	"fmt"
)

// CategoryResolver maps category names to downstream ids for one run,
// creating missing categories on first use.
type CategoryResolver struct {
	client  DownstreamClient
	ids     map[string]string
	created []DownstreamCategory
}

// NewCategoryResolver seeds the run cache from the downstream category list.
func NewCategoryResolver(client DownstreamClient, categories []DownstreamCategory) *CategoryResolver {
	r := &CategoryResolver{
		client: client,
		ids:    make(map[string]string, len(categories)),
	}
	for _, c := range categories {
		key := Fold(c.Name)
		if _, dup := r.ids[key]; !dup {
			r.ids[key] = c.ID
		}
	}
	return r
}

// Resolve returns the id of the named category. An empty name resolves to
// no category. Repeated calls with the same name never create duplicates.
func (r *CategoryResolver) Resolve(ctx context.Context, name string) (string, error) {
	name = Normalize(name)
	if name == "" {
		return "", nil
	}

	key := Fold(name)
	if id, ok := r.ids[key]; ok {
		return id, nil
	}

	category, err := r.client.CreateCategory(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to create category %q: %w", name, err)
	}
	r.ids[key] = category.ID
	r.created = append(r.created, category)
	return category.ID, nil
}

// Created returns the categories this resolver created.
func (r *CategoryResolver) Created() []DownstreamCategory {
	return r.created
}
