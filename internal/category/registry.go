// Package category owns the category collection and guards its one
// invariant: no transaction type may be left without categories.
package category

import (
	"context"
	"strings"
	"sync"

	"moneypulse/internal/domain"
	"moneypulse/internal/util"
	"moneypulse/pkg/kvstore"
)

// Registry is the exclusive owner of the category collection. Other
// components hold it for reads only.
type Registry struct {
	mu         sync.Mutex
	categories []domain.Category
	kv         kvstore.Store
}

// NewRegistry loads persisted categories, falling back to the seed set when
// nothing usable is stored.
func NewRegistry(ctx context.Context, kv kvstore.Store) *Registry {
	r := &Registry{kv: kv}
	var categories []domain.Category
	if kv.Load(ctx, kvstore.KeyCategories, &categories) && len(categories) > 0 {
		r.categories = categories
	} else {
		r.categories = domain.SeedCategories()
	}
	return r
}

// List returns a copy of the category collection.
func (r *Registry) List() []domain.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// ByID returns the category with the given id.
func (r *Registry) ByID(id string) (domain.Category, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.index(id)
	if idx < 0 {
		return domain.Category{}, false
	}
	return r.categories[idx], true
}

// Create appends a new category with a fresh id. Only the name is validated;
// icon and color are opaque tokens.
func (r *Registry) Create(ctx context.Context, name, icon, color string, txType domain.TransactionType) (domain.Category, error) {
	if strings.TrimSpace(name) == "" || !txType.Valid() {
		return domain.Category{}, util.ErrInvalidInput
	}
	cat := domain.NewCategory(name, icon, color, txType)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = append(r.categories, *cat)
	r.persist(ctx)
	return *cat, nil
}

// Update holds the fields an update may replace; nil fields are left alone.
// The type affinity of a category is fixed for life.
type Update struct {
	Name  *string
	Icon  *string
	Color *string
}

// UpdateCategory replaces the provided fields on an existing category in place.
func (r *Registry) UpdateCategory(ctx context.Context, id string, upd Update) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.index(id)
	if idx < 0 {
		return domain.Category{}, util.ErrNotFound
	}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return domain.Category{}, util.ErrInvalidInput
		}
		r.categories[idx].Name = *upd.Name
	}
	if upd.Icon != nil {
		r.categories[idx].Icon = *upd.Icon
	}
	if upd.Color != nil {
		r.categories[idx].Color = *upd.Color
	}
	r.persist(ctx)
	return r.categories[idx], nil
}

// Delete removes a category, refusing when it is the last one of its type.
// On refusal the collection is left unchanged.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.index(id)
	if idx < 0 {
		return util.ErrNotFound
	}
	remaining := 0
	for i, c := range r.categories {
		if i != idx && c.Type == r.categories[idx].Type {
			remaining++
		}
	}
	if remaining == 0 {
		return util.ErrLastCategoryOfType
	}

	r.categories = append(r.categories[:idx], r.categories[idx+1:]...)
	r.persist(ctx)
	return nil
}

func (r *Registry) index(id string) int {
	for i := range r.categories {
		if r.categories[i].ID == id {
			return i
		}
	}
	return -1
}

// persist snapshots the collection; no acknowledgement is awaited. Callers
// hold r.mu.
func (r *Registry) persist(ctx context.Context) {
	categories := make([]domain.Category, len(r.categories))
	copy(categories, r.categories)
	r.kv.Save(context.WithoutCancel(ctx), kvstore.KeyCategories, categories)
}
