// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/pkg/uuid"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// memRepository keeps items, movements and catalog IDs in memory. The mutex
// stands in for the row lock taken by Update and Move.
type memRepository struct {
	mu         sync.Mutex
	items      map[string]*ownedItem
	history    []*History
	references map[string]map[string]string // field -> id -> owner
	tick       time.Duration
}

type ownedItem struct {
	owner string
	item  Item
}

func newMemRepository() *memRepository {
	return &memRepository{
		items: map[string]*ownedItem{},
		references: map[string]map[string]string{
			FieldUnitID:     {},
			FieldCategoryID: {},
			FieldLocationID: {},
		},
	}
}

// addReference registers a catalog row of field's kind for owner.
func (r *memRepository) addReference(field, owner string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	r.references[field][id] = owner
	return id
}

// stamp returns strictly increasing timestamps so history order is stable.
func (r *memRepository) stamp() time.Time {
	r.tick += time.Second
	return fixedNow.Add(r.tick)
}

func (r *memRepository) List(_ context.Context, ownerID string, filter Filter, limit, offset int) ([]*Item, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := strings.ToLower(filter.Query)
	matches := make([]*Item, 0)
	for _, row := range r.items {
		item := row.item
		switch {
		case row.owner != ownerID:
			continue
		case query != "" && !strings.Contains(strings.ToLower(item.Name), query) &&
			(item.Description == nil || !strings.Contains(strings.ToLower(*item.Description), query)):
			continue
		case filter.CategoryID != "" && (item.CategoryID == nil || *item.CategoryID != filter.CategoryID):
			continue
		case filter.LocationID != "" && (item.LocationID == nil || *item.LocationID != filter.LocationID):
			continue
		case filter.LowStock && !item.IsLowStock():
			continue
		}
		matches = append(matches, &item)
	}

	sort.Slice(matches, func(i, j int) bool {
		if filter.Sort == SortQuantity && matches[i].Quantity != matches[j].Quantity {
			return matches[i].Quantity < matches[j].Quantity
		}
		return matches[i].Name < matches[j].Name
	})

	total := len(matches)
	if offset >= total {
		return []*Item{}, total, nil
	}
	end := min(offset+limit, total)
	return matches[offset:end], total, nil
}

func (r *memRepository) FindByID(_ context.Context, ownerID, id string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok || row.owner != ownerID {
		return nil, dberr.ErrNotFound
	}
	clone := row.item
	return &clone, nil
}

func (r *memRepository) Create(_ context.Context, ownerID string, item *Item, initial *History) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.CreatedAt = r.stamp()
	item.UpdatedAt = item.CreatedAt
	r.items[item.ID] = &ownedItem{owner: ownerID, item: *item}
	if initial != nil {
		r.appendHistory(initial)
	}
	return nil
}

func (r *memRepository) Update(_ context.Context, ownerID string, item *Item, record Mutation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[item.ID]
	if !ok || row.owner != ownerID {
		return dberr.ErrNotFound
	}

	movement, err := record(row.item.Quantity)
	if err != nil {
		return err
	}

	item.CreatedAt = row.item.CreatedAt
	item.UpdatedAt = r.stamp()
	row.item = *item
	if movement != nil {
		r.appendHistory(movement)
	}
	return nil
}

func (r *memRepository) Move(_ context.Context, ownerID, itemID string, record Mutation) (*History, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[itemID]
	if !ok || row.owner != ownerID {
		return nil, dberr.ErrNotFound
	}

	movement, err := record(row.item.Quantity)
	if err != nil {
		return nil, err
	}

	row.item.Quantity = movement.QuantityAfter
	row.item.UpdatedAt = r.stamp()
	r.appendHistory(movement)
	return movement, nil
}

func (r *memRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok || row.owner != ownerID {
		return dberr.ErrNotFound
	}
	delete(r.items, id)

	kept := r.history[:0]
	for _, entry := range r.history {
		if entry.ItemID != id {
			kept = append(kept, entry)
		}
	}
	r.history = kept
	return nil
}

func (r *memRepository) History(_ context.Context, ownerID, itemID string, limit, offset int) ([]*History, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]*History, 0)
	for index := len(r.history) - 1; index >= 0; index-- {
		if r.history[index].ItemID == itemID {
			clone := *r.history[index]
			entries = append(entries, &clone)
		}
	}

	total := len(entries)
	if offset >= total {
		return []*History{}, total, nil
	}
	return entries[offset:min(offset+limit, total)], total, nil
}

func (r *memRepository) MissingReferences(_ context.Context, ownerID string, references References) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var missing []string
	for field, id := range map[string]*string{
		FieldUnitID:     references.UnitID,
		FieldCategoryID: references.CategoryID,
		FieldLocationID: references.LocationID,
	} {
		if id != nil && r.references[field][*id] != ownerID {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing, nil
}

// historyOf returns the movements of itemID in recording order.
func (r *memRepository) historyOf(itemID string) []History {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []History
	for _, entry := range r.history {
		if entry.ItemID == itemID {
			entries = append(entries, *entry)
		}
	}
	return entries
}

func (r *memRepository) appendHistory(movement *History) {
	movement.CreatedAt = r.stamp()
	clone := *movement
	r.history = append(r.history, &clone)
}

func newTestService() (*Service, *memRepository) {
	repo := newMemRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger, WithClock(func() time.Time { return fixedNow })), repo
}
