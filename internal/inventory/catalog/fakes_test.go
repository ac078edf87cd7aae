// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/hms/internal/platform/dberr"
)

// memRepository keeps rows per owner in memory and mimics the unique (owner, name) indexes.
type memRepository struct {
	mu      sync.Mutex
	entries map[Collection]map[string]*ownedEntry
	units   map[string]*ownedUnit
}

type ownedEntry struct {
	owner string
	entry Entry
}

type ownedUnit struct {
	owner string
	unit  Unit
}

func newMemRepository() *memRepository {
	return &memRepository{
		entries: map[Collection]map[string]*ownedEntry{
			CollectionCategories: {},
			CollectionLocations:  {},
		},
		units: map[string]*ownedUnit{},
	}
}

func (r *memRepository) ListEntries(_ context.Context, collection Collection, ownerID string) ([]*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]*Entry, 0)
	for _, row := range r.entries[collection] {
		if row.owner == ownerID {
			clone := row.entry
			entries = append(entries, &clone)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (r *memRepository) FindEntry(_ context.Context, collection Collection, ownerID, id string) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.entries[collection][id]
	if !ok || row.owner != ownerID {
		return nil, dberr.ErrNotFound
	}
	clone := row.entry
	return &clone, nil
}

func (r *memRepository) CreateEntry(_ context.Context, collection Collection, ownerID string, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entryNameTaken(collection, ownerID, entry.ID, entry.Name) {
		return dberr.ErrConflict
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	r.entries[collection][entry.ID] = &ownedEntry{owner: ownerID, entry: *entry}
	return nil
}

func (r *memRepository) UpdateEntry(_ context.Context, collection Collection, ownerID string, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.entries[collection][entry.ID]
	if !ok || row.owner != ownerID {
		return dberr.ErrNotFound
	}
	if r.entryNameTaken(collection, ownerID, entry.ID, entry.Name) {
		return dberr.ErrConflict
	}
	entry.CreatedAt = row.entry.CreatedAt
	entry.UpdatedAt = time.Now()
	row.entry = *entry
	return nil
}

func (r *memRepository) DeleteEntry(_ context.Context, collection Collection, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.entries[collection][id]
	if !ok || row.owner != ownerID {
		return dberr.ErrNotFound
	}
	delete(r.entries[collection], id)
	return nil
}

func (r *memRepository) entryNameTaken(collection Collection, ownerID, id, name string) bool {
	for key, row := range r.entries[collection] {
		if key != id && row.owner == ownerID && row.entry.Name == name {
			return true
		}
	}
	return false
}

func (r *memRepository) ListUnits(_ context.Context, ownerID string) ([]*Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	units := make([]*Unit, 0)
	for _, row := range r.units {
		if row.owner == ownerID {
			clone := row.unit
			units = append(units, &clone)
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}

func (r *memRepository) FindUnit(_ context.Context, ownerID, id string) (*Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.units[id]
	if !ok || row.owner != ownerID {
		return nil, dberr.ErrNotFound
	}
	clone := row.unit
	return &clone, nil
}

func (r *memRepository) CreateUnit(_ context.Context, ownerID string, unit *Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.units {
		if row.owner == ownerID && row.unit.Name == unit.Name {
			return dberr.ErrConflict
		}
	}
	r.units[unit.ID] = &ownedUnit{owner: ownerID, unit: *unit}
	return nil
}

func (r *memRepository) UpdateUnit(_ context.Context, ownerID string, unit *Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.units[unit.ID]
	if !ok || row.owner != ownerID {
		return dberr.ErrNotFound
	}
	row.unit = *unit
	return nil
}

func (r *memRepository) DeleteUnit(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.units[id]
	if !ok || row.owner != ownerID {
		return dberr.ErrNotFound
	}
	delete(r.units, id)
	return nil
}

func newTestService() (*Service, *memRepository) {
	repo := newMemRepository()
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}
