// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/reelhub/internal/platform/dberr"
)

// MemoryRepository is a process-local [Repository] for development and tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	favorites map[string]Favorite
}

// NewMemoryRepository returns an empty in-memory favorite repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{favorites: make(map[string]Favorite)}
}

// ListByAccount returns copies of the account's favorites, newest first.
func (repository *MemoryRepository) ListByAccount(_ context.Context, accountID string) ([]*Favorite, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	favorites := make([]*Favorite, 0)
	for _, stored := range repository.favorites {
		if stored.AccountID == accountID {
			favorite := stored
			favorites = append(favorites, &favorite)
		}
	}

	sort.Slice(favorites, func(i, j int) bool {
		if !favorites[i].CreatedAt.Equal(favorites[j].CreatedAt) {
			return favorites[i].CreatedAt.After(favorites[j].CreatedAt)
		}
		return favorites[i].ID > favorites[j].ID
	})
	return favorites, nil
}

// FindByMedia returns the account's favorite for one catalog item.
func (repository *MemoryRepository) FindByMedia(_ context.Context, accountID, mediaType, mediaID string) (*Favorite, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, stored := range repository.favorites {
		if stored.AccountID == accountID && stored.Type == mediaType && stored.Ref.ID == mediaID {
			favorite := stored
			return &favorite, nil
		}
	}
	return nil, dberr.ErrNotFound
}

// Create stores a copy of favorite.
func (repository *MemoryRepository) Create(_ context.Context, favorite *Favorite) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, stored := range repository.favorites {
		if stored.ID == favorite.ID ||
			(stored.AccountID == favorite.AccountID && stored.Type == favorite.Type && stored.Ref.ID == favorite.Ref.ID) {
			return dberr.ErrDuplicate
		}
	}

	repository.favorites[favorite.ID] = *favorite
	return nil
}

// Delete removes a favorite owned by accountID.
func (repository *MemoryRepository) Delete(_ context.Context, id, accountID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.favorites[id]
	if !ok || stored.AccountID != accountID {
		return dberr.ErrNotFound
	}

	delete(repository.favorites, id)
	return nil
}
