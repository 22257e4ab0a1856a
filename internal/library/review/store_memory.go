// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/reelhub/internal/platform/dberr"
)

// MemoryRepository is a process-local [Repository]. It keeps the author
// projection given at creation instead of joining accounts.
type MemoryRepository struct {
	mu      sync.RWMutex
	reviews map[string]Review
}

// NewMemoryRepository returns an empty in-memory review repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reviews: make(map[string]Review)}
}

func (repository *MemoryRepository) filter(keep func(Review) bool) []*Review {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	reviews := make([]*Review, 0)
	for _, stored := range repository.reviews {
		if keep(stored) {
			review := stored
			reviews = append(reviews, &review)
		}
	}

	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID > reviews[j].ID
	})
	return reviews
}

// ListByMedia returns all reviews of one catalog item.
func (repository *MemoryRepository) ListByMedia(_ context.Context, mediaType, mediaID string) ([]*Review, error) {
	return repository.filter(func(review Review) bool {
		return review.Type == mediaType && review.Ref.ID == mediaID
	}), nil
}

// ListByAccount returns all reviews written by an account.
func (repository *MemoryRepository) ListByAccount(_ context.Context, accountID string) ([]*Review, error) {
	return repository.filter(func(review Review) bool {
		return review.Author.ID == accountID
	}), nil
}

// Create stores a copy of review.
func (repository *MemoryRepository) Create(_ context.Context, review *Review) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.reviews[review.ID]; taken {
		return dberr.ErrDuplicate
	}
	repository.reviews[review.ID] = *review
	return nil
}

// Delete removes a review written by accountID.
func (repository *MemoryRepository) Delete(_ context.Context, id, accountID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.reviews[id]
	if !ok || stored.Author.ID != accountID {
		return dberr.ErrNotFound
	}
	delete(repository.reviews, id)
	return nil
}
