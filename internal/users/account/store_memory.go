// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"sync"

	"github.com/taibuivan/reelhub/internal/platform/dberr"
)

// MemoryRepository is a process-local [Repository] for development and tests.
// The mutex makes the uniqueness check and the insert one atomic step.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]Account
	byUsername map[string]string
	byEmail    map[string]string
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]Account),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

func (repository *MemoryRepository) lookup(index map[string]string, key string) (*Account, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, ok := index[key]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	account := repository.byID[id]
	return &account, nil
}

// FindByID retrieves an account by primary key.
func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Account, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	account, ok := repository.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &account, nil
}

// FindByUsername retrieves an account by username.
func (repository *MemoryRepository) FindByUsername(_ context.Context, username string) (*Account, error) {
	return repository.lookup(repository.byUsername, username)
}

// FindByEmail retrieves an account by email.
func (repository *MemoryRepository) FindByEmail(_ context.Context, email string) (*Account, error) {
	return repository.lookup(repository.byEmail, email)
}

// Create stores a copy of account.
func (repository *MemoryRepository) Create(_ context.Context, account *Account) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byID[account.ID]; taken {
		return dberr.ErrDuplicate
	}
	if _, taken := repository.byUsername[account.Username]; taken {
		return dberr.ErrDuplicate
	}
	if account.Email != "" {
		if _, taken := repository.byEmail[account.Email]; taken {
			return dberr.ErrDuplicate
		}
		repository.byEmail[account.Email] = account.ID
	}

	repository.byID[account.ID] = *account
	repository.byUsername[account.Username] = account.ID
	return nil
}

// Update replaces the mutable fields of a stored account.
func (repository *MemoryRepository) Update(_ context.Context, account *Account) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.byID[account.ID]
	if !ok {
		return dberr.ErrNotFound
	}

	stored.DisplayName = account.DisplayName
	stored.Credential = account.Credential
	stored.UpdatedAt = account.UpdatedAt
	repository.byID[account.ID] = stored
	return nil
}
