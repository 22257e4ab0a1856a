// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/reelhub/internal/library/media"
	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/dberr"
	"github.com/taibuivan/reelhub/internal/platform/validate"
	"github.com/taibuivan/reelhub/pkg/uuid"
)

const (
	minMediaRate = 0
	maxMediaRate = 10
)

// Service implements the favorite use cases. Every operation is scoped to
// the calling account.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new favorite [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// List returns the account's favorites, newest first.
func (service *Service) List(ctx context.Context, accountID string) ([]*Favorite, error) {
	favorites, err := service.repository.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("favorite_service_list_failed: %w", err)
	}
	return favorites, nil
}

// AddInput is the catalog snapshot to save.
type AddInput struct {
	media.Ref
	MediaRate float64 `json:"mediaRate"`
}

/*
Add saves a catalog item to the account's favorites.

Returns:
  - *Favorite: the stored favorite
  - bool: true when a new favorite was created, false when it already existed
  - error: validation or persistence failures
*/
func (service *Service) Add(ctx context.Context, accountID string, input AddInput) (*Favorite, bool, error) {
	validator := &validate.Validator{}
	input.Check(validator).
		Custom(FieldMediaRate, input.MediaRate < minMediaRate || input.MediaRate > maxMediaRate,
			fmt.Sprintf("Must be between %d and %d", minMediaRate, maxMediaRate))
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	existing, err := service.repository.FindByMedia(ctx, accountID, input.Type, input.ID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, dberr.ErrNotFound):
		return nil, false, fmt.Errorf("favorite_service_lookup_failed: %w", err)
	}

	now := service.now()
	favorite := &Favorite{
		ID:        uuid.New(),
		AccountID: accountID,
		Ref:       input.Ref,
		MediaRate: input.MediaRate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repository.Create(ctx, favorite); err != nil {
		if !errors.Is(err, dberr.ErrDuplicate) {
			return nil, false, fmt.Errorf("favorite_service_create_failed: %w", err)
		}
		// Lost a race with a concurrent add of the same item.
		existing, findErr := service.repository.FindByMedia(ctx, accountID, input.Type, input.ID)
		if findErr != nil {
			return nil, false, fmt.Errorf("favorite_service_lookup_failed: %w", findErr)
		}
		return existing, false, nil
	}

	service.logger.InfoContext(ctx, "favorite_added",
		slog.String("favorite_id", favorite.ID),
		slog.String("media_type", favorite.Type),
		slog.String("media_id", favorite.Ref.ID),
	)
	return favorite, true, nil
}

// Remove deletes one of the account's favorites. Favorites owned by someone
// else are reported as not found.
func (service *Service) Remove(ctx context.Context, accountID, favoriteID string) error {
	if (&validate.Validator{}).UUID("favoriteId", favoriteID).HasErrors() {
		return apperr.NotFound("Favorite")
	}

	if err := service.repository.Delete(ctx, favoriteID, accountID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Favorite")
		}
		return fmt.Errorf("favorite_service_remove_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "favorite_removed", slog.String("favorite_id", favoriteID))
	return nil
}
