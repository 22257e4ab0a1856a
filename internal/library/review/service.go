// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/reelhub/internal/library/media"
	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/dberr"
	"github.com/taibuivan/reelhub/internal/platform/sec"
	"github.com/taibuivan/reelhub/internal/platform/validate"
	"github.com/taibuivan/reelhub/pkg/uuid"
)

const maxContentLength = 5000

// # Service Layer

// Service implements the review use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new review [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// # Queries

// ListByMedia returns the public reviews of a catalog item, newest first.
func (service *Service) ListByMedia(ctx context.Context, mediaType, mediaID string) ([]*Review, error) {
	validator := &validate.Validator{}
	validator.OneOf(media.FieldMediaType, mediaType, media.Types()...).Required(media.FieldMediaID, mediaID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	reviews, err := service.repository.ListByMedia(ctx, mediaType, mediaID)
	if err != nil {
		return nil, fmt.Errorf("review_service_list_by_media_failed: %w", err)
	}
	return reviews, nil
}

// ListByAccount returns the reviews written by an account, newest first.
func (service *Service) ListByAccount(ctx context.Context, accountID string) ([]*Review, error) {
	reviews, err := service.repository.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("review_service_list_by_account_failed: %w", err)
	}
	return reviews, nil
}

// # Commands

// CreateInput is the review payload.
type CreateInput struct {
	Content string `json:"content"`
	media.Ref
}

/*
Create publishes a review written by author.

Returns:
  - *Review: the stored review with the author projection
  - error: validation or persistence failures
*/
func (service *Service) Create(ctx context.Context, author *sec.Principal, input CreateInput) (*Review, error) {
	input.Content = strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).MaxLen(FieldContent, input.Content, maxContentLength)
	input.Check(validator)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now()
	review := &Review{
		ID:      uuid.New(),
		Content: input.Content,
		Ref:     input.Ref,
		Author: Author{
			ID:          author.AccountID,
			Username:    author.Username,
			DisplayName: author.DisplayName,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repository.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("review_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "review_created",
		slog.String("review_id", review.ID),
		slog.String("media_type", review.Type),
		slog.String("media_id", review.Ref.ID),
	)
	return review, nil
}

// Remove deletes a review. Only its author may do so; anyone else gets 404.
func (service *Service) Remove(ctx context.Context, accountID, reviewID string) error {
	if (&validate.Validator{}).UUID("reviewId", reviewID).HasErrors() {
		return apperr.NotFound("Review")
	}

	if err := service.repository.Delete(ctx, reviewID, accountID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Review")
		}
		return fmt.Errorf("review_service_remove_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "review_removed", slog.String("review_id", reviewID))
	return nil
}
