// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taibuivan/reelhub/internal/library/media"
	"github.com/taibuivan/reelhub/internal/platform/constants"
	"github.com/taibuivan/reelhub/internal/platform/dberr"
	"github.com/taibuivan/reelhub/pkg/slice"
)

type reviewDocument struct {
	ID          string    `bson:"_id"`
	AccountID   string    `bson:"accountId"`
	Content     string    `bson:"content"`
	MediaType   string    `bson:"mediaType"`
	MediaID     string    `bson:"mediaId"`
	MediaTitle  string    `bson:"mediaTitle"`
	MediaPoster string    `bson:"mediaPoster"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`

	// Populated by the $lookup stage only.
	Author *authorDocument `bson:"author,omitempty"`
}

type authorDocument struct {
	ID          string `bson:"_id"`
	Username    string `bson:"username"`
	DisplayName string `bson:"displayName"`
}

func (document reviewDocument) toReview() *Review {
	review := &Review{
		ID:      document.ID,
		Content: document.Content,
		Ref: media.Ref{
			Type:   document.MediaType,
			ID:     document.MediaID,
			Title:  document.MediaTitle,
			Poster: document.MediaPoster,
		},
		Author:    Author{ID: document.AccountID},
		CreatedAt: document.CreatedAt,
		UpdatedAt: document.UpdatedAt,
	}
	if document.Author != nil {
		review.Author.Username = document.Author.Username
		review.Author.DisplayName = document.Author.DisplayName
	}
	return review
}

// MongoRepository implements [Repository] on the reviews collection, joining
// authors from the accounts collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a MongoDB review repository.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(constants.CollectionReviews)}
}

// EnsureIndexes creates the listing indexes.
func (repository *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "mediaType", Value: 1},
				{Key: "mediaId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("review_media_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "accountId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("review_account_created_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo_review_repo_ensure_indexes_failed: %w", err)
	}
	return nil
}

/*
list runs the joined listing.

# Pipeline

 1. $match on filter, newest first.
 2. $lookup the author in the accounts collection, keeping only public fields.
 3. $unwind the single-element author array.
*/
func (repository *MongoRepository) list(ctx context.Context, filter bson.D, action string) ([]*Review, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: constants.CollectionAccounts},
			{Key: "localField", Value: "accountId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "username", Value: 1},
					{Key: "displayName", Value: 1},
				}}},
			}},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := repository.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	var documents []reviewDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return slice.Map(documents, reviewDocument.toReview), nil
}

// ListByMedia returns all reviews of one catalog item.
func (repository *MongoRepository) ListByMedia(ctx context.Context, mediaType, mediaID string) ([]*Review, error) {
	filter := bson.D{{Key: "mediaType", Value: mediaType}, {Key: "mediaId", Value: mediaID}}
	return repository.list(ctx, filter, "mongo_review_repo_list_by_media_failed")
}

// ListByAccount returns all reviews written by an account.
func (repository *MongoRepository) ListByAccount(ctx context.Context, accountID string) ([]*Review, error) {
	return repository.list(ctx, bson.D{{Key: "accountId", Value: accountID}}, "mongo_review_repo_list_by_account_failed")
}

// Create inserts a review document. The author projection is not stored.
func (repository *MongoRepository) Create(ctx context.Context, review *Review) error {
	_, err := repository.collection.InsertOne(ctx, reviewDocument{
		ID:          review.ID,
		AccountID:   review.Author.ID,
		Content:     review.Content,
		MediaType:   review.Type,
		MediaID:     review.Ref.ID,
		MediaTitle:  review.Title,
		MediaPoster: review.Poster,
		CreatedAt:   review.CreatedAt,
		UpdatedAt:   review.UpdatedAt,
	})
	return dberr.Wrap(err, "mongo_review_repo_create_failed")
}

// Delete removes a review written by accountID.
func (repository *MongoRepository) Delete(ctx context.Context, id, accountID string) error {
	result, err := repository.collection.DeleteOne(ctx, bson.D{
		{Key: "_id", Value: id},
		{Key: "accountId", Value: accountID},
	})
	if err != nil {
		return dberr.Wrap(err, "mongo_review_repo_delete_failed")
	}
	if result.DeletedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
