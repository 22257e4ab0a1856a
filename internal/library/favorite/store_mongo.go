// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

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

type favoriteDocument struct {
	ID          string    `bson:"_id"`
	AccountID   string    `bson:"accountId"`
	MediaType   string    `bson:"mediaType"`
	MediaID     string    `bson:"mediaId"`
	MediaTitle  string    `bson:"mediaTitle"`
	MediaPoster string    `bson:"mediaPoster"`
	MediaRate   float64   `bson:"mediaRate"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (document favoriteDocument) toFavorite() *Favorite {
	return &Favorite{
		ID:        document.ID,
		AccountID: document.AccountID,
		Ref: media.Ref{
			Type:   document.MediaType,
			ID:     document.MediaID,
			Title:  document.MediaTitle,
			Poster: document.MediaPoster,
		},
		MediaRate: document.MediaRate,
		CreatedAt: document.CreatedAt,
		UpdatedAt: document.UpdatedAt,
	}
}

// MongoRepository implements [Repository] on the favorites collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a MongoDB favorite repository.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(constants.CollectionFavorites)}
}

// EnsureIndexes creates the per-account uniqueness and listing indexes.
func (repository *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "accountId", Value: 1},
				{Key: "mediaType", Value: 1},
				{Key: "mediaId", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("favorite_account_media_key"),
		},
		{
			Keys:    bson.D{{Key: "accountId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("favorite_account_created_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo_favorite_repo_ensure_indexes_failed: %w", err)
	}
	return nil
}

// ListByAccount returns the account's favorites, newest first.
func (repository *MongoRepository) ListByAccount(ctx context.Context, accountID string) ([]*Favorite, error) {
	cursor, err := repository.collection.Find(ctx,
		bson.D{{Key: "accountId", Value: accountID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, dberr.Wrap(err, "mongo_favorite_repo_list_failed")
	}

	var documents []favoriteDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, dberr.Wrap(err, "mongo_favorite_repo_list_failed")
	}

	return slice.Map(documents, favoriteDocument.toFavorite), nil
}

// FindByMedia returns the account's favorite for one catalog item.
func (repository *MongoRepository) FindByMedia(ctx context.Context, accountID, mediaType, mediaID string) (*Favorite, error) {
	filter := bson.D{
		{Key: "accountId", Value: accountID},
		{Key: "mediaType", Value: mediaType},
		{Key: "mediaId", Value: mediaID},
	}

	var document favoriteDocument
	if err := repository.collection.FindOne(ctx, filter).Decode(&document); err != nil {
		return nil, dberr.Wrap(err, "mongo_favorite_repo_find_by_media_failed")
	}
	return document.toFavorite(), nil
}

// Create inserts a favorite document.
func (repository *MongoRepository) Create(ctx context.Context, favorite *Favorite) error {
	_, err := repository.collection.InsertOne(ctx, favoriteDocument{
		ID:          favorite.ID,
		AccountID:   favorite.AccountID,
		MediaType:   favorite.Type,
		MediaID:     favorite.Ref.ID,
		MediaTitle:  favorite.Title,
		MediaPoster: favorite.Poster,
		MediaRate:   favorite.MediaRate,
		CreatedAt:   favorite.CreatedAt,
		UpdatedAt:   favorite.UpdatedAt,
	})
	return dberr.Wrap(err, "mongo_favorite_repo_create_failed")
}

// Delete removes a favorite owned by accountID.
func (repository *MongoRepository) Delete(ctx context.Context, id, accountID string) error {
	result, err := repository.collection.DeleteOne(ctx, bson.D{
		{Key: "_id", Value: id},
		{Key: "accountId", Value: accountID},
	})
	if err != nil {
		return dberr.Wrap(err, "mongo_favorite_repo_delete_failed")
	}
	if result.DeletedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
