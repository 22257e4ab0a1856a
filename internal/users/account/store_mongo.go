// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taibuivan/reelhub/internal/platform/constants"
	"github.com/taibuivan/reelhub/internal/platform/dberr"
)

// # MongoDB Repository

// accountDocument is the stored shape of an account.
type accountDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email,omitempty"`
	DisplayName  string    `bson:"displayName"`
	PasswordSalt string    `bson:"salt"`
	PasswordHash string    `bson:"password"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func newAccountDocument(account *Account) accountDocument {
	return accountDocument{
		ID:           account.ID,
		Username:     account.Username,
		Email:        account.Email,
		DisplayName:  account.DisplayName,
		PasswordSalt: account.Credential.Salt,
		PasswordHash: account.Credential.Hash,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
}

func (document accountDocument) toAccount() *Account {
	account := &Account{
		ID:          document.ID,
		Username:    document.Username,
		Email:       document.Email,
		DisplayName: document.DisplayName,
		CreatedAt:   document.CreatedAt,
		UpdatedAt:   document.UpdatedAt,
	}
	account.Credential.Salt = document.PasswordSalt
	account.Credential.Hash = document.PasswordHash
	return account
}

// MongoRepository implements [Repository] on the accounts collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a MongoDB account repository.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(constants.CollectionAccounts)}
}

// EnsureIndexes creates the unique indexes the repository relies on.
// Email is only unique among documents that carry one.
func (repository *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("account_username_key"),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("account_email_key").
				SetPartialFilterExpression(bson.D{{Key: "email", Value: bson.D{{Key: "$type", Value: "string"}}}}),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo_account_repo_ensure_indexes_failed: %w", err)
	}
	return nil
}

func (repository *MongoRepository) findOne(ctx context.Context, filter bson.D, action string) (*Account, error) {
	var document accountDocument
	if err := repository.collection.FindOne(ctx, filter).Decode(&document); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return document.toAccount(), nil
}

// FindByID retrieves an account by primary key.
func (repository *MongoRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	return repository.findOne(ctx, bson.D{{Key: "_id", Value: id}}, "mongo_account_repo_find_by_id_failed")
}

// FindByUsername retrieves an account by its unique username.
func (repository *MongoRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	return repository.findOne(ctx, bson.D{{Key: "username", Value: username}}, "mongo_account_repo_find_by_username_failed")
}

// FindByEmail retrieves an account by its unique email.
func (repository *MongoRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return repository.findOne(ctx, bson.D{{Key: "email", Value: email}}, "mongo_account_repo_find_by_email_failed")
}

// Create inserts a new account document.
func (repository *MongoRepository) Create(ctx context.Context, account *Account) error {
	_, err := repository.collection.InsertOne(ctx, newAccountDocument(account))
	return dberr.Wrap(err, "mongo_account_repo_create_failed")
}

// Update rewrites the display name, credential and updatedAt of an account.
func (repository *MongoRepository) Update(ctx context.Context, account *Account) error {
	result, err := repository.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: account.ID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "displayName", Value: account.DisplayName},
			{Key: "salt", Value: account.Credential.Salt},
			{Key: "password", Value: account.Credential.Hash},
			{Key: "updatedAt", Value: account.UpdatedAt},
		}}},
	)
	if err != nil {
		return dberr.Wrap(err, "mongo_account_repo_update_failed")
	}
	if result.MatchedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
