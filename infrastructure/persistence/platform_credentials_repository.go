package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"omnipost/domain/model"
	"omnipost/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PlatformCredentialsRepository struct {
	collection *mongo.Collection
}

func NewPlatformCredentialsRepository(db *mongo.Database) repository.IPlatformCredentials {
	return &PlatformCredentialsRepository{collection: db.Collection("platform_credentials")}
}

func (r *PlatformCredentialsRepository) UpsertCredentials(ctx context.Context, creds *model.PlatformCredentials) error {
	now := time.Now().UTC()
	if creds.CreatedAt.IsZero() {
		creds.CreatedAt = now
	}
	creds.UpdatedAt = now

	filter := bson.D{{Key: "user_id", Value: creds.UserID}, {Key: "platform", Value: creds.Platform}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "client_id", Value: creds.ClientID},
			{Key: "client_secret", Value: creds.ClientSecret},
			{Key: "updated_at", Value: creds.UpdatedAt},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "user_id", Value: creds.UserID},
			{Key: "platform", Value: creds.Platform},
			{Key: "created_at", Value: creds.CreatedAt},
		}},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert %s credentials: %w", creds.Platform, err)
	}
	return nil
}

func (r *PlatformCredentialsRepository) GetCredentials(ctx context.Context, userID, platform string) (*model.PlatformCredentials, error) {
	filter := bson.D{{Key: "user_id", Value: userID}, {Key: "platform", Value: platform}}
	var creds model.PlatformCredentials
	if err := r.collection.FindOne(ctx, filter).Decode(&creds); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("no %s credentials configured for user", platform)
		}
		return nil, fmt.Errorf("failed to read %s credentials: %w", platform, err)
	}
	return &creds, nil
}
