package persistence

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"omnipost/domain/model"
	"omnipost/domain/repository"
	"omnipost/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type SocialAccountRepository struct {
	collection *mongo.Collection
}

func NewSocialAccountRepository(db *mongo.Database) repository.ISocialAccount {
	return &SocialAccountRepository{collection: db.Collection("social_accounts")}
}

func newAccountID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (r *SocialAccountRepository) UpsertAccount(ctx context.Context, account *model.SocialMediaAccount) error {
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	if account.ID == "" {
		account.ID = newAccountID()
	}

	// One account per (user, platform); reconnecting replaces the tokens.
	filter := bson.D{{Key: "user_id", Value: account.UserID}, {Key: "platform", Value: account.Platform}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "username", Value: account.Username},
			{Key: "access_token", Value: account.AccessToken},
			{Key: "refresh_token", Value: account.RefreshToken},
			{Key: "token_secret", Value: account.TokenSecret},
			{Key: "instagram_id", Value: account.InstagramID},
			{Key: "facebook_page_id", Value: account.FacebookPageID},
			{Key: "facebook_page_name", Value: account.FacebookPageName},
			{Key: "page_access_token", Value: account.PageAccessToken},
			{Key: "connected", Value: account.Connected},
			{Key: "updated_at", Value: account.UpdatedAt},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "_id", Value: account.ID},
			{Key: "user_id", Value: account.UserID},
			{Key: "platform", Value: account.Platform},
			{Key: "created_at", Value: account.CreatedAt},
		}},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert %s account: %w", account.Platform, err)
	}
	return nil
}

func (r *SocialAccountRepository) GetAccount(ctx context.Context, userID, accountID string) (*model.SocialMediaAccount, error) {
	filter := bson.D{{Key: "_id", Value: accountID}, {Key: "user_id", Value: userID}}
	var account model.SocialMediaAccount
	if err := r.collection.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("account %s not found", accountID)
		}
		return nil, fmt.Errorf("failed to read account %s: %w", accountID, err)
	}
	return &account, nil
}

func (r *SocialAccountRepository) GetAccountByPlatform(ctx context.Context, userID, platform string) (*model.SocialMediaAccount, error) {
	filter := bson.D{{Key: "user_id", Value: userID}, {Key: "platform", Value: platform}}
	var account model.SocialMediaAccount
	if err := r.collection.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("no connected %s account", platform)
		}
		return nil, fmt.Errorf("failed to read %s account: %w", platform, err)
	}
	return &account, nil
}

func (r *SocialAccountRepository) ListAccounts(ctx context.Context, userID string) ([]*model.SocialMediaAccount, error) {
	cursor, err := r.collection.Find(ctx, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	var accounts []*model.SocialMediaAccount
	for cursor.Next(ctx) {
		var account model.SocialMediaAccount
		if err := cursor.Decode(&account); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding account")
			continue
		}
		accounts = append(accounts, &account)
	}
	return accounts, nil
}

func (r *SocialAccountRepository) UpdateAccessToken(ctx context.Context, accountID, accessToken string) error {
	filter := bson.D{{Key: "_id", Value: accountID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "access_token", Value: accessToken},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update access token for account %s: %w", accountID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("account %s not found", accountID)
	}
	return nil
}

func (r *SocialAccountRepository) DeleteAccount(ctx context.Context, userID, accountID string) error {
	filter := bson.D{{Key: "_id", Value: accountID}, {Key: "user_id", Value: userID}}
	res, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("account %s not found", accountID)
	}
	return nil
}
