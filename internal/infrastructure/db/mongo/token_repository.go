package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/account-api/internal/core/domain"
)

const collectionTokens = "personal_access_tokens"

// TokenRepository implements ports.TokenRepository using MongoDB.
type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(collectionTokens)}
}

type mongoToken struct {
	ID         string     `bson:"_id"`
	OwnerType  string     `bson:"tokenable_type"`
	OwnerID    string     `bson:"tokenable_id"`
	Name       string     `bson:"name"`
	Token      string     `bson:"token"`
	Abilities  []string   `bson:"abilities"`
	LastUsedAt *time.Time `bson:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `bson:"expires_at,omitempty"`
	CreatedAt  time.Time  `bson:"created_at"`
}

func (r *TokenRepository) Create(ctx context.Context, t *domain.Token) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, mongoToken{
		ID:        t.ID,
		OwnerType: string(t.OwnerKind),
		OwnerID:   t.OwnerID,
		Name:      t.Name,
		Token:     t.Hash,
		Abilities: t.Abilities,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func (r *TokenRepository) FindByID(ctx context.Context, id string) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoToken
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	return &domain.Token{
		ID:         m.ID,
		OwnerKind:  domain.AccountKind(m.OwnerType),
		OwnerID:    m.OwnerID,
		Name:       m.Name,
		Abilities:  m.Abilities,
		Hash:       m.Token,
		LastUsedAt: utcPtr(m.LastUsedAt),
		ExpiresAt:  utcPtr(m.ExpiresAt),
		CreatedAt:  m.CreatedAt.UTC(),
	}, nil
}

// Delete removes one token. The delete is atomic per document, so two
// concurrent revokes of the same token see exactly one success.
func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

func (r *TokenRepository) DeleteByOwner(ctx context.Context, kind domain.AccountKind, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"tokenable_type": string(kind), "tokenable_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("delete owner tokens: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TokenRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_used_at": at.UTC()}})
	if err != nil {
		return fmt.Errorf("touch token: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique hash index and the owner lookup index.
func (r *TokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tokenable_type", Value: 1}, {Key: "tokenable_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
