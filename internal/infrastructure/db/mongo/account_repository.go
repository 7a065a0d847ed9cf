package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/account-api/internal/core/domain"
)

const (
	CollectionAdmins    = "admins"
	CollectionCustomers = "customers"
)

// emailCollation makes the unique email index case-insensitive. Queries that do
// not pass the collation still match exactly.
var emailCollation = &options.Collation{Locale: "en", Strength: 2}

// AccountRepository implements ports.AccountRepository over one collection.
type AccountRepository struct {
	coll *mongo.Collection
	kind domain.AccountKind
}

// NewAccountRepository binds the repository to the admins or customers collection.
func NewAccountRepository(db *mongo.Database, collection string) *AccountRepository {
	kind := domain.KindCustomer
	if collection == CollectionAdmins {
		kind = domain.KindAdmin
	}
	return &AccountRepository{coll: db.Collection(collection), kind: kind}
}

type mongoAccount struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"firstname,omitempty"`
	LastName    string             `bson:"lastname,omitempty"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	PhoneNumber string             `bson:"phone_number,omitempty"`
	Status      *bool              `bson:"status,omitempty"`
	IsSuspended *string            `bson:"is_suspended,omitempty"`
	LastLogin   *time.Time         `bson:"last_login,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *AccountRepository) toDomain(m *mongoAccount) *domain.Account {
	a := &domain.Account{
		ID:           m.ID.Hex(),
		Kind:         r.kind,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.Password,
		PhoneNumber:  m.PhoneNumber,
		IsSuspended:  m.IsSuspended,
		LastLogin:    utcPtr(m.LastLogin),
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
	if m.Status != nil {
		a.Status = *m.Status
	}
	return a
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return r.toDomain(&m), nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccount{
		ID:          primitive.NewObjectID(),
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Email:       account.Email,
		Password:    account.PasswordHash,
		PhoneNumber: account.PhoneNumber,
		IsSuspended: account.IsSuspended,
		LastLogin:   account.LastLogin,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
	if r.kind == domain.KindAdmin {
		status := account.Status
		doc.Status = &status
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return r.toDomain(&doc), nil
}

func (r *AccountRepository) Update(ctx context.Context, id string, patch domain.AccountPatch) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	setIfPresent(set, "firstname", patch.FirstName)
	setIfPresent(set, "lastname", patch.LastName)
	setIfPresent(set, "email", patch.Email)
	setIfPresent(set, "password", patch.PasswordHash)
	setIfPresent(set, "phone_number", patch.PhoneNumber)
	setIfPresent(set, "is_suspended", patch.IsSuspended)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoAccount
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrAccountNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return r.toDomain(&m), nil
}

func setIfPresent(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context, page, limit int) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.Account, 0, limit)
	for cur.Next(ctx) {
		var m mongoAccount
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		out = append(out, r.toDomain(&m))
	}
	return out, cur.Err()
}

// TouchLastLogin writes last_login only; updated_at is deliberately left alone.
func (r *AccountRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"last_login": at.UTC()}})
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the case-insensitive unique email index.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(emailCollation),
	})
	return err
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
