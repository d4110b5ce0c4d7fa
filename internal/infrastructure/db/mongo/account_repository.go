package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/proelectric/proadmin/internal/core/domain"
)

const collectionAccounts = "accounts"

type AccountRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{db: db, col: db.Collection(collectionAccounts)}
}

type accountDoc struct {
	ID           int64  `bson:"_id"`
	PlatformID   string `bson:"platform_id"`
	FirstName    string `bson:"first_name"`
	Username     string `bson:"username"`
	Phone        string `bson:"phone,omitempty"`
	Role         string `bson:"role"`
	PasswordHash string `bson:"password_hash"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.FindByUsername(ctx, account.Username); err == nil {
		return nil, domain.ErrUserExists
	}

	id, err := nextSequence(ctx, r.db, collectionAccounts)
	if err != nil {
		return nil, err
	}
	doc := toAccountDoc(account)
	doc.ID = id
	if doc.PlatformID == "" {
		doc.PlatformID = uuid.NewString()
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByPlatformID(ctx context.Context, platformID string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"platform_id": platformID})
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	out := make([]domain.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, nil
}

func (r *AccountRepository) UpdateRole(ctx context.Context, platformID string, role domain.Role) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"platform_id": platformID},
		bson.M{"$set": bson.M{"role": string(role), "updated_at": time.Now().UTC().Unix()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique indexes the lookups rely on.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "platform_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func toAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		ID:           a.ID,
		PlatformID:   a.PlatformID,
		FirstName:    a.FirstName,
		Username:     a.Username,
		Phone:        a.Phone,
		Role:         string(a.Role),
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt.Unix(),
		UpdatedAt:    a.UpdatedAt.Unix(),
	}
}

func (d accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		User: domain.User{
			ID:         d.ID,
			PlatformID: d.PlatformID,
			FirstName:  d.FirstName,
			Username:   d.Username,
			Phone:      d.Phone,
			Role:       domain.ParseRole(d.Role),
		},
		PasswordHash: d.PasswordHash,
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
