package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tradewell/backoffice/internal/core/domain"
)

const collectionAccounts = "accounts"

// AccountRepository is the mongo-backed account directory. The unique index
// on username is the source of truth for the uniqueness invariant: a race
// between two writers of the same username ends with one duplicate-key error.
type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	FullName     string             `bson:"full_name"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// EnsureIndexes creates the unique username index on the accounts collection.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := r.col.Indexes().CreateOne(ctx, index)
	if err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}
	return nil
}

// FindByUsername retrieves an account by its exact (case-sensitive) username.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by username: %w", err)
	}
	return docToAccount(&doc), nil
}

// FindByID retrieves an account by id. A malformed id is indistinguishable
// from an absent one for callers: both are not found.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return docToAccount(&doc), nil
}

// Save inserts the account when it carries no id yet, otherwise replaces the
// stored document. Duplicate-key errors map to domain.ErrUsernameTaken.
func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := accountDoc{
		Username:     account.Username,
		FullName:     account.FullName,
		PasswordHash: account.PasswordHash,
		Role:         account.Role,
		CreatedAt:    account.CreatedAt.Unix(),
		UpdatedAt:    account.UpdatedAt.Unix(),
	}

	if account.ID == "" {
		res, err := r.col.InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrUsernameTaken
			}
			return nil, fmt.Errorf("insert account: %w", err)
		}
		saved := *account
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			saved.ID = oid.Hex()
		}
		return &saved, nil
	}

	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	doc.ID = oid

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("replace account: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// Delete removes the account document.
func (r *AccountRepository) Delete(ctx context.Context, account *domain.Account) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// All returns every account in the directory.
func (r *AccountRepository) All(ctx context.Context) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	var accounts []domain.Account
	for cur.Next(ctx) {
		var doc accountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, *docToAccount(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func docToAccount(doc *accountDoc) *domain.Account {
	return &domain.Account{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		FullName:     doc.FullName,
		PasswordHash: doc.PasswordHash,
		Role:         doc.Role,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}
