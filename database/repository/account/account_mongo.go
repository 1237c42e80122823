package accountRepo

import (
	"context"
	"fmt"
	"time"

	"freelancehub/database"
	"freelancehub/database/repository"
	"freelancehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo creates the repository and makes sure its indexes exist.
func NewMongoAccountRepo() (AccountRepository, error) {
	repo := &MongoAccountRepo{coll: database.Collection("accounts")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoAccountRepo) ensureIndexes() error {
	ctx, cancel := repository.WithTimeout(context.Background(), repository.ListTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("failed to create account: %w", repository.Translate(err))
	}
	return nil
}

func (r *MongoAccountRepo) getOne(ctx context.Context, filter bson.M, what string) (*models.Account, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var account models.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to fetch account by %s: %w", what, repository.Translate(err))
	}
	return &account, nil
}

func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getOne(ctx, bson.M{"id": id}, "id")
}

func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx, bson.M{"email": email}, "email")
}

func (r *MongoAccountRepo) GetAll(ctx context.Context) ([]models.Account, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.ListTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	defer cursor.Close(ctx)

	accounts := []models.Account{}
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return accounts, nil
}

func (r *MongoAccountRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"security.tokenHash": tokenHash, "updatedAt": time.Now().UTC()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update token for account %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("account %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
