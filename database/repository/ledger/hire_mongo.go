package ledgerRepo

import (
	"context"
	"fmt"

	"freelancehub/database"
	"freelancehub/database/repository"
	"freelancehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoHireRepo implements HireRepository using MongoDB.
type MongoHireRepo struct {
	coll *mongo.Collection
}

func NewMongoHireRepo() (HireRepository, error) {
	repo := &MongoHireRepo{coll: database.Collection("hires")}
	if err := pairIndexes(repo.coll); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoHireRepo) Insert(ctx context.Context, record *models.HireRecord) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert hire record: %w", repository.Translate(err))
	}
	return nil
}

func (r *MongoHireRepo) Get(ctx context.Context, clientID, freelancerID string) (*models.HireRecord, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var record models.HireRecord
	filter := bson.M{"clientId": clientID, "freelancerId": freelancerID}
	if err := r.coll.FindOne(ctx, filter).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to fetch hire record: %w", repository.Translate(err))
	}
	return &record, nil
}

func (r *MongoHireRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *MongoHireRepo) ListByClient(ctx context.Context, clientID string) ([]models.HireRecord, error) {
	return findAll[models.HireRecord](ctx, r.coll, bson.M{"clientId": clientID})
}

func (r *MongoHireRepo) ListByFreelancer(ctx context.Context, freelancerID string) ([]models.HireRecord, error) {
	return findAll[models.HireRecord](ctx, r.coll, bson.M{"freelancerId": freelancerID})
}
