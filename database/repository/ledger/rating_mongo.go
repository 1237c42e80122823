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

// MongoRatingRepo implements RatingRepository using MongoDB.
type MongoRatingRepo struct {
	coll *mongo.Collection
}

func NewMongoRatingRepo() (RatingRepository, error) {
	repo := &MongoRatingRepo{coll: database.Collection("ratings")}
	if err := pairIndexes(repo.coll); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoRatingRepo) Insert(ctx context.Context, rating *models.Rating) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rating); err != nil {
		return fmt.Errorf("failed to insert rating: %w", repository.Translate(err))
	}
	return nil
}

func (r *MongoRatingRepo) Get(ctx context.Context, clientID, freelancerID string) (*models.Rating, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var rating models.Rating
	filter := bson.M{"clientId": clientID, "freelancerId": freelancerID}
	if err := r.coll.FindOne(ctx, filter).Decode(&rating); err != nil {
		return nil, fmt.Errorf("failed to fetch rating: %w", repository.Translate(err))
	}
	return &rating, nil
}

func (r *MongoRatingRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}

func (r *MongoRatingRepo) ListByFreelancer(ctx context.Context, freelancerID string) ([]models.Rating, error) {
	return findAll[models.Rating](ctx, r.coll, bson.M{"freelancerId": freelancerID})
}

// Aggregate runs $avg/$sum over the ledger. No ratings yields a zero aggregate.
func (r *MongoRatingRepo) Aggregate(ctx context.Context, freelancerID string) (models.RatingAggregate, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"freelancerId": freelancerID}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "mean", Value: bson.M{"$avg": "$value"}},
			{Key: "count", Value: bson.M{"$sum": 1}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingAggregate{}, fmt.Errorf("rating aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.RatingAggregate
	if err := cursor.All(ctx, &rows); err != nil {
		return models.RatingAggregate{}, fmt.Errorf("failed to decode rating aggregate: %w", err)
	}
	if len(rows) == 0 {
		return models.RatingAggregate{}, nil
	}
	return rows[0], nil
}
