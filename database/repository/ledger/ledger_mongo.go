package ledgerRepo

import (
	"context"
	"fmt"

	"freelancehub/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// pairIndexes makes (clientId, freelancerId) unique in a ledger collection.
func pairIndexes(coll *mongo.Collection) error {
	ctx, cancel := repository.WithTimeout(context.Background(), repository.ListTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "freelancerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "freelancerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", coll.Name(), id, repository.ErrNotFound)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.ListTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}
