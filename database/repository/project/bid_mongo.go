package projectRepo

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

// MongoBidRepo implements BidRepository using MongoDB.
type MongoBidRepo struct {
	coll *mongo.Collection
}

func NewMongoBidRepo() (BidRepository, error) {
	repo := &MongoBidRepo{coll: database.Collection("bids")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureIndexes backs the bid invariants with partial unique indexes: one
// pending bid per (project, freelancer) and one accepted bid per project.
func (r *MongoBidRepo) ensureIndexes() error {
	ctx, cancel := repository.WithTimeout(context.Background(), repository.ListTimeout)
	defer cancel()

	onePending := options.Index().
		SetUnique(true).
		SetName("one_pending_bid_per_freelancer").
		SetPartialFilterExpression(bson.M{"status": models.BidPending})
	oneAccepted := options.Index().
		SetUnique(true).
		SetName("one_accepted_bid_per_project").
		SetPartialFilterExpression(bson.M{"status": models.BidAccepted})

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "freelancerId", Value: 1}}, Options: onePending},
		{Keys: bson.D{{Key: "projectId", Value: 1}}, Options: oneAccepted},
		{Keys: bson.D{{Key: "freelancerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBidRepo) Create(ctx context.Context, bid *models.Bid) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, bid); err != nil {
		return fmt.Errorf("failed to create bid: %w", repository.Translate(err))
	}
	return nil
}

func (r *MongoBidRepo) GetByID(ctx context.Context, id string) (*models.Bid, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var bid models.Bid
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bid); err != nil {
		return nil, fmt.Errorf("failed to fetch bid %s: %w", id, repository.Translate(err))
	}
	return &bid, nil
}

func (r *MongoBidRepo) find(ctx context.Context, filter bson.M) ([]models.Bid, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.ListTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bids: %w", err)
	}
	defer cursor.Close(ctx)

	bids := []models.Bid{}
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("failed to decode bids: %w", err)
	}
	return bids, nil
}

func (r *MongoBidRepo) ListByFreelancer(ctx context.Context, freelancerID string) ([]models.Bid, error) {
	return r.find(ctx, bson.M{"freelancerId": freelancerID})
}

func (r *MongoBidRepo) ListByProject(ctx context.Context, projectID string) ([]models.Bid, error) {
	return r.find(ctx, bson.M{"projectId": projectID})
}

func (r *MongoBidRepo) conditionalUpdate(ctx context.Context, id string, from models.BidStatus, set bson.M) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update bid %s: %w", id, repository.Translate(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("bid %s no longer %s: %w", id, from, repository.ErrStale)
	}
	return nil
}

func (r *MongoBidRepo) CompareAndSetStatus(ctx context.Context, id string, from, to models.BidStatus) error {
	return r.conditionalUpdate(ctx, id, from, bson.M{"status": to})
}

func (r *MongoBidRepo) UpdateTerms(ctx context.Context, id string, terms models.BidTerms) error {
	return r.conditionalUpdate(ctx, id, models.BidPending, bson.M{
		"amount":                terms.Amount,
		"estimatedDeliveryDays": terms.EstimatedDeliveryDays,
		"proposal":              terms.Proposal,
	})
}

func (r *MongoBidRepo) RejectPendingSiblings(ctx context.Context, projectID, keepBidID string) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.ListTimeout)
	defer cancel()

	filter := bson.M{
		"projectId": projectID,
		"status":    models.BidPending,
		"id":        bson.M{"$ne": keepBidID},
	}
	update := bson.M{"$set": bson.M{"status": models.BidRejected, "updatedAt": time.Now().UTC()}}
	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to reject sibling bids on %s: %w", projectID, err)
	}
	return result.ModifiedCount, nil
}
