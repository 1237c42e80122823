package profileRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"freelancehub/database"
	"freelancehub/database/repository"
	"freelancehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo creates the repository and makes sure its indexes exist.
func NewMongoProfileRepo() (ProfileRepository, error) {
	repo := &MongoProfileRepo{coll: database.Collection("profiles")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoProfileRepo) ensureIndexes() error {
	ctx, cancel := repository.WithTimeout(context.Background(), repository.ListTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "freelancerId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "skills", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}, {Key: "name", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", repository.Translate(err))
	}
	return nil
}

func (r *MongoProfileRepo) findOne(ctx context.Context, filter bson.M) (*models.Profile, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var profile models.Profile
	if err := r.coll.FindOne(ctx, filter).Decode(&profile); err != nil {
		return nil, repository.Translate(err)
	}
	return &profile, nil
}

func (r *MongoProfileRepo) GetByFreelancerID(ctx context.Context, freelancerID string) (*models.Profile, error) {
	profile, err := r.findOne(ctx, bson.M{"freelancerId": freelancerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", freelancerID, err)
	}
	return profile, nil
}

func (r *MongoProfileRepo) GetByName(ctx context.Context, name string) (*models.Profile, error) {
	re := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$", Options: "i"}
	profile, err := r.findOne(ctx, bson.M{"name": re})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile named %q: %w", name, err)
	}
	return profile, nil
}

func (r *MongoProfileRepo) Search(ctx context.Context, criteria SearchCriteria) ([]models.Profile, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.ListTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, BuildSearchFilter(criteria), opts)
	if err != nil {
		return nil, fmt.Errorf("profile search failed: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []models.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

// updateOne applies an update document and reports ErrNotFound when nothing matched.
func (r *MongoProfileRepo) updateOne(ctx context.Context, freelancerID string, update bson.M) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"freelancerId": freelancerID}, update)
	if err != nil {
		return fmt.Errorf("failed to update profile %s: %w", freelancerID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("profile %s: %w", freelancerID, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoProfileRepo) UpdateDetails(ctx context.Context, freelancerID string, details models.ProfileDetails) error {
	set := bson.M{
		"name":         details.Name,
		"bio":          details.Bio,
		"skills":       details.Skills,
		"hourlyRate":   details.HourlyRate,
		"availability": details.Availability,
		"portfolio":    details.Portfolio,
		"profileImage": details.ProfileImage,
		"updatedAt":    time.Now().UTC(),
	}
	return r.updateOne(ctx, freelancerID, bson.M{"$set": set})
}

func (r *MongoProfileRepo) AddHiredBy(ctx context.Context, freelancerID, clientID string) error {
	return r.updateOne(ctx, freelancerID, bson.M{
		"$addToSet": bson.M{"hiredBy": clientID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *MongoProfileRepo) SetRating(ctx context.Context, freelancerID string, agg models.RatingAggregate) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{
		"freelancerId": freelancerID,
		"$or": bson.A{
			bson.M{"ratingCount": bson.M{"$lte": agg.Count}},
			bson.M{"ratingCount": bson.M{"$exists": false}},
		},
	}
	result, err := r.coll.UpdateOne(ctx, filter, ratingUpdate(agg))
	if err != nil {
		return fmt.Errorf("failed to set rating for %s: %w", freelancerID, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"freelancerId": freelancerID})
	if err != nil {
		return fmt.Errorf("failed to check profile %s: %w", freelancerID, err)
	}
	if n == 0 {
		return fmt.Errorf("profile %s: %w", freelancerID, repository.ErrNotFound)
	}
	return fmt.Errorf("profile %s holds a newer rating: %w", freelancerID, repository.ErrStale)
}

func (r *MongoProfileRepo) ResetRating(ctx context.Context, freelancerID string, agg models.RatingAggregate) error {
	return r.updateOne(ctx, freelancerID, ratingUpdate(agg))
}

func ratingUpdate(agg models.RatingAggregate) bson.M {
	return bson.M{"$set": bson.M{
		"rating":      agg.Mean,
		"ratingCount": agg.Count,
		"updatedAt":   time.Now().UTC(),
	}}
}
