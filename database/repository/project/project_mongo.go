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

// MongoProjectRepo implements ProjectRepository using MongoDB.
type MongoProjectRepo struct {
	coll *mongo.Collection
}

func NewMongoProjectRepo() (ProjectRepository, error) {
	repo := &MongoProjectRepo{coll: database.Collection("projects")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoProjectRepo) ensureIndexes() error {
	ctx, cancel := repository.WithTimeout(context.Background(), repository.ListTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "freelancerId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoProjectRepo) Create(ctx context.Context, project *models.Project) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", repository.Translate(err))
	}
	return nil
}

func (r *MongoProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var project models.Project
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&project); err != nil {
		return nil, fmt.Errorf("failed to fetch project %s: %w", id, repository.Translate(err))
	}
	return &project, nil
}

func (r *MongoProjectRepo) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.ListTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

func (r *MongoProjectRepo) ListByClient(ctx context.Context, clientID string) ([]models.Project, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

func (r *MongoProjectRepo) ListByFreelancer(ctx context.Context, freelancerID string, status models.ProjectStatus) ([]models.Project, error) {
	filter := bson.M{"freelancerId": freelancerID}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *MongoProjectRepo) ListOpen(ctx context.Context) ([]models.Project, error) {
	return r.find(ctx, bson.M{"status": models.ProjectOpen})
}

// conditionalUpdate reports ErrNotFound when the project is missing and
// ErrStale when it exists but the condition failed.
func (r *MongoProjectRepo) conditionalUpdate(ctx context.Context, projectID string, cond, update bson.M) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{"id": projectID}
	for k, v := range cond {
		filter[k] = v
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", projectID, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": projectID})
	if err != nil {
		return fmt.Errorf("failed to check project %s: %w", projectID, err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", projectID, repository.ErrNotFound)
	}
	return fmt.Errorf("project %s: %w", projectID, repository.ErrStale)
}

func (r *MongoProjectRepo) Assign(ctx context.Context, projectID, freelancerID, bidID string) error {
	return r.conditionalUpdate(ctx, projectID,
		bson.M{"status": models.ProjectOpen},
		bson.M{"$set": bson.M{
			"status":        models.ProjectInProgress,
			"freelancerId":  freelancerID,
			"acceptedBidId": bidID,
			"updatedAt":     time.Now().UTC(),
		}},
	)
}

func (r *MongoProjectRepo) SetStatus(ctx context.Context, projectID string, from, to models.ProjectStatus) error {
	return r.conditionalUpdate(ctx, projectID,
		bson.M{"status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}},
	)
}

func (r *MongoProjectRepo) AppendMilestone(ctx context.Context, projectID string, milestone models.Milestone) error {
	return r.conditionalUpdate(ctx, projectID, nil, bson.M{
		"$push": bson.M{"milestones": milestone},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *MongoProjectRepo) SetMilestoneCompleted(ctx context.Context, projectID, milestoneID string, expected, completed bool) error {
	return r.conditionalUpdate(ctx, projectID,
		bson.M{"milestones": bson.M{"$elemMatch": bson.M{"id": milestoneID, "completed": expected}}},
		bson.M{"$set": bson.M{
			"milestones.$.completed": completed,
			"updatedAt":              time.Now().UTC(),
		}},
	)
}
