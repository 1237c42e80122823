package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"freelancehub/config"

	"github.com/hibiken/asynq"
)

const (
	// TypeRatingReconcile recomputes a freelancer's rating from the ledger.
	TypeRatingReconcile = "rating:reconcile"
	// TypeRejectSiblings rejects pending bids left behind by an accept.
	TypeRejectSiblings = "bids:reject-siblings"
)

type RatingReconcilePayload struct {
	FreelancerID string `json:"freelancerId"`
}

type RejectSiblingsPayload struct {
	ProjectID     string `json:"projectId"`
	AcceptedBidID string `json:"acceptedBidId"`
}

// Dispatcher enqueues follow-up work. Services treat a nil Dispatcher as
// "no background queue".
type Dispatcher interface {
	EnqueueRatingReconcile(ctx context.Context, freelancerID string) error
	EnqueueRejectSiblings(ctx context.Context, projectID, acceptedBidID string) error
}

// RedisOpt builds the queue connection from config.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqDispatcher implements Dispatcher on an asynq client.
type AsynqDispatcher struct {
	client         *asynq.Client
	reconcileDelay time.Duration
}

func NewAsynqDispatcher(client *asynq.Client, reconcileDelay time.Duration) *AsynqDispatcher {
	return &AsynqDispatcher{client: client, reconcileDelay: reconcileDelay}
}

// NewRatingReconcileTask builds a delayed task. Ratings arriving within the
// delay collapse into a single reconcile.
func NewRatingReconcileTask(freelancerID string, delay time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(RatingReconcilePayload{FreelancerID: freelancerID})
	if err != nil {
		return nil, err
	}
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.ProcessIn(delay)}
	if delay > 0 {
		opts = append(opts, asynq.Unique(delay))
	}
	return asynq.NewTask(TypeRatingReconcile, payload, opts...), nil
}

func NewRejectSiblingsTask(projectID, acceptedBidID string) (*asynq.Task, error) {
	payload, err := json.Marshal(RejectSiblingsPayload{ProjectID: projectID, AcceptedBidID: acceptedBidID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRejectSiblings, payload, asynq.MaxRetry(10)), nil
}

func (d *AsynqDispatcher) enqueue(ctx context.Context, task *asynq.Task) error {
	if _, err := d.client.EnqueueContext(ctx, task); err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		return fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}
	return nil
}

func (d *AsynqDispatcher) EnqueueRatingReconcile(ctx context.Context, freelancerID string) error {
	task, err := NewRatingReconcileTask(freelancerID, d.reconcileDelay)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, task)
}

func (d *AsynqDispatcher) EnqueueRejectSiblings(ctx context.Context, projectID, acceptedBidID string) error {
	task, err := NewRejectSiblingsTask(projectID, acceptedBidID)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, task)
}
