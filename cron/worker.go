package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freelancehub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RatingReconciler recomputes a stored rating aggregate.
type RatingReconciler interface {
	ReconcileRating(ctx context.Context, freelancerID string) error
}

// SiblingRejecter finishes the sibling rejection of an accepted bid.
type SiblingRejecter interface {
	RejectSiblings(ctx context.Context, projectID, acceptedBidID string) error
}

// NewServeMux routes every task type to its handler.
func NewServeMux(reconciler RatingReconciler, rejecter SiblingRejecter) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRatingReconcile, HandleRatingReconcile(reconciler))
	mux.HandleFunc(TypeRejectSiblings, HandleRejectSiblings(rejecter))
	return mux
}

func HandleRatingReconcile(reconciler RatingReconciler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p RatingReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
		}
		if p.FreelancerID == "" {
			return fmt.Errorf("%s payload missing freelancerId: %w", task.Type(), asynq.SkipRetry)
		}
		if err := reconciler.ReconcileRating(ctx, p.FreelancerID); err != nil {
			utils.GetLogger().Warn("Rating reconcile failed", zap.String("freelancerId", p.FreelancerID), zap.Error(err))
			return err
		}
		return nil
	}
}

func HandleRejectSiblings(rejecter SiblingRejecter) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p RejectSiblingsPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
		}
		if p.ProjectID == "" || p.AcceptedBidID == "" {
			return fmt.Errorf("%s payload incomplete: %w", task.Type(), asynq.SkipRetry)
		}
		if err := rejecter.RejectSiblings(ctx, p.ProjectID, p.AcceptedBidID); err != nil {
			utils.GetLogger().Warn("Sibling rejection failed", zap.String("projectId", p.ProjectID), zap.Error(err))
			return err
		}
		return nil
	}
}

// InitWorker starts the task server in the background, retrying startup with
// backoff. The returned server is shut down by the caller.
func InitWorker(reconciler RatingReconciler, rejecter SiblingRejecter) *asynq.Server {
	logger := utils.GetLogger()
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewServeMux(reconciler, rejecter)

	go func() {
		logger.Info("Starting task worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Task worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Task worker gave up; background reconciliation disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}
