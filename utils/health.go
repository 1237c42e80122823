package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// HealthCheck probes one backing service.
type HealthCheck func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Status    string          `json:"status"`
	Checks    map[string]bool `json:"checks"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth = HealthStatus{Status: "starting", Checks: map[string]bool{}}
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	out := currentHealth
	out.Checks = make(map[string]bool, len(currentHealth.Checks))
	for k, v := range currentHealth.Checks {
		out.Checks[k] = v
	}
	return out
}

// RedisHealthCheck pings a redis client.
func RedisHealthCheck(client *redis.Client) HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// RunHealthChecks probes every check once and stores the snapshot.
func RunHealthChecks(ctx context.Context, checks map[string]HealthCheck) HealthStatus {
	snapshot := HealthStatus{Status: "ok", Checks: make(map[string]bool, len(checks)), CheckedAt: time.Now().UTC()}
	for name, check := range checks {
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check(cctx)
		cancel()
		snapshot.Checks[name] = err == nil
		if err != nil {
			snapshot.Status = "degraded"
			GetLogger().Warn("Health check failed", zap.String("check", name), zap.Error(err))
		}
	}
	mu.Lock()
	currentHealth = snapshot
	mu.Unlock()
	return snapshot
}

// StartHealthMonitor runs the checks now and then on every tick until ctx
// is cancelled.
func StartHealthMonitor(ctx context.Context, interval time.Duration, checks map[string]HealthCheck) {
	RunHealthChecks(ctx, checks)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				RunHealthChecks(ctx, checks)
			}
		}
	}()
}
