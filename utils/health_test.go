package utils

import (
	"context"
	"errors"
	"testing"
)

func TestRunHealthChecks(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	got := RunHealthChecks(context.Background(), map[string]HealthCheck{"mongo": ok})
	if got.Status != "ok" || !got.Checks["mongo"] {
		t.Fatalf("healthy snapshot: got=%+v", got)
	}

	got = RunHealthChecks(context.Background(), map[string]HealthCheck{"mongo": ok, "redis": down})
	if got.Status != "degraded" || got.Checks["redis"] {
		t.Fatalf("degraded snapshot: got=%+v", got)
	}

	stored := GetHealthStatus()
	stored.Checks["mongo"] = false
	if !GetHealthStatus().Checks["mongo"] {
		t.Fatalf("GetHealthStatus must return a copy")
	}
}
