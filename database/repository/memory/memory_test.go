package memoryRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"freelancehub/database/repository"
	"freelancehub/models"
)

func TestHireRepoUniquePair(t *testing.T) {
	ctx := context.Background()
	r := NewHireRepo()

	first := &models.HireRecord{ID: "h1", ClientID: "c1", FreelancerID: "f1"}
	if err := r.Insert(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}
	dup := &models.HireRecord{ID: "h2", ClientID: "c1", FreelancerID: "f1"}
	if err := r.Insert(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := r.Delete(ctx, "h1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Insert(ctx, dup); err != nil {
		t.Fatalf("insert after delete: %v", err)
	}
}

func TestRatingRepoAggregate(t *testing.T) {
	ctx := context.Background()
	r := NewRatingRepo()

	agg, err := r.Aggregate(ctx, "f1")
	if err != nil || agg.Count != 0 || agg.Mean != 0 {
		t.Fatalf("expected zero aggregate, got %+v err=%v", agg, err)
	}
	for i, v := range []float64{5, 4, 2.5} {
		rt := &models.Rating{ID: string(rune('a' + i)), ClientID: string(rune('A' + i)), FreelancerID: "f1", Value: v}
		if err := r.Insert(ctx, rt); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	agg, _ = r.Aggregate(ctx, "f1")
	if agg.Count != 3 || agg.Mean < 3.8333 || agg.Mean > 3.8334 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}
}

func TestProfileRepoAddHiredByIsSet(t *testing.T) {
	ctx := context.Background()
	r := NewProfileRepo()
	if err := r.Create(ctx, &models.Profile{FreelancerID: "f1", Name: "Ana"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := r.AddHiredBy(ctx, "f1", "c1"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	p, _ := r.GetByFreelancerID(ctx, "f1")
	if len(p.HiredBy) != 1 {
		t.Fatalf("expected one hiredBy entry, got %v", p.HiredBy)
	}
	if _, err := r.GetByName(ctx, "  ana "); err != nil {
		t.Fatalf("expected case-insensitive name lookup, got %v", err)
	}
}

func TestProfileRepoSetRatingNeverGoesBack(t *testing.T) {
	ctx := context.Background()
	r := NewProfileRepo()
	_ = r.Create(ctx, &models.Profile{FreelancerID: "f1", Name: "Ana"})

	if err := r.SetRating(ctx, "f1", models.RatingAggregate{Mean: 4, Count: 2}); err != nil {
		t.Fatalf("set rating: %v", err)
	}
	if err := r.SetRating(ctx, "f1", models.RatingAggregate{Mean: 5, Count: 1}); !errors.Is(err, repository.ErrStale) {
		t.Fatalf("expected ErrStale for an older aggregate, got %v", err)
	}
	p, _ := r.GetByFreelancerID(ctx, "f1")
	if p.Rating != 4 || p.RatingCount != 2 {
		t.Fatalf("stored aggregate: got=%v/%d want=4/2", p.Rating, p.RatingCount)
	}

	if err := r.ResetRating(ctx, "f1", models.RatingAggregate{Mean: 5, Count: 1}); err != nil {
		t.Fatalf("reset rating: %v", err)
	}
	p, _ = r.GetByFreelancerID(ctx, "f1")
	if p.Rating != 5 || p.RatingCount != 1 {
		t.Fatalf("after reset: got=%v/%d want=5/1", p.Rating, p.RatingCount)
	}
	if err := r.SetRating(ctx, "missing", models.RatingAggregate{Count: 1}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewProfileRepo()
	_ = r.Create(ctx, &models.Profile{FreelancerID: "f1", Skills: []string{"Go"}})

	p, _ := r.GetByFreelancerID(ctx, "f1")
	p.Skills[0] = "mutated"

	again, _ := r.GetByFreelancerID(ctx, "f1")
	if again.Skills[0] != "Go" {
		t.Fatalf("stored profile was mutated through a read")
	}
}

func TestBidRepoOneAcceptedPerProject(t *testing.T) {
	ctx := context.Background()
	r := NewBidRepo()
	_ = r.Create(ctx, &models.Bid{ID: "b1", ProjectID: "p1", FreelancerID: "f1", Status: models.BidPending})
	_ = r.Create(ctx, &models.Bid{ID: "b2", ProjectID: "p1", FreelancerID: "f2", Status: models.BidPending})

	if err := r.CompareAndSetStatus(ctx, "b1", models.BidPending, models.BidAccepted); err != nil {
		t.Fatalf("accept b1: %v", err)
	}
	err := r.CompareAndSetStatus(ctx, "b2", models.BidPending, models.BidAccepted)
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for second accept, got %v", err)
	}
	b2, _ := r.GetByID(ctx, "b2")
	if b2.Status != models.BidPending {
		t.Fatalf("failed accept must leave b2 pending, got %s", b2.Status)
	}
	if err := r.CompareAndSetStatus(ctx, "b1", models.BidPending, models.BidRejected); !errors.Is(err, repository.ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}

	n, _ := r.RejectPendingSiblings(ctx, "p1", "b1")
	if n != 1 {
		t.Fatalf("expected one sibling rejected, got %d", n)
	}
}

func TestBidRepoOnePendingPerFreelancer(t *testing.T) {
	ctx := context.Background()
	r := NewBidRepo()
	_ = r.Create(ctx, &models.Bid{ID: "b1", ProjectID: "p1", FreelancerID: "f1", Status: models.BidPending})
	err := r.Create(ctx, &models.Bid{ID: "b2", ProjectID: "p1", FreelancerID: "f1", Status: models.BidPending})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	_ = r.CompareAndSetStatus(ctx, "b1", models.BidPending, models.BidWithdrawn)
	if err := r.Create(ctx, &models.Bid{ID: "b2", ProjectID: "p1", FreelancerID: "f1", Status: models.BidPending}); err != nil {
		t.Fatalf("rebid after withdraw: %v", err)
	}
}

func TestProjectRepoConditionalWrites(t *testing.T) {
	ctx := context.Background()
	r := NewProjectRepo()
	_ = r.Create(ctx, &models.Project{
		ID:         "p1",
		Status:     models.ProjectOpen,
		Milestones: []models.Milestone{{ID: "m1"}},
		CreatedAt:  time.Now(),
	})

	if err := r.Assign(ctx, "p1", "f1", "b1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := r.Assign(ctx, "p1", "f2", "b2"); !errors.Is(err, repository.ErrStale) {
		t.Fatalf("expected ErrStale on second assign, got %v", err)
	}

	if err := r.SetMilestoneCompleted(ctx, "p1", "m1", true, false); !errors.Is(err, repository.ErrStale) {
		t.Fatalf("expected ErrStale on mismatched expectation, got %v", err)
	}
	if err := r.SetMilestoneCompleted(ctx, "p1", "m1", false, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := r.SetStatus(ctx, "missing", models.ProjectOpen, models.ProjectCompleted); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
