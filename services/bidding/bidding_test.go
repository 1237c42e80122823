package bidding

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	memoryRepo "freelancehub/database/repository/memory"
	"freelancehub/models"
	"freelancehub/services/errs"
)

var (
	owner = models.Identity{ID: "c1", Role: models.RoleClient, Name: "Bob"}
	other = models.Identity{ID: "c2", Role: models.RoleClient, Name: "Carl"}
	ana   = models.Identity{ID: "f1", Role: models.RoleFreelancer, Name: "Ana"}
	ben   = models.Identity{ID: "f2", Role: models.RoleFreelancer, Name: "Ben"}
)

type deferred struct {
	project, bid string
}

func (d *deferred) EnqueueRatingReconcile(context.Context, string) error { return nil }

func (d *deferred) EnqueueRejectSiblings(_ context.Context, projectID, bidID string) error {
	d.project, d.bid = projectID, bidID
	return nil
}

func newService(t *testing.T) (*DefaultBiddingService, *memoryRepo.Store, *deferred) {
	t.Helper()
	store := memoryRepo.NewStore()
	tasks := &deferred{}
	svc, err := NewDefaultBiddingService(store.Projects, store.Bids, tasks, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	err = store.Projects.Create(context.Background(), &models.Project{
		ID: "p1", ClientID: owner.ID, Title: "Landing page", Status: models.ProjectOpen, CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return svc, store, tasks
}

func terms(amount float64) models.BidTerms {
	return models.BidTerms{Amount: amount, EstimatedDeliveryDays: 7, Proposal: "I can do it"}
}

func mustBid(t *testing.T, svc *DefaultBiddingService, f models.Identity, amount float64) *models.Bid {
	t.Helper()
	bid, err := svc.SubmitBid(context.Background(), f, "p1", terms(amount))
	if err != nil {
		t.Fatalf("submit bid: %v", err)
	}
	return bid
}

func expectConflict(t *testing.T, err error) {
	t.Helper()
	if !errs.IsCode(err, errs.CodeConflict) || errs.ReasonOf(err) != errs.ReasonInvalidTransition {
		t.Fatalf("expected invalid_transition conflict, got %v", err)
	}
}

func TestAcceptedBidIsTerminal(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)
	bid := mustBid(t, svc, ana, 500)

	if _, err := svc.Accept(ctx, owner, bid.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_, err := svc.Reject(ctx, owner, bid.ID)
	expectConflict(t, err)
	_, err = svc.Withdraw(ctx, ana, bid.ID)
	expectConflict(t, err)

	stored, _ := store.Bids.GetByID(ctx, bid.ID)
	if stored.Status != models.BidAccepted {
		t.Fatalf("state must be unchanged, got %s", stored.Status)
	}
}

func TestWithdrawnBidRejectsEveryTransition(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)
	bid := mustBid(t, svc, ana, 500)

	if _, err := svc.Withdraw(ctx, ana, bid.ID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	_, err := svc.Accept(ctx, owner, bid.ID)
	expectConflict(t, err)
	_, err = svc.Reject(ctx, owner, bid.ID)
	expectConflict(t, err)
	_, err = svc.Withdraw(ctx, ana, bid.ID)
	expectConflict(t, err)
	_, err = svc.EditBid(ctx, ana, bid.ID, terms(400))
	expectConflict(t, err)

	stored, _ := store.Bids.GetByID(ctx, bid.ID)
	if stored.Status != models.BidWithdrawn || stored.Amount != 500 {
		t.Fatalf("withdrawn bid must be immutable, got %+v", stored)
	}
}

func TestTransitionActors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	bid := mustBid(t, svc, ana, 500)

	tests := []struct {
		name string
		call func() error
	}{
		{"freelancer accepts", func() error { _, err := svc.Accept(ctx, ana, bid.ID); return err }},
		{"other client accepts", func() error { _, err := svc.Accept(ctx, other, bid.ID); return err }},
		{"other client rejects", func() error { _, err := svc.Reject(ctx, other, bid.ID); return err }},
		{"client withdraws", func() error { _, err := svc.Withdraw(ctx, owner, bid.ID); return err }},
		{"other freelancer withdraws", func() error { _, err := svc.Withdraw(ctx, ben, bid.ID); return err }},
		{"other freelancer edits", func() error { _, err := svc.EditBid(ctx, ben, bid.ID, terms(1)); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errs.IsCode(err, errs.CodeForbidden) {
				t.Fatalf("expected forbidden, got %v", err)
			}
		})
	}
}

func TestAcceptRejectsSiblingsAndAssignsProject(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)
	a := mustBid(t, svc, ana, 500)
	b := mustBid(t, svc, ben, 450)

	if _, err := svc.Accept(ctx, owner, a.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	sibling, _ := store.Bids.GetByID(ctx, b.ID)
	if sibling.Status != models.BidRejected {
		t.Fatalf("sibling must be auto-rejected, got %s", sibling.Status)
	}
	project, _ := store.Projects.GetByID(ctx, "p1")
	if project.Status != models.ProjectInProgress || project.FreelancerID != ana.ID || project.AcceptedBidID != a.ID {
		t.Fatalf("project not assigned: %+v", project)
	}

	_, err := svc.SubmitBid(ctx, ben, "p1", terms(300))
	expectConflict(t, err)
}

// failingSiblings makes the bulk reject fail so the deferral path runs.
type failingSiblings struct {
	*memoryRepo.BidRepo
}

func (f failingSiblings) RejectPendingSiblings(context.Context, string, string) (int64, error) {
	return 0, errors.New("write concern timeout")
}

func TestAcceptDefersSiblingRejection(t *testing.T) {
	ctx := context.Background()
	svc, store, tasks := newService(t)
	a := mustBid(t, svc, ana, 500)
	b := mustBid(t, svc, ben, 450)
	svc.Bids = failingSiblings{store.Bids}

	if _, err := svc.Accept(ctx, owner, a.ID); err != nil {
		t.Fatalf("accept should succeed despite sibling failure: %v", err)
	}
	if tasks.project != "p1" || tasks.bid != a.ID {
		t.Fatalf("expected deferred task, got %+v", tasks)
	}

	svc.Bids = store.Bids
	if err := svc.RejectSiblings(ctx, "p1", a.ID); err != nil {
		t.Fatalf("worker reject: %v", err)
	}
	sibling, _ := store.Bids.GetByID(ctx, b.ID)
	if sibling.Status != models.BidRejected {
		t.Fatalf("sibling must be rejected by the worker, got %s", sibling.Status)
	}
}

// staleProjects fails Assign as if the project left the open state.
type staleProjects struct {
	*memoryRepo.ProjectRepo
}

func (s staleProjects) Assign(ctx context.Context, projectID, freelancerID, bidID string) error {
	_ = s.ProjectRepo.SetStatus(ctx, projectID, models.ProjectOpen, models.ProjectCompleted)
	return s.ProjectRepo.Assign(ctx, projectID, freelancerID, bidID)
}

func TestAcceptRevertsWhenProjectAssignFails(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)
	a := mustBid(t, svc, ana, 500)
	svc.Projects = staleProjects{store.Projects}

	_, err := svc.Accept(ctx, owner, a.ID)
	expectConflict(t, err)

	stored, _ := store.Bids.GetByID(ctx, a.ID)
	if stored.Status != models.BidPending {
		t.Fatalf("bid must revert to pending, got %s", stored.Status)
	}
}

func TestRejectSiblingsSkipsRevertedAccept(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)
	a := mustBid(t, svc, ana, 500)
	b := mustBid(t, svc, ben, 450)

	if err := svc.RejectSiblings(ctx, "p1", a.ID); err != nil {
		t.Fatalf("reject siblings: %v", err)
	}
	sibling, _ := store.Bids.GetByID(ctx, b.ID)
	if sibling.Status != models.BidPending {
		t.Fatalf("siblings of a pending bid must stay pending, got %s", sibling.Status)
	}
}

func TestSubmitAndEditBid(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	invalid := []models.BidTerms{
		{Amount: 0, EstimatedDeliveryDays: 3, Proposal: "x"},
		{Amount: math.NaN(), EstimatedDeliveryDays: 3, Proposal: "x"},
		{Amount: 10, EstimatedDeliveryDays: 0, Proposal: "x"},
		{Amount: 10, EstimatedDeliveryDays: 3, Proposal: "  "},
	}
	for i, tt := range invalid {
		if _, err := svc.SubmitBid(ctx, ana, "p1", tt); !errs.IsCode(err, errs.CodeValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if _, err := svc.SubmitBid(ctx, owner, "p1", terms(10)); !errs.IsCode(err, errs.CodeForbidden) {
		t.Fatalf("clients cannot bid, got %v", err)
	}
	if _, err := svc.SubmitBid(ctx, ana, "missing", terms(10)); !errs.IsCode(err, errs.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	bid := mustBid(t, svc, ana, 500)
	if _, err := svc.SubmitBid(ctx, ana, "p1", terms(10)); errs.ReasonOf(err) != errs.ReasonDuplicateBid {
		t.Fatalf("expected duplicate_bid, got %v", err)
	}

	edited, err := svc.EditBid(ctx, ana, bid.ID, models.BidTerms{Amount: 420, EstimatedDeliveryDays: 5, Proposal: " faster "})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Amount != 420 || edited.EstimatedDeliveryDays != 5 || edited.Proposal != "faster" {
		t.Fatalf("unexpected edited bid: %+v", edited)
	}
}

func TestListFreelancerBidsAndStats(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)
	for _, id := range []string{"p2", "p3"} {
		_ = store.Projects.Create(ctx, &models.Project{ID: id, ClientID: owner.ID, Status: models.ProjectOpen})
	}
	b1 := mustBid(t, svc, ana, 100)
	b2, _ := svc.SubmitBid(ctx, ana, "p2", terms(200))
	_, _ = svc.SubmitBid(ctx, ana, "p3", terms(300))
	_, _ = svc.Accept(ctx, owner, b1.ID)
	_, _ = svc.Reject(ctx, owner, b2.ID)

	listing, err := svc.ListFreelancerBids(ctx, ana, "active")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listing.Bids) != 1 || listing.Bids[0].ProjectID != "p3" {
		t.Fatalf("active tab: %+v", listing.Bids)
	}
	want := Stats{AvgBid: 200, SuccessRate: 100.0 / 3, TotalBids: 3}
	if listing.Stats.TotalBids != want.TotalBids || listing.Stats.AvgBid != want.AvgBid ||
		math.Abs(listing.Stats.SuccessRate-want.SuccessRate) > 1e-9 {
		t.Fatalf("stats: got=%+v want=%+v", listing.Stats, want)
	}

	for tab, n := range map[string]int{"accepted": 1, "rejected": 1, "withdrawn": 0, "": 3} {
		l, err := svc.ListFreelancerBids(ctx, ana, tab)
		if err != nil || len(l.Bids) != n {
			t.Fatalf("tab %q: got %d bids err=%v, want %d", tab, len(l.Bids), err, n)
		}
	}
	if _, err := svc.ListFreelancerBids(ctx, ana, "archived"); !errs.IsCode(err, errs.CodeValidation) {
		t.Fatalf("expected validation error for unknown tab, got %v", err)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	if got := ComputeStats(nil); got != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

func TestListProjectBidsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	mustBid(t, svc, ana, 100)

	if bids, err := svc.ListProjectBids(ctx, owner, "p1"); err != nil || len(bids) != 1 {
		t.Fatalf("owner listing: %v err=%v", bids, err)
	}
	if _, err := svc.ListProjectBids(ctx, other, "p1"); !errs.IsCode(err, errs.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
