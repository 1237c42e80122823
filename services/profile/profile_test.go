package profile

import (
	"context"
	"testing"

	memoryRepo "freelancehub/database/repository/memory"
	"freelancehub/models"
	"freelancehub/services/errs"
)

func newTestService(t *testing.T) (*DefaultProfileService, *memoryRepo.ProfileRepo) {
	t.Helper()
	repo := memoryRepo.NewProfileRepo()
	svc, err := NewDefaultProfileService(repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func skillsPtr(s ...string) *[]string { return &s }

func TestAnaCompletenessScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	ana := models.Identity{ID: "f-ana", Role: models.RoleFreelancer, Name: "Ana"}

	if _, err := svc.CreateProfile(ctx, ana); err != nil {
		t.Fatalf("create: %v", err)
	}

	steps := []struct {
		name string
		cmd  UpdateProfileCommand
		want int
	}{
		{"initial", UpdateProfileCommand{}, 0},
		{"skills", UpdateProfileCommand{Skills: skillsPtr("React")}, 30},
		{"bio", UpdateProfileCommand{Bio: strPtr("Frontend dev")}, 50},
		{"rate", UpdateProfileCommand{HourlyRate: floatPtr(40)}, 70},
		{"portfolio", UpdateProfileCommand{Portfolio: &[]PortfolioItemInput{{
			Title: "Shop", URL: "https://shop.example.com",
		}}}, 100},
	}
	for _, step := range steps {
		view, err := svc.UpdateProfile(ctx, ana, step.cmd)
		if err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if view.Completeness != step.want {
			t.Fatalf("%s: completeness got=%d want=%d", step.name, view.Completeness, step.want)
		}
	}

	view, _ := svc.GetOwnProfile(ctx, ana)
	if view.Name != "Ana" || view.Portfolio[0].ID == "" {
		t.Fatalf("unexpected final view: %+v", view)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	f := models.Identity{ID: "f1", Role: models.RoleFreelancer, Name: "Ana"}
	_, _ = svc.CreateProfile(ctx, f)

	bad := models.Availability("weekends")
	tests := []struct {
		name string
		cmd  UpdateProfileCommand
	}{
		{"negative rate", UpdateProfileCommand{HourlyRate: floatPtr(-1)}},
		{"blank name", UpdateProfileCommand{Name: strPtr("  ")}},
		{"bad availability", UpdateProfileCommand{Availability: &bad}},
		{"portfolio without title", UpdateProfileCommand{Portfolio: &[]PortfolioItemInput{{URL: "https://a.io"}}}},
		{"portfolio bad url", UpdateProfileCommand{Portfolio: &[]PortfolioItemInput{{Title: "x", URL: "not a url"}}}},
		{"profile image not http", UpdateProfileCommand{ProfileImage: strPtr("ftp://x/y.png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(ctx, f, tt.cmd)
			if !errs.IsCode(err, errs.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	view, _ := svc.GetOwnProfile(ctx, f)
	if view.Completeness != 0 || view.HourlyRate != 0 {
		t.Fatalf("rejected updates must not change the profile: %+v", view)
	}
}

func TestUpdateProfileRejectsClients(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.UpdateProfile(context.Background(), models.Identity{ID: "c1", Role: models.RoleClient}, UpdateProfileCommand{})
	if !errs.IsCode(err, errs.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{" React ", "go", "", "react", "Go", "SQL"})
	want := []string{"React", "go", "SQL"}
	if len(got) != len(want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got=%v want=%v", got, want)
		}
	}
}

func TestProfileViewDefaults(t *testing.T) {
	v := NewProfileView(models.Profile{FreelancerID: "f1", Rating: 3.6666, HiredBy: []string{"c1"}},
		models.Identity{ID: "c1", Role: models.RoleClient})

	if v.Name != UnknownFreelancerName {
		t.Fatalf("name default: got=%q", v.Name)
	}
	if v.Availability != models.AvailabilityFullTime {
		t.Fatalf("availability default: got=%q", v.Availability)
	}
	if v.Skills == nil || v.Portfolio == nil || v.HiredBy == nil {
		t.Fatalf("lists must default to empty, got %+v", v)
	}
	if v.Rating != 3.7 {
		t.Fatalf("display rating: got=%v want=3.7", v.Rating)
	}
	if !v.HiredByMe || v.HireCount != 1 {
		t.Fatalf("hire flags: %+v", v)
	}
	if len(v.HiredBy) != 0 {
		t.Fatalf("hiredBy list is owner-only, got %v", v.HiredBy)
	}
}

func TestSearchFreelancers(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	_ = repo.Create(ctx, &models.Profile{FreelancerID: "f1", Name: "Ana", Skills: []string{"React"}, HourlyRate: 40, Availability: models.AvailabilityFullTime, Rating: 4})
	_ = repo.Create(ctx, &models.Profile{FreelancerID: "f2", Name: "Ben", Skills: []string{"Go", "React"}, HourlyRate: 80, Availability: models.AvailabilityPartTime, Rating: 5})
	_ = repo.Create(ctx, &models.Profile{FreelancerID: "f3", Name: "Cy", Skills: []string{"Python"}, HourlyRate: 30, Availability: models.AvailabilityFullTime})

	viewer := models.Identity{ID: "c1", Role: models.RoleClient}

	all, err := svc.SearchFreelancers(ctx, SearchQuery{Availability: "all"}, viewer)
	if err != nil || len(all) != 3 || all[0].Name != "Ben" {
		t.Fatalf("unexpected full listing: %v err=%v", all, err)
	}

	react, _ := svc.SearchFreelancers(ctx, SearchQuery{Skills: []string{"react"}, MaxRate: floatPtr(50)}, viewer)
	if len(react) != 1 || react[0].FreelancerID != "f1" {
		t.Fatalf("unexpected filtered listing: %v", react)
	}

	part, _ := svc.SearchFreelancers(ctx, SearchQuery{Availability: "Part-Time"}, viewer)
	if len(part) != 1 || part[0].FreelancerID != "f2" {
		t.Fatalf("unexpected availability listing: %v", part)
	}

	if _, err := svc.SearchFreelancers(ctx, SearchQuery{Availability: "weekends"}, viewer); !errs.IsCode(err, errs.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateProfileTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	f := models.Identity{ID: "f1", Role: models.RoleFreelancer, Name: "Ana"}
	_, _ = svc.CreateProfile(ctx, f)
	_, err := svc.CreateProfile(ctx, f)
	if !errs.IsCode(err, errs.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
