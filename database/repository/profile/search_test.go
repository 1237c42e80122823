package profileRepo

import (
	"testing"

	"freelancehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildSearchFilterEmpty(t *testing.T) {
	if got := BuildSearchFilter(SearchCriteria{}); len(got) != 0 {
		t.Fatalf("expected empty filter, got %v", got)
	}
}

func TestBuildSearchFilterEscapesTerm(t *testing.T) {
	f := BuildSearchFilter(SearchCriteria{Term: " c++ "})
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or over name and skills, got %v", f)
	}
	re := or[0].(bson.M)["name"].(primitive.Regex)
	if re.Pattern != `c\+\+` || re.Options != "i" {
		t.Fatalf("unexpected regex: %+v", re)
	}
}

func TestBuildSearchFilterAllFields(t *testing.T) {
	maxRate := 50.0
	f := BuildSearchFilter(SearchCriteria{
		Skills:       []string{"React", " ", "Go"},
		MinRating:    4,
		MaxRate:      &maxRate,
		Availability: models.AvailabilityPartTime,
	})
	all := f["skills"].(bson.M)["$all"].(bson.A)
	if len(all) != 2 {
		t.Fatalf("blank skills should be dropped, got %d", len(all))
	}
	if all[0].(primitive.Regex).Pattern != "^React$" {
		t.Fatalf("unexpected skill pattern: %v", all[0])
	}
	if f["rating"].(bson.M)["$gte"] != 4.0 {
		t.Fatalf("unexpected rating filter: %v", f["rating"])
	}
	if f["hourlyRate"].(bson.M)["$lte"] != 50.0 {
		t.Fatalf("unexpected rate filter: %v", f["hourlyRate"])
	}
	if f["availability"] != models.AvailabilityPartTime {
		t.Fatalf("unexpected availability: %v", f["availability"])
	}
}

func TestMatchesCriteria(t *testing.T) {
	ana := models.Profile{
		Name:         "Ana",
		Skills:       []string{"React", "TypeScript"},
		HourlyRate:   40,
		Availability: models.AvailabilityFullTime,
		Rating:       4.5,
	}
	low, high := 30.0, 60.0

	tests := []struct {
		name string
		c    SearchCriteria
		want bool
	}{
		{"empty", SearchCriteria{}, true},
		{"term on name", SearchCriteria{Term: "an"}, true},
		{"term on skill", SearchCriteria{Term: "script"}, true},
		{"term miss", SearchCriteria{Term: "python"}, false},
		{"skills all present", SearchCriteria{Skills: []string{"react", "TYPESCRIPT"}}, true},
		{"skills one missing", SearchCriteria{Skills: []string{"react", "go"}}, false},
		{"min rating ok", SearchCriteria{MinRating: 4.5}, true},
		{"min rating miss", SearchCriteria{MinRating: 4.6}, false},
		{"max rate ok", SearchCriteria{MaxRate: &high}, true},
		{"max rate miss", SearchCriteria{MaxRate: &low}, false},
		{"availability miss", SearchCriteria{Availability: models.AvailabilityPartTime}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesCriteria(ana, tt.c); got != tt.want {
				t.Fatalf("MatchesCriteria: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestSortProfiles(t *testing.T) {
	profiles := []models.Profile{
		{Name: "Zed", Rating: 4},
		{Name: "Bea", Rating: 5},
		{Name: "Al", Rating: 4},
	}
	SortProfiles(profiles)
	got := []string{profiles[0].Name, profiles[1].Name, profiles[2].Name}
	want := []string{"Bea", "Al", "Zed"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got=%v want=%v", got, want)
		}
	}
}
