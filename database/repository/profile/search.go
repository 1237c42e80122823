package profileRepo

import (
	"regexp"
	"sort"
	"strings"

	"freelancehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildSearchFilter translates criteria into a MongoDB filter.
func BuildSearchFilter(c SearchCriteria) bson.M {
	filter := bson.M{}

	if term := strings.TrimSpace(c.Term); term != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"skills": re},
		}
	}
	if skills := normalizeSkills(c.Skills); len(skills) > 0 {
		all := make(bson.A, 0, len(skills))
		for _, s := range skills {
			all = append(all, primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"})
		}
		filter["skills"] = bson.M{"$all": all}
	}
	if c.MinRating > 0 {
		filter["rating"] = bson.M{"$gte": c.MinRating}
	}
	if c.MaxRate != nil {
		filter["hourlyRate"] = bson.M{"$lte": *c.MaxRate}
	}
	if c.Availability != "" {
		filter["availability"] = c.Availability
	}
	return filter
}

// MatchesCriteria applies the same rules as BuildSearchFilter to a profile in
// memory.
func MatchesCriteria(p models.Profile, c SearchCriteria) bool {
	if term := strings.ToLower(strings.TrimSpace(c.Term)); term != "" {
		hit := strings.Contains(strings.ToLower(p.Name), term)
		for _, s := range p.Skills {
			if hit {
				break
			}
			hit = strings.Contains(strings.ToLower(s), term)
		}
		if !hit {
			return false
		}
	}
	for _, want := range normalizeSkills(c.Skills) {
		found := false
		for _, have := range p.Skills {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.MinRating > 0 && p.Rating < c.MinRating {
		return false
	}
	if c.MaxRate != nil && p.HourlyRate > *c.MaxRate {
		return false
	}
	if c.Availability != "" && p.Availability != c.Availability {
		return false
	}
	return true
}

// SortProfiles orders by rating descending, then name ascending.
func SortProfiles(profiles []models.Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].Rating != profiles[j].Rating {
			return profiles[i].Rating > profiles[j].Rating
		}
		return profiles[i].Name < profiles[j].Name
	})
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
