package profile

import (
	"strings"

	"freelancehub/models"
)

const (
	weightSkills     = 30
	weightPortfolio  = 30
	weightBio        = 20
	weightHourlyRate = 20
)

// Completeness scores how filled-in a profile is, in [0,100]. It is derived
// on every read and never stored.
func Completeness(p models.Profile) int {
	score := 0
	if len(p.Skills) > 0 {
		score += weightSkills
	}
	if len(p.Portfolio) > 0 {
		score += weightPortfolio
	}
	if strings.TrimSpace(p.Bio) != "" {
		score += weightBio
	}
	if p.HourlyRate > 0 {
		score += weightHourlyRate
	}
	if score > 100 {
		score = 100
	}
	return score
}
