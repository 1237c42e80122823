package profile

import (
	"math"
	"time"

	"freelancehub/models"
)

// UnknownFreelancerName is shown for profiles that never set a name.
const UnknownFreelancerName = "Unknown Freelancer"

// ProfileView is the read shape of a profile. Missing fields are defaulted
// here once, so every caller sees the same schema.
type ProfileView struct {
	FreelancerID string                 `json:"freelancerId"`
	Name         string                 `json:"name"`
	Bio          string                 `json:"bio"`
	Skills       []string               `json:"skills"`
	HourlyRate   float64                `json:"hourlyRate"`
	Availability models.Availability    `json:"availability"`
	Portfolio    []models.PortfolioItem `json:"portfolio"`
	ProfileImage string                 `json:"profileImage"`
	Rating       float64                `json:"rating"` // One decimal, display only.
	RatingCount  int                    `json:"ratingCount"`
	HiredBy      []string               `json:"hiredBy"`
	HireCount    int                    `json:"hireCount"`
	HiredByMe    bool                   `json:"hiredByMe"`
	Completeness int                    `json:"completeness"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// DisplayRating rounds a stored mean to one decimal.
func DisplayRating(mean float64) float64 {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0
	}
	return math.Round(mean*10) / 10
}

// NewProfileView builds the view for viewer. Only the owner sees the full
// hiredBy list.
func NewProfileView(p models.Profile, viewer models.Identity) ProfileView {
	v := ProfileView{
		FreelancerID: p.FreelancerID,
		Name:         p.Name,
		Bio:          p.Bio,
		Skills:       p.Skills,
		HourlyRate:   p.HourlyRate,
		Availability: p.Availability,
		Portfolio:    p.Portfolio,
		ProfileImage: p.ProfileImage,
		Rating:       DisplayRating(p.Rating),
		RatingCount:  p.RatingCount,
		HireCount:    len(p.HiredBy),
		Completeness: Completeness(p),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if v.Name == "" {
		v.Name = UnknownFreelancerName
	}
	if !v.Availability.Valid() {
		v.Availability = models.AvailabilityFullTime
	}
	if v.Skills == nil {
		v.Skills = []string{}
	}
	if v.Portfolio == nil {
		v.Portfolio = []models.PortfolioItem{}
	}
	if v.HourlyRate < 0 || math.IsNaN(v.HourlyRate) {
		v.HourlyRate = 0
	}

	v.HiredBy = []string{}
	if viewer.ID == p.FreelancerID || viewer.Role == models.RoleAdmin {
		v.HiredBy = append(v.HiredBy, p.HiredBy...)
	}
	if viewer.Role == models.RoleClient {
		for _, c := range p.HiredBy {
			if c == viewer.ID {
				v.HiredByMe = true
				break
			}
		}
	}
	return v
}
