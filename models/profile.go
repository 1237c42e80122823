package models

import "time"

type Availability string

const (
	AvailabilityFullTime Availability = "full-time"
	AvailabilityPartTime Availability = "part-time"
)

func (a Availability) Valid() bool {
	return a == AvailabilityFullTime || a == AvailabilityPartTime
}

type PortfolioItem struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	URL         string `bson:"url" json:"url"`
	Image       string `bson:"image" json:"image"` // Uploaded image URL.
}

// Profile is one freelancer's public record. Rating, RatingCount and HiredBy
// are derived from the ledgers and only written by the hiring service.
type Profile struct {
	FreelancerID string          `bson:"freelancerId" json:"freelancerId"`
	Name         string          `bson:"name" json:"name"`
	Bio          string          `bson:"bio" json:"bio"`
	Skills       []string        `bson:"skills" json:"skills"`
	HourlyRate   float64         `bson:"hourlyRate" json:"hourlyRate"`
	Availability Availability    `bson:"availability" json:"availability"`
	Portfolio    []PortfolioItem `bson:"portfolio" json:"portfolio"`
	ProfileImage string          `bson:"profileImage" json:"profileImage"`
	Rating       float64         `bson:"rating" json:"rating"`
	RatingCount  int             `bson:"ratingCount" json:"ratingCount"`
	HiredBy      []string        `bson:"hiredBy" json:"hiredBy"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// ProfileDetails is the owner-editable part of a profile.
type ProfileDetails struct {
	Name         string          `bson:"name"`
	Bio          string          `bson:"bio"`
	Skills       []string        `bson:"skills"`
	HourlyRate   float64         `bson:"hourlyRate"`
	Availability Availability    `bson:"availability"`
	Portfolio    []PortfolioItem `bson:"portfolio"`
	ProfileImage string          `bson:"profileImage"`
}

// Details extracts the editable fields.
func (p Profile) Details() ProfileDetails {
	return ProfileDetails{
		Name:         p.Name,
		Bio:          p.Bio,
		Skills:       p.Skills,
		HourlyRate:   p.HourlyRate,
		Availability: p.Availability,
		Portfolio:    p.Portfolio,
		ProfileImage: p.ProfileImage,
	}
}

// RatingAggregate is the mean over a freelancer's rating ledger.
type RatingAggregate struct {
	Mean  float64 `bson:"mean" json:"mean"`
	Count int     `bson:"count" json:"count"`
}
