package models

import "time"

// HireRecord marks that a client hired a freelancer. Unique per pair.
type HireRecord struct {
	ID           string    `bson:"id" json:"id"`
	ClientID     string    `bson:"clientId" json:"clientId"`
	ClientName   string    `bson:"clientName" json:"clientName"`
	FreelancerID string    `bson:"freelancerId" json:"freelancerId"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Rating is one client's review of a freelancer. Unique per pair.
type Rating struct {
	ID           string    `bson:"id" json:"id"`
	ClientID     string    `bson:"clientId" json:"clientId"`
	ClientName   string    `bson:"clientName" json:"clientName"`
	FreelancerID string    `bson:"freelancerId" json:"freelancerId"`
	Value        float64   `bson:"value" json:"value"` // In [1,5].
	Comment      string    `bson:"comment" json:"comment"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
