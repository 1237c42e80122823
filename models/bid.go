package models

import "time"

type BidStatus string

const (
	BidPending   BidStatus = "pending"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
)

// Terminal reports whether no further transition is possible.
func (s BidStatus) Terminal() bool {
	return s == BidAccepted || s == BidRejected || s == BidWithdrawn
}

type BidEvent string

const (
	BidEventAccept   BidEvent = "accept"
	BidEventReject   BidEvent = "reject"
	BidEventWithdraw BidEvent = "withdraw"
)

// Actor is the role allowed to fire the event.
func (e BidEvent) Actor() Role {
	if e == BidEventWithdraw {
		return RoleFreelancer
	}
	return RoleClient
}

var bidTransitions = map[BidStatus]map[BidEvent]BidStatus{
	BidPending: {
		BidEventAccept:   BidAccepted,
		BidEventReject:   BidRejected,
		BidEventWithdraw: BidWithdrawn,
	},
}

// NextBidStatus looks up the transition table. ok is false for any event on a
// terminal bid.
func NextBidStatus(from BidStatus, ev BidEvent) (BidStatus, bool) {
	to, ok := bidTransitions[from][ev]
	return to, ok
}

type Bid struct {
	ID                    string    `bson:"id" json:"id"`
	ProjectID             string    `bson:"projectId" json:"projectId"`
	ProjectTitle          string    `bson:"projectTitle" json:"projectTitle"`
	FreelancerID          string    `bson:"freelancerId" json:"freelancerId"`
	FreelancerName        string    `bson:"freelancerName" json:"freelancerName"`
	Amount                float64   `bson:"amount" json:"amount"`
	EstimatedDeliveryDays int       `bson:"estimatedDeliveryDays" json:"estimatedDeliveryDays"`
	Proposal              string    `bson:"proposal" json:"proposal"`
	Status                BidStatus `bson:"status" json:"status"`
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BidTerms are the freelancer-editable parts of a pending bid.
type BidTerms struct {
	Amount                float64 `bson:"amount" json:"amount"`
	EstimatedDeliveryDays int     `bson:"estimatedDeliveryDays" json:"estimatedDeliveryDays"`
	Proposal              string  `bson:"proposal" json:"proposal"`
}
