package models

import "time"

type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectOpen, ProjectInProgress, ProjectCompleted:
		return true
	}
	return false
}

type Milestone struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	DueDate     time.Time `bson:"dueDate" json:"dueDate"`
	Completed   bool      `bson:"completed" json:"completed"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

type Project struct {
	ID            string        `bson:"id" json:"id"`
	ClientID      string        `bson:"clientId" json:"clientId"`
	ClientName    string        `bson:"clientName" json:"clientName"`
	Title         string        `bson:"title" json:"title"`
	Description   string        `bson:"description" json:"description"`
	Skills        []string      `bson:"skills" json:"skills"`
	Budget        float64       `bson:"budget" json:"budget"`
	Deadline      *time.Time    `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Status        ProjectStatus `bson:"status" json:"status"`
	FreelancerID  string        `bson:"freelancerId,omitempty" json:"freelancerId,omitempty"` // Set when a bid is accepted.
	AcceptedBidID string        `bson:"acceptedBidId,omitempty" json:"acceptedBidId,omitempty"`
	Milestones    []Milestone   `bson:"milestones" json:"milestones"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Milestone returns the milestone with the given id.
func (p *Project) Milestone(id string) (Milestone, bool) {
	for _, m := range p.Milestones {
		if m.ID == id {
			return m, true
		}
	}
	return Milestone{}, false
}

// IsParticipant reports whether the identity is the owning client or the
// assigned freelancer.
func (p *Project) IsParticipant(id Identity) bool {
	switch id.Role {
	case RoleClient:
		return id.ID == p.ClientID
	case RoleFreelancer:
		return p.FreelancerID != "" && id.ID == p.FreelancerID
	}
	return false
}
