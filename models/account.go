package models

import "time"

// Role is the kind of account behind an authenticated request.
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleFreelancer, RoleAdmin:
		return true
	}
	return false
}

// Identity is what the auth middleware puts on the request.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Name string `json:"name"`
}

type Security struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Token        string `bson:"-" json:"token,omitempty"`
	TokenHash    string `bson:"tokenHash" json:"-"`
}

type Account struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"` // Stored lower-cased.
	Role      Role      `bson:"role" json:"role"`
	Security  Security  `bson:"security" json:"security,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Identity returns the request identity for this account.
func (a Account) Identity() Identity {
	return Identity{ID: a.ID, Role: a.Role, Name: a.Name}
}

// AccountRegistration is the signup payload.
type AccountRegistration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required"`
	AdminKey string `json:"adminKey,omitempty"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}
