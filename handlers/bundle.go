package handlers

import "freelancehub/middleware"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Verifier middleware.TokenVerifier

	Account    *AccountHandler
	Freelancer *FreelancerHandler
	Hiring     *HiringHandler
	Bids       *BidHandler
	Projects   *ProjectHandler
	Storage    *StorageHandler
	Admin      *AdminHandler

	// MaxRequestsPerMin configures the per-IP limiter. Zero disables it.
	MaxRequestsPerMin int
	CORSOrigins       []string
}
