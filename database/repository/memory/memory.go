// Package memoryRepo provides in-process implementations of every repository
// interface. They enforce the same unique and conditional-write rules as the
// MongoDB indexes, so services behave identically against either store.
package memoryRepo

import (
	"sort"
	"time"

	accountRepo "freelancehub/database/repository/account"
	ledgerRepo "freelancehub/database/repository/ledger"
	profileRepo "freelancehub/database/repository/profile"
	projectRepo "freelancehub/database/repository/project"
	"freelancehub/models"
)

var (
	_ accountRepo.AccountRepository = (*AccountRepo)(nil)
	_ profileRepo.ProfileRepository = (*ProfileRepo)(nil)
	_ ledgerRepo.HireRepository     = (*HireRepo)(nil)
	_ ledgerRepo.RatingRepository   = (*RatingRepo)(nil)
	_ projectRepo.ProjectRepository = (*ProjectRepo)(nil)
	_ projectRepo.BidRepository     = (*BidRepo)(nil)
)

// Store bundles one instance of each repository.
type Store struct {
	Accounts *AccountRepo
	Profiles *ProfileRepo
	Hires    *HireRepo
	Ratings  *RatingRepo
	Projects *ProjectRepo
	Bids     *BidRepo
}

// NewStore returns empty repositories.
func NewStore() *Store {
	return &Store{
		Accounts: NewAccountRepo(),
		Profiles: NewProfileRepo(),
		Hires:    NewHireRepo(),
		Ratings:  NewRatingRepo(),
		Projects: NewProjectRepo(),
		Bids:     NewBidRepo(),
	}
}

func now() time.Time { return time.Now().UTC() }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneProfile(p models.Profile) models.Profile {
	p.Skills = cloneStrings(p.Skills)
	p.HiredBy = cloneStrings(p.HiredBy)
	if p.Portfolio != nil {
		p.Portfolio = append([]models.PortfolioItem(nil), p.Portfolio...)
	}
	return p
}

func cloneProject(p models.Project) models.Project {
	p.Skills = cloneStrings(p.Skills)
	if p.Milestones != nil {
		p.Milestones = append([]models.Milestone(nil), p.Milestones...)
	}
	if p.Deadline != nil {
		d := *p.Deadline
		p.Deadline = &d
	}
	return p
}

// newestFirst sorts by createdAt descending, matching the Mongo queries.
func newestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
