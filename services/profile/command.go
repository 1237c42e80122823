package profile

import (
	"math"
	"net/url"
	"strings"

	"freelancehub/models"
	"freelancehub/services/errs"

	"github.com/google/uuid"
)

// PortfolioItemInput is one portfolio entry as submitted. An empty ID gets a
// fresh one.
type PortfolioItemInput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
}

// UpdateProfileCommand is a patch: nil fields are left unchanged.
type UpdateProfileCommand struct {
	Name         *string               `json:"name"`
	Bio          *string               `json:"bio"`
	Skills       *[]string             `json:"skills"`
	HourlyRate   *float64              `json:"hourlyRate"`
	Availability *models.Availability  `json:"availability"`
	Portfolio    *[]PortfolioItemInput `json:"portfolio"`
	ProfileImage *string               `json:"profileImage"`
}

// Apply validates the command and returns the resulting details.
func (cmd UpdateProfileCommand) Apply(current models.ProfileDetails) (models.ProfileDetails, error) {
	const op = "UpdateProfile"
	next := current

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return current, errs.Validation(op, "name cannot be empty")
		}
		next.Name = name
	}
	if cmd.Bio != nil {
		next.Bio = strings.TrimSpace(*cmd.Bio)
	}
	if cmd.Skills != nil {
		next.Skills = NormalizeSkills(*cmd.Skills)
	}
	if cmd.HourlyRate != nil {
		rate := *cmd.HourlyRate
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
			return current, errs.Validation(op, "hourlyRate must be a non-negative number")
		}
		next.HourlyRate = rate
	}
	if cmd.Availability != nil {
		if !cmd.Availability.Valid() {
			return current, errs.Validation(op, "availability must be %q or %q", models.AvailabilityFullTime, models.AvailabilityPartTime)
		}
		next.Availability = *cmd.Availability
	}
	if cmd.Portfolio != nil {
		items, err := buildPortfolio(*cmd.Portfolio)
		if err != nil {
			return current, err
		}
		next.Portfolio = items
	}
	if cmd.ProfileImage != nil {
		img := strings.TrimSpace(*cmd.ProfileImage)
		if img != "" && !validURL(img) {
			return current, errs.Validation(op, "profileImage must be an http(s) URL")
		}
		next.ProfileImage = img
	}
	return next, nil
}

// NormalizeSkills trims, drops blanks and removes case-insensitive
// duplicates, keeping the first spelling seen.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func buildPortfolio(in []PortfolioItemInput) ([]models.PortfolioItem, error) {
	const op = "UpdateProfile"
	out := make([]models.PortfolioItem, 0, len(in))
	for i, item := range in {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			return nil, errs.Validation(op, "portfolio item %d needs a title", i+1)
		}
		link := strings.TrimSpace(item.URL)
		if !validURL(link) {
			return nil, errs.Validation(op, "portfolio item %q needs a valid http(s) url", title)
		}
		image := strings.TrimSpace(item.Image)
		if image != "" && !validURL(image) {
			return nil, errs.Validation(op, "portfolio item %q has an invalid image url", title)
		}
		id := item.ID
		if id == "" {
			id = uuid.New().String()
		}
		out = append(out, models.PortfolioItem{
			ID:          id,
			Title:       title,
			Description: strings.TrimSpace(item.Description),
			URL:         link,
			Image:       image,
		})
	}
	return out, nil
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
