package project

import (
	"fmt"
	"math"
	"time"

	"freelancehub/models"
)

const (
	LabelNoDeadline     = "No deadline"
	LabelDeadlinePassed = "Deadline passed"
)

// Urgency bands for a deadline.
const (
	UrgencyComfortable = "comfortable"
	UrgencyApproaching = "approaching"
	UrgencyUrgent      = "urgent"
)

// DaysRemaining is ceil((deadline - now) / 24h). Zero or less means passed.
func DaysRemaining(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

// DeadlineLabel renders the remaining time for display.
func DeadlineLabel(deadline *time.Time, now time.Time) string {
	if deadline == nil || deadline.IsZero() {
		return LabelNoDeadline
	}
	days := DaysRemaining(*deadline, now)
	if days <= 0 {
		return LabelDeadlinePassed
	}
	return fmt.Sprintf("%d days remaining", days)
}

// Urgency classifies days remaining: more than a week is comfortable, more
// than three days is approaching, anything else is urgent.
func Urgency(days int) string {
	switch {
	case days > 7:
		return UrgencyComfortable
	case days > 3:
		return UrgencyApproaching
	default:
		return UrgencyUrgent
	}
}

// Progress is the rounded percentage of completed milestones.
func Progress(milestones []models.Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range milestones {
		if m.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) * 100 / float64(len(milestones))))
}
