package project

import (
	"time"

	"freelancehub/models"
)

// Schedule is the derived deadline display for a project or milestone.
type Schedule struct {
	DaysRemaining *int   `json:"daysRemaining,omitempty"`
	DeadlineLabel string `json:"deadlineLabel"`
	Urgency       string `json:"urgency,omitempty"`
}

func newSchedule(deadline *time.Time, now time.Time) Schedule {
	s := Schedule{DeadlineLabel: DeadlineLabel(deadline, now)}
	if deadline != nil && !deadline.IsZero() {
		days := DaysRemaining(*deadline, now)
		s.DaysRemaining = &days
		s.Urgency = Urgency(days)
	}
	return s
}

type MilestoneView struct {
	models.Milestone
	Schedule
}

type ProjectView struct {
	models.Project
	Schedule
	Milestones []MilestoneView `json:"milestones"`
	Progress   int             `json:"progress"`
}

func newMilestoneView(m models.Milestone, now time.Time) MilestoneView {
	due := m.DueDate
	return MilestoneView{Milestone: m, Schedule: newSchedule(&due, now)}
}

// NewProjectView attaches schedule and progress. Milestones replace the
// embedded list in JSON output.
func NewProjectView(p models.Project, now time.Time) ProjectView {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	v := ProjectView{
		Project:    p,
		Schedule:   newSchedule(p.Deadline, now),
		Milestones: make([]MilestoneView, 0, len(p.Milestones)),
		Progress:   Progress(p.Milestones),
	}
	for _, m := range p.Milestones {
		v.Milestones = append(v.Milestones, newMilestoneView(m, now))
	}
	return v
}
