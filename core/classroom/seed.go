package classroom

import "time"

// SeedAssignments returns the demo Assignments, due dates relative to now.
func SeedAssignments(now time.Time) []Assignment {
	return []Assignment{
		{
			ID:          "1",
			Title:       "Math Chapter 5 Problems",
			Description: "Complete problems 1-20 from Chapter 5. Show all your work!",
			Subject:     "Mathematics",
			DueDate:     now.Add(7 * day),
			CreatedBy:   "Ms. Johnson",
			Status:      StatusPending,
		},
		{
			ID:          "2",
			Title:       "Science Fair Project Proposal",
			Description: "Submit your science fair project proposal including hypothesis and methodology.",
			Subject:     "Science",
			DueDate:     now.Add(14 * day),
			CreatedBy:   "Mr. Smith",
			Status:      StatusPending,
		},
	}
}

// SeedAnnouncements returns the demo Announcements.
func SeedAnnouncements(now time.Time) []Announcement {
	return []Announcement{
		{
			ID:    "1",
			Title: "Welcome to Our Classroom! 🎉",
			Message: "Welcome to our digital classroom! Here you'll find all your assignments, announcements, " +
				"and can track your progress. Don't hesitate to ask questions!",
			CreatedAt: now,
			CreatedBy: "Ms. Johnson",
			Pinned:    true,
		},
		{
			ID:        "2",
			Title:     "Field Trip Reminder",
			Message:   "Don't forget about our science museum field trip next Friday! Please bring your permission slips.",
			CreatedAt: now.Add(-2 * day),
			CreatedBy: "Mr. Smith",
			Pinned:    false,
		},
	}
}

// Subjects suggested to front ends; Assignment.Subject is not restricted to them.
var Subjects = []string{
	"Mathematics",
	"Science",
	"English",
	"History",
	"Geography",
	"Art",
	"Music",
	"Physical Education",
	"Computer Science",
	"Other",
}
