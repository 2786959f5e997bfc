// internal/app/store/activities/seed.go
package activitystore

import "github.com/dalemusser/activityhub/internal/domain/models"

// DefaultActivities is the catalogue a fresh backend starts with.
func DefaultActivities() []models.Activity {
	return []models.Activity{
		// Sports
		{
			Name:            "Soccer",
			Category:        "sports",
			Description:     "Outdoor team sport. Practice on Tuesdays and Thursdays.",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 22,
		},
		{
			Name:            "Basketball",
			Category:        "sports",
			Description:     "Indoor court, competitive team practices and games.",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
		},
		{
			Name:            "Swimming",
			Category:        "sports",
			Description:     "Swim team with lap training and meets.",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
		},
		// Artistic
		{
			Name:            "Drama Club",
			Category:        "artistic",
			Description:     "Acting, stagecraft, and seasonal productions.",
			Schedule:        "Wednesdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 30,
		},
		{
			Name:            "Choir",
			Category:        "artistic",
			Description:     "Vocal ensemble rehearsals and performances.",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 50,
		},
		{
			Name:            "Painting",
			Category:        "artistic",
			Description:     "Open-studio painting sessions and exhibitions.",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 25,
		},
		// Intellectual
		{
			Name:            "Chess Club",
			Category:        "intellectual",
			Description:     "Weekly meetings, puzzles, and interschool matches.",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 30,
		},
		{
			Name:            "Debate Team",
			Category:        "intellectual",
			Description:     "Competitive debate practice and tournaments.",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 24,
		},
		{
			Name:            "Robotics Club",
			Category:        "intellectual",
			Description:     "Design and build robots for regional competitions.",
			Schedule:        "Saturdays, 10:00 AM - 1:00 PM",
			MaxParticipants: 18,
		},
	}
}
