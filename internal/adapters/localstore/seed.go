package localstore

import (
	"time"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
)

// SeedRecords is the fixed sample dataset an empty slot is initialized
// with, dated to the given day.
func SeedRecords(now time.Time) []entities.WorkRecord {
	date := now.Format(entities.DateLayout)
	month := date[:7]

	return []entities.WorkRecord{
		{
			ID:            "1",
			DeveloperName: "John Doe",
			Date:          date,
			Month:         month,
			Projects: []entities.ProjectEntry{
				{ID: "p1", ProjectName: "Frontend Revamp", TaskDetails: "Implemented new Tailwind config", WorkingHours: 4},
				{ID: "p2", ProjectName: "API Integration", TaskDetails: "Connected auth endpoints", WorkingHours: 3.5},
			},
			TotalProjects: 2,
			TotalHours:    7.5,
			Notes:         "Blocked on backend migration for user settings.",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "2",
			DeveloperName: "Jane Smith",
			Date:          date,
			Month:         month,
			Projects: []entities.ProjectEntry{
				{ID: "p3", ProjectName: "Database Migration", TaskDetails: "Schema updates", WorkingHours: 6},
			},
			TotalProjects: 1,
			TotalHours:    6,
			Notes:         "",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
