// Package reports holds the pure aggregation and filtering functions the
// dashboards compute over an in-memory record collection.
package reports

import (
	"sort"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/ports"
)

// Stats summarizes a filtered record set for the admin dashboard.
type Stats struct {
	RecordCount    int     `json:"recordCount"`
	TotalHours     float64 `json:"totalHours"`
	ActiveDevs     int     `json:"activeDevs"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`
}

// MemberView selects one contributor's records for a month, most recent
// day first. Ties keep their original order.
func MemberView(records []entities.WorkRecord, developerName, month string) []entities.WorkRecord {
	out := make([]entities.WorkRecord, 0)
	for _, r := range records {
		if r.DeveloperName == developerName && r.Month == month {
			out = append(out, r)
		}
	}
	sortByDateDesc(out)
	return out
}

// AdminView selects records matching the filter: an empty month means all
// time, an empty developer set means every contributor.
func AdminView(records []entities.WorkRecord, filter ports.RecordFilter) []entities.WorkRecord {
	devs := make(map[string]struct{}, len(filter.Developers))
	for _, d := range filter.Developers {
		devs[d] = struct{}{}
	}

	out := make([]entities.WorkRecord, 0)
	for _, r := range records {
		if filter.Month != "" && r.Month != filter.Month {
			continue
		}
		if len(devs) > 0 {
			if _, ok := devs[r.DeveloperName]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	sortByDateDesc(out)
	return out
}

// Developers returns the distinct contributor names, sorted.
func Developers(records []entities.WorkRecord) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.DeveloperName]; !ok {
			seen[r.DeveloperName] = struct{}{}
			names = append(names, r.DeveloperName)
		}
	}
	sort.Strings(names)
	return names
}

// Summarize computes the admin dashboard statistics over an already
// filtered set. The per-day average is zero when no dates are present.
func Summarize(records []entities.WorkRecord) Stats {
	total := 0.0
	devs := make(map[string]struct{})
	days := make(map[string]struct{})
	for _, r := range records {
		total += r.TotalHours
		devs[r.DeveloperName] = struct{}{}
		days[r.Date] = struct{}{}
	}

	avg := 0.0
	if len(days) > 0 {
		avg = total / float64(len(days))
	}

	return Stats{
		RecordCount:    len(records),
		TotalHours:     total,
		ActiveDevs:     len(devs),
		AvgHoursPerDay: avg,
	}
}

func sortByDateDesc(records []entities.WorkRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
}
