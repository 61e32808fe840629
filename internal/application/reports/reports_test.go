package reports_test

import (
	"math"
	"testing"

	"github.com/JayDev810/working-project-list/internal/application/reports"
	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/ports"
)

func record(id, developer, date string, hours float64) entities.WorkRecord {
	return entities.WorkRecord{
		ID:            id,
		DeveloperName: developer,
		Date:          date,
		Month:         date[:7],
		Projects: []entities.ProjectEntry{
			{ID: id + "-p1", ProjectName: "Proj", TaskDetails: "Work", WorkingHours: hours},
		},
		TotalProjects: 1,
		TotalHours:    hours,
	}
}

func TestMemberView(t *testing.T) {
	records := []entities.WorkRecord{
		record("1", "Ada", "2026-07-15", 6),
		record("2", "Ada", "2026-08-02", 7),
		record("3", "Ada", "2026-08-20", 5),
		record("4", "Grace", "2026-08-20", 8),
	}

	got := reports.MemberView(records, "Ada", "2026-08")

	if len(got) != 2 {
		t.Fatalf("member view = %d records, want 2", len(got))
	}
	if got[0].ID != "3" || got[1].ID != "2" {
		t.Errorf("order = [%s %s], want date descending [3 2]", got[0].ID, got[1].ID)
	}
	for _, r := range got {
		if r.Month != "2026-08" || r.DeveloperName != "Ada" {
			t.Errorf("unexpected record in member view: %+v", r)
		}
	}
}

func TestAdminView(t *testing.T) {
	records := []entities.WorkRecord{
		record("1", "Ada", "2026-07-15", 6),
		record("2", "Grace", "2026-08-02", 7),
		record("3", "Linus", "2026-08-20", 5),
	}

	tests := []struct {
		name    string
		filter  ports.RecordFilter
		wantIDs []string
	}{
		{"no restriction", ports.RecordFilter{}, []string{"3", "2", "1"}},
		{"month only", ports.RecordFilter{Month: "2026-08"}, []string{"3", "2"}},
		{"developer set", ports.RecordFilter{Developers: []string{"Ada", "Linus"}}, []string{"3", "1"}},
		{"month and developers", ports.RecordFilter{Month: "2026-08", Developers: []string{"Grace"}}, []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reports.AdminView(records, tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	records := []entities.WorkRecord{
		record("1", "Ada", "2026-08-02", 6),
		record("2", "Grace", "2026-08-02", 4),
		record("3", "Ada", "2026-08-03", 8),
	}

	stats := reports.Summarize(records)

	if stats.RecordCount != 3 {
		t.Errorf("record count = %d, want 3", stats.RecordCount)
	}
	if stats.TotalHours != 18 {
		t.Errorf("total hours = %v, want 18", stats.TotalHours)
	}
	if stats.ActiveDevs != 2 {
		t.Errorf("active devs = %d, want 2", stats.ActiveDevs)
	}
	// Two distinct dates: 18 / 2.
	if math.Abs(stats.AvgHoursPerDay-9) > 1e-9 {
		t.Errorf("avg hours per day = %v, want 9", stats.AvgHoursPerDay)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	stats := reports.Summarize(nil)
	if stats.AvgHoursPerDay != 0 {
		t.Errorf("avg hours per day on empty set = %v, want 0", stats.AvgHoursPerDay)
	}
	if stats.RecordCount != 0 || stats.TotalHours != 0 || stats.ActiveDevs != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}
}

func TestDevelopers(t *testing.T) {
	records := []entities.WorkRecord{
		record("1", "Grace", "2026-08-02", 6),
		record("2", "Ada", "2026-08-03", 4),
		record("3", "Grace", "2026-08-04", 8),
	}

	got := reports.Developers(records)
	want := []string{"Ada", "Grace"}
	if len(got) != len(want) {
		t.Fatalf("developers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("developers = %v, want %v", got, want)
			break
		}
	}
}
