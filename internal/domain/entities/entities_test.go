package entities_test

import (
	"errors"
	"testing"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
)

func TestNewWorkRecordDerivedFields(t *testing.T) {
	projects := []entities.ProjectEntry{
		{ProjectName: "Frontend", TaskDetails: "Navbar rework", WorkingHours: 4},
		{ProjectName: "API", TaskDetails: "Auth endpoints", WorkingHours: 3.5},
		{}, // blank placeholder row, must be dropped
	}

	record, err := entities.NewWorkRecord("", "John Doe", "2026-08-31", projects, "notes")
	if err != nil {
		t.Fatalf("NewWorkRecord: %v", err)
	}

	if record.ID == "" {
		t.Error("expected a generated id")
	}
	if record.Month != "2026-08" {
		t.Errorf("month = %q, want %q", record.Month, "2026-08")
	}
	if record.TotalProjects != 2 {
		t.Errorf("total projects = %d, want 2", record.TotalProjects)
	}
	if record.TotalHours != 7.5 {
		t.Errorf("total hours = %v, want 7.5", record.TotalHours)
	}
	if len(record.Projects) != 2 {
		t.Fatalf("stored projects = %d, want 2", len(record.Projects))
	}
	for _, p := range record.Projects {
		if p.ID == "" {
			t.Error("expected generated project entry ids")
		}
	}
	if err := record.Validate(); err != nil {
		t.Errorf("Validate after construction: %v", err)
	}
}

func TestNewWorkRecordRejections(t *testing.T) {
	ok := []entities.ProjectEntry{{ProjectName: "P", TaskDetails: "D", WorkingHours: 1}}

	tests := []struct {
		name      string
		developer string
		date      string
		projects  []entities.ProjectEntry
		wantErr   error
	}{
		{"empty developer", "", "2026-08-31", ok, entities.ErrEmptyDeveloper},
		{"bad date", "Dev", "31-08-2026", ok, entities.ErrInvalidDate},
		{"no active projects", "Dev", "2026-08-31", []entities.ProjectEntry{{}}, entities.ErrNoActiveProjects},
		{"too many projects", "Dev", "2026-08-31", make([]entities.ProjectEntry, 5), entities.ErrTooManyProjects},
		{"negative hours", "Dev", "2026-08-31", []entities.ProjectEntry{{ProjectName: "P", TaskDetails: "D", WorkingHours: -1}}, entities.ErrNegativeHours},
		{"missing details", "Dev", "2026-08-31", []entities.ProjectEntry{{ProjectName: "P", WorkingHours: 2}}, entities.ErrIncompleteProject},
		{"zero hours on active row", "Dev", "2026-08-31", []entities.ProjectEntry{{ProjectName: "P", TaskDetails: "D"}}, entities.ErrIncompleteProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entities.NewWorkRecord("", tt.developer, tt.date, tt.projects, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTotalHours(t *testing.T) {
	projects := []entities.ProjectEntry{
		{WorkingHours: 4},
		{WorkingHours: 3.5},
		{WorkingHours: 0},
	}
	if got := entities.TotalHours(projects); got != 7.5 {
		t.Errorf("TotalHours = %v, want 7.5", got)
	}
	if got := entities.TotalHours(nil); got != 0 {
		t.Errorf("TotalHours(nil) = %v, want 0", got)
	}
}

func TestProjectEntryIsActive(t *testing.T) {
	tests := []struct {
		name  string
		entry entities.ProjectEntry
		want  bool
	}{
		{"blank", entities.ProjectEntry{}, false},
		{"name only", entities.ProjectEntry{ProjectName: "P"}, true},
		{"details only", entities.ProjectEntry{TaskDetails: "D"}, true},
		{"hours only", entities.ProjectEntry{WorkingHours: 0.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.IsActive(); got != tt.want {
				t.Errorf("IsActive = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserRole(t *testing.T) {
	admin := entities.NewUser("Admin Jay", "Admin Jay")
	if admin.Role != entities.RoleAdmin {
		t.Errorf("role = %q, want admin", admin.Role)
	}
	if admin.ID != "admin" {
		t.Errorf("admin id = %q, want %q", admin.ID, "admin")
	}

	member := entities.NewUser("admin jay", "Admin Jay") // case matters
	if member.Role != entities.RoleMember {
		t.Errorf("role = %q, want member", member.Role)
	}
	if member.ID == "" || member.ID == "admin" {
		t.Errorf("member id = %q, want generated", member.ID)
	}
}

func TestValidateCatchesDrift(t *testing.T) {
	record, err := entities.NewWorkRecord("", "Dev", "2026-08-31", []entities.ProjectEntry{
		{ProjectName: "P", TaskDetails: "D", WorkingHours: 2},
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	record.TotalHours = 99
	if err := record.Validate(); err == nil {
		t.Error("expected Validate to reject drifted total hours")
	}

	record.TotalHours = 2
	record.Month = "2026-07"
	if err := record.Validate(); err == nil {
		t.Error("expected Validate to reject month/date mismatch")
	}
}
