package entities

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrRecordNotFound    = errors.New("work record not found")
	ErrDuplicateDate     = errors.New("a record for this developer and date already exists")
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrEmptyDeveloper    = errors.New("developer name is required")
	ErrNoActiveProjects  = errors.New("at least one active project entry is required")
	ErrTooManyProjects   = errors.New("a record holds at most four project entries")
	ErrIncompleteProject = errors.New("active project entries need a name, details and positive hours")
	ErrNegativeHours     = errors.New("working hours cannot be negative")
	ErrNotConfigured     = errors.New("cloud store is not configured")
	ErrSchemaMissing     = errors.New("work_records table does not exist; run the schema migrations")
	ErrChannelError      = errors.New("change notification channel unavailable")
)

// MaxProjectEntries caps the number of project entries per record.
const MaxProjectEntries = 4

// DateLayout is the calendar-day format used throughout ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// User is an ephemeral session identity. It is never persisted; the role is
// a convenience gate resolved from the configured admin name, not an
// authorization boundary.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// NewUser builds a session user, granting the admin role only on an exact
// name match.
func NewUser(name, adminName string) User {
	if name == adminName {
		return User{ID: "admin", Name: name, Role: RoleAdmin}
	}
	return User{ID: uuid.NewString(), Name: name, Role: RoleMember}
}

// ProjectEntry is one task slice within a day's record.
type ProjectEntry struct {
	ID           string  `json:"id"`
	ProjectName  string  `json:"projectName"`
	TaskDetails  string  `json:"taskDetails"`
	WorkingHours float64 `json:"workingHours"`
}

// IsActive reports whether the entry carries real work and is eligible for
// persistence. Entirely blank rows are form placeholders.
func (p ProjectEntry) IsActive() bool {
	return p.ProjectName != "" || p.TaskDetails != "" || p.WorkingHours > 0
}

// WorkRecord is one contributor's log for one calendar day.
//
// Month, TotalProjects and TotalHours are denormalized and must only be set
// through NewWorkRecord; they always satisfy Month == Date[:7],
// TotalProjects == len(Projects) and TotalHours == sum of project hours.
type WorkRecord struct {
	ID            string         `json:"id"`
	DeveloperName string         `json:"developerName"`
	Date          string         `json:"date"`
	Month         string         `json:"month"`
	Projects      []ProjectEntry `json:"projects"`
	TotalProjects int            `json:"totalProjects"`
	TotalHours    float64        `json:"totalHours"`
	Notes         string         `json:"notes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// TotalHours sums the working hours of the given entries, treating
// non-finite values as zero.
func TotalHours(projects []ProjectEntry) float64 {
	sum := 0.0
	for _, p := range projects {
		h := p.WorkingHours
		if math.IsNaN(h) || math.IsInf(h, 0) {
			continue
		}
		sum += h
	}
	return sum
}

// NewWorkRecord is the single validated write path for records. It drops
// inactive placeholder entries, rejects incomplete or out-of-range input and
// derives Month, TotalProjects and TotalHours. An empty id means a new
// record and gets a fresh UUID; timestamps are left for the store to stamp.
func NewWorkRecord(id, developerName, date string, projects []ProjectEntry, notes string) (*WorkRecord, error) {
	if developerName == "" {
		return nil, ErrEmptyDeveloper
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if len(projects) > MaxProjectEntries {
		return nil, ErrTooManyProjects
	}

	active := make([]ProjectEntry, 0, len(projects))
	for _, p := range projects {
		if !p.IsActive() {
			continue
		}
		if p.WorkingHours < 0 {
			return nil, ErrNegativeHours
		}
		if p.ProjectName == "" || p.TaskDetails == "" || p.WorkingHours <= 0 {
			return nil, ErrIncompleteProject
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		active = append(active, p)
	}
	if len(active) == 0 {
		return nil, ErrNoActiveProjects
	}

	if id == "" {
		id = uuid.NewString()
	}

	return &WorkRecord{
		ID:            id,
		DeveloperName: developerName,
		Date:          date,
		Month:         date[:7],
		Projects:      active,
		TotalProjects: len(active),
		TotalHours:    TotalHours(active),
		Notes:         notes,
	}, nil
}

// Validate re-checks the derived-field invariants on an already built
// record, e.g. one decoded from the cloud store.
func (r *WorkRecord) Validate() error {
	if r.DeveloperName == "" {
		return ErrEmptyDeveloper
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, r.Date)
	}
	if r.Month != r.Date[:7] {
		return fmt.Errorf("month %q does not match date %q", r.Month, r.Date)
	}
	if r.TotalProjects != len(r.Projects) {
		return fmt.Errorf("total projects %d does not match %d stored entries", r.TotalProjects, len(r.Projects))
	}
	if diff := math.Abs(r.TotalHours - TotalHours(r.Projects)); diff > 1e-9 {
		return fmt.Errorf("total hours %.4f does not match sum of project hours", r.TotalHours)
	}
	return nil
}
