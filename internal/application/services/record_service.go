package services

import (
	"context"
	"fmt"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
	"github.com/JayDev810/working-project-list/internal/ports"
)

// SaveRecordRequest carries a full record submission. Every save submits
// the complete entity; there are no partial patches.
type SaveRecordRequest struct {
	ID            string              `json:"id"`
	DeveloperName string              `json:"developerName" validate:"required"`
	Date          string              `json:"date" validate:"required"`
	Projects      []ProjectEntryInput `json:"projects" validate:"required,min=1,max=4,dive"`
	Notes         string              `json:"notes"`
}

// ProjectEntryInput is one submitted project row; blank placeholder rows
// are accepted and dropped by the domain constructor.
type ProjectEntryInput struct {
	ID           string  `json:"id"`
	ProjectName  string  `json:"projectName"`
	TaskDetails  string  `json:"taskDetails"`
	WorkingHours float64 `json:"workingHours" validate:"min=0"`
}

// RecordService is the write path over the active record store. It owns
// the duplicate-date rule: one record per contributor per day.
type RecordService struct {
	store  ports.RecordStore
	logger *logger.Logger
}

// NewRecordService creates a new record service
func NewRecordService(store ports.RecordStore, log *logger.Logger) *RecordService {
	return &RecordService{
		store:  store,
		logger: log.WithComponent("records"),
	}
}

// ListRecords returns the current collection.
func (s *RecordService) ListRecords(ctx context.Context) ([]entities.WorkRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// SaveRecord validates and persists a submission as a full-record
// replacement. It rejects a date already logged by the same developer,
// both on create and when an edit moves a record onto another existing
// day of that developer.
func (s *RecordService) SaveRecord(ctx context.Context, req SaveRecordRequest) (*entities.WorkRecord, error) {
	projects := make([]entities.ProjectEntry, 0, len(req.Projects))
	for _, p := range req.Projects {
		projects = append(projects, entities.ProjectEntry{
			ID:           p.ID,
			ProjectName:  p.ProjectName,
			TaskDetails:  p.TaskDetails,
			WorkingHours: p.WorkingHours,
		})
	}

	record, err := entities.NewWorkRecord(req.ID, req.DeveloperName, req.Date, projects, req.Notes)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing records: %w", err)
	}
	for _, r := range existing {
		if r.ID == record.ID {
			// An edit keeps the first save's creation time.
			record.CreatedAt = r.CreatedAt
			continue
		}
		if r.DeveloperName == record.DeveloperName && r.Date == record.Date {
			return nil, fmt.Errorf("%w: %s on %s", entities.ErrDuplicateDate, record.DeveloperName, record.Date)
		}
	}

	if err := s.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	s.logger.Infow("Record saved", "record_id", record.ID, "developer", record.DeveloperName, "date", record.Date)
	return record, nil
}

// DeleteRecord removes a record by id. Deleting an absent id succeeds.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	s.logger.Infow("Record deleted", "record_id", id)
	return nil
}
