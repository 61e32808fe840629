package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayDev810/working-project-list/internal/application/services"
	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
)

// fakeStore is an in-memory RecordStore preserving insertion order.
type fakeStore struct {
	records []entities.WorkRecord
}

func (f *fakeStore) List(ctx context.Context) ([]entities.WorkRecord, error) {
	out := make([]entities.WorkRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeStore) Save(ctx context.Context, record *entities.WorkRecord) error {
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	for i := range f.records {
		if f.records[i].ID == record.ID {
			f.records[i] = *record
			return nil
		}
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func saveReq(id, developer, date string) services.SaveRecordRequest {
	return services.SaveRecordRequest{
		ID:            id,
		DeveloperName: developer,
		Date:          date,
		Projects: []services.ProjectEntryInput{
			{ProjectName: "Proj", TaskDetails: "Work", WorkingHours: 3},
		},
	}
}

func TestSaveRecordCreatesWithDerivedFields(t *testing.T) {
	store := &fakeStore{}
	svc := services.NewRecordService(store, logger.NewNop())

	record, err := svc.SaveRecord(context.Background(), saveReq("", "Ada", "2026-08-30"))
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "2026-08", record.Month)
	assert.Equal(t, 1, record.TotalProjects)
	assert.Equal(t, 3.0, record.TotalHours)
	assert.Len(t, store.records, 1)
}

func TestSaveRecordRejectsDuplicateDate(t *testing.T) {
	store := &fakeStore{}
	svc := services.NewRecordService(store, logger.NewNop())
	ctx := context.Background()

	_, err := svc.SaveRecord(ctx, saveReq("", "Ada", "2026-08-30"))
	require.NoError(t, err)

	_, err = svc.SaveRecord(ctx, saveReq("", "Ada", "2026-08-30"))
	assert.ErrorIs(t, err, entities.ErrDuplicateDate)

	// A different developer on the same date is fine.
	_, err = svc.SaveRecord(ctx, saveReq("", "Grace", "2026-08-30"))
	assert.NoError(t, err)
}

func TestSaveRecordRejectsEditOntoCollidingDate(t *testing.T) {
	store := &fakeStore{}
	svc := services.NewRecordService(store, logger.NewNop())
	ctx := context.Background()

	first, err := svc.SaveRecord(ctx, saveReq("", "Ada", "2026-08-29"))
	require.NoError(t, err)
	_, err = svc.SaveRecord(ctx, saveReq("", "Ada", "2026-08-30"))
	require.NoError(t, err)

	// Moving the first record onto the second record's date must collide.
	_, err = svc.SaveRecord(ctx, saveReq(first.ID, "Ada", "2026-08-30"))
	assert.ErrorIs(t, err, entities.ErrDuplicateDate)

	// Re-saving it on its own date is a normal edit.
	_, err = svc.SaveRecord(ctx, saveReq(first.ID, "Ada", "2026-08-29"))
	assert.NoError(t, err)
	assert.Len(t, store.records, 2)
}

func TestSaveRecordFullReplacement(t *testing.T) {
	store := &fakeStore{}
	svc := services.NewRecordService(store, logger.NewNop())
	ctx := context.Background()

	record, err := svc.SaveRecord(ctx, saveReq("", "Ada", "2026-08-30"))
	require.NoError(t, err)

	edit := saveReq(record.ID, "Ada", "2026-08-30")
	edit.Projects = []services.ProjectEntryInput{
		{ProjectName: "Other", TaskDetails: "Rewrite", WorkingHours: 8},
	}
	edit.Notes = "replaced"

	updated, err := svc.SaveRecord(ctx, edit)
	require.NoError(t, err)

	assert.Equal(t, record.ID, updated.ID)
	assert.Equal(t, 8.0, updated.TotalHours)
	assert.Equal(t, "replaced", updated.Notes)
	require.Len(t, store.records, 1)
	assert.Equal(t, "Other", store.records[0].Projects[0].ProjectName)
}

func TestSaveRecordEditPreservesCreatedAt(t *testing.T) {
	store := &fakeStore{}
	svc := services.NewRecordService(store, logger.NewNop())
	ctx := context.Background()

	first, err := svc.SaveRecord(ctx, saveReq("", "Ada", "2026-08-30"))
	require.NoError(t, err)
	require.False(t, first.CreatedAt.IsZero())

	time.Sleep(5 * time.Millisecond)

	edit := saveReq(first.ID, "Ada", "2026-08-30")
	edit.Notes = "second pass"
	updated, err := svc.SaveRecord(ctx, edit)
	require.NoError(t, err)

	// The service carries the creation time forward itself, so any
	// backend that blindly replaces the document still keeps it.
	assert.True(t, updated.CreatedAt.Equal(first.CreatedAt), "CreatedAt changed on edit: %v -> %v", first.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))
	require.Len(t, store.records, 1)
	assert.True(t, store.records[0].CreatedAt.Equal(first.CreatedAt))
}

func TestDeleteRecord(t *testing.T) {
	store := &fakeStore{}
	svc := services.NewRecordService(store, logger.NewNop())
	ctx := context.Background()

	record, err := svc.SaveRecord(ctx, saveReq("", "Ada", "2026-08-30"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecord(ctx, record.ID))
	assert.Empty(t, store.records)

	// Deleting again is still success.
	assert.NoError(t, svc.DeleteRecord(ctx, record.ID))
}
