package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayDev810/working-project-list/internal/application/services"
	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
	"github.com/JayDev810/working-project-list/internal/ports"
)

// fakeLocal serves a fixed persisted collection; Existing must not seed.
type fakeLocal struct {
	fakeStore
}

func (f *fakeLocal) Existing(ctx context.Context) ([]entities.WorkRecord, error) {
	return f.List(ctx)
}

// fakeCloud accumulates upserts by id, mirroring the remote table.
type fakeCloud struct {
	fakeStore
	configured bool
	saveAllErr error
}

func (f *fakeCloud) Subscribe(ctx context.Context, onData func([]entities.WorkRecord), onError func(error)) ports.Unsubscribe {
	return func() {}
}

func (f *fakeCloud) SaveAll(ctx context.Context, records []entities.WorkRecord) error {
	if f.saveAllErr != nil {
		return f.saveAllErr
	}
	for i := range records {
		if err := f.Save(ctx, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeCloud) DeleteByOwner(ctx context.Context, developerName string) error {
	kept := f.records[:0]
	for _, r := range f.records {
		if r.DeveloperName != developerName {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeCloud) IsConfigured() bool { return f.configured }

func localWith(records ...entities.WorkRecord) *fakeLocal {
	return &fakeLocal{fakeStore{records: records}}
}

func migrationRecord(id, developer, date string) entities.WorkRecord {
	return entities.WorkRecord{
		ID:            id,
		DeveloperName: developer,
		Date:          date,
		Month:         date[:7],
		Projects: []entities.ProjectEntry{
			{ID: "p1", ProjectName: "Proj", TaskDetails: "Work", WorkingHours: 2},
		},
		TotalProjects: 1,
		TotalHours:    2,
	}
}

func TestMigrateCopiesAllLocalRecords(t *testing.T) {
	local := localWith(
		migrationRecord("r1", "Ada", "2026-08-29"),
		migrationRecord("r2", "Grace", "2026-08-30"),
	)
	cloud := &fakeCloud{configured: true}
	svc := services.NewMigrationService(local, cloud, logger.NewNop())

	count, err := svc.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, cloud.records, 2)
}

func TestMigrateRerunDoesNotDuplicate(t *testing.T) {
	local := localWith(migrationRecord("r1", "Ada", "2026-08-29"))
	cloud := &fakeCloud{configured: true}
	svc := services.NewMigrationService(local, cloud, logger.NewNop())
	ctx := context.Background()

	count, err := svc.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, cloud.records, 1)
}

func TestMigrateEmptyLocalIsNotAnError(t *testing.T) {
	cloud := &fakeCloud{configured: true}
	svc := services.NewMigrationService(localWith(), cloud, logger.NewNop())

	count, err := svc.Migrate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, cloud.records)
}

func TestMigrateRequiresConfiguredCloud(t *testing.T) {
	local := localWith(migrationRecord("r1", "Ada", "2026-08-29"))
	svc := services.NewMigrationService(local, &fakeCloud{}, logger.NewNop())

	count, err := svc.Migrate(context.Background())
	assert.ErrorIs(t, err, entities.ErrNotConfigured)
	assert.Zero(t, count)
}

func TestMigrateSurfacesBatchFailure(t *testing.T) {
	local := localWith(migrationRecord("r1", "Ada", "2026-08-29"))
	cloud := &fakeCloud{configured: true, saveAllErr: assert.AnError}
	svc := services.NewMigrationService(local, cloud, logger.NewNop())

	count, err := svc.Migrate(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, count)
}
