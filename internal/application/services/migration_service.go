package services

import (
	"context"
	"fmt"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
	"github.com/JayDev810/working-project-list/internal/ports"
)

// MigrationService copies the locally persisted collection into the cloud
// store once. Migration is additive: local data is never deleted.
type MigrationService struct {
	local  ports.LocalRecordStore
	cloud  ports.CloudRecordStore
	logger *logger.Logger
}

// NewMigrationService creates a new migration service
func NewMigrationService(local ports.LocalRecordStore, cloud ports.CloudRecordStore, log *logger.Logger) *MigrationService {
	return &MigrationService{
		local:  local,
		cloud:  cloud,
		logger: log.WithComponent("migration"),
	}
}

// Migrate upserts every local record into the cloud table in one batch,
// keyed by id, and returns the migrated count. An absent local slot yields
// zero, not an error. Because the batch is an upsert, re-running after a
// partial failure overwrites already-migrated rows instead of duplicating
// them; a failed batch surfaces the underlying fault as-is.
func (s *MigrationService) Migrate(ctx context.Context) (int, error) {
	if !s.cloud.IsConfigured() {
		return 0, entities.ErrNotConfigured
	}

	records, err := s.local.Existing(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read local records: %w", err)
	}
	if len(records) == 0 {
		s.logger.Infow("No local records to migrate")
		return 0, nil
	}

	if err := s.cloud.SaveAll(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to migrate records: %w", err)
	}

	s.logger.Infow("Local records migrated to cloud store", "count", len(records))
	return len(records), nil
}
