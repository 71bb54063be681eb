// Package importer applies normalized spreadsheet rows to the subscriber
// ledger with upsert-by-username semantics. Header guessing happens in
// the external import-field-mapper; this side only sees ImportRow.
package importer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/suninet/suninet/internal/subscribers"
)

// StatsInvalidator drops cached statistics after a ledger mutation.
type StatsInvalidator interface {
	Bump(ctx context.Context) error
}

// Service coordinates bulk imports.
type Service struct {
	logger *slog.Logger
	repo   Repository
	cache  StatsInvalidator
}

// NewService builds a Service instance. cache may be nil.
func NewService(logger *slog.Logger, repo Repository, cache StatsInvalidator) *Service {
	return &Service{logger: logger, repo: repo, cache: cache}
}

// Import upserts the batch atomically and returns the number of rows
// applied. Rows without a username are skipped, not errored; a storage
// failure rolls back the whole batch.
func (s *Service) Import(ctx context.Context, rows []subscribers.ImportRow) (int, error) {
	valid := make([]subscribers.ImportRow, 0, len(rows))
	for _, row := range rows {
		if row.Username == "" {
			continue
		}
		valid = append(valid, row)
	}

	batchID := uuid.New()
	count, err := s.repo.UpsertAll(ctx, valid)
	if err != nil {
		s.logger.Error("bulk import failed",
			slog.String("batch_id", batchID.String()),
			slog.Any("error", err))
		return 0, err
	}

	s.logger.Info("bulk import applied",
		slog.String("batch_id", batchID.String()),
		slog.Int("submitted", len(rows)),
		slog.Int("applied", count))

	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.logger.Warn("stats cache bump", slog.Any("error", err))
		}
	}
	return count, nil
}
