package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pollwise/survey-intake-api/internal/models"
	"github.com/pollwise/survey-intake-api/pkg/storage"
)

// SubmissionRepository persists stored survey records, one self-contained
// JSON line per record, to the process-wide append-only log.
type SubmissionRepository struct {
	log *storage.AppendLog
}

// NewSubmissionRepository constructs the repository over an open log.
func NewSubmissionRepository(log *storage.AppendLog) *SubmissionRepository {
	return &SubmissionRepository{log: log}
}

// Append serializes the record and appends it as one line. The line is
// durable (handed to the OS) before Append returns.
func (r *SubmissionRepository) Append(ctx context.Context, record *models.StoredSurveyRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", record.SubmissionID, err)
	}
	return r.log.Append(line)
}
