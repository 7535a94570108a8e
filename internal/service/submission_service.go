package service

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pollwise/survey-intake-api/internal/models"
	appErrors "github.com/pollwise/survey-intake-api/pkg/errors"
	"github.com/pollwise/survey-intake-api/pkg/hash"
)

// hourWindowLayout renders UTC time truncated to the hour as a fixed-width
// numeric string (YYYYMMDDHH). Two submissions from the same email within
// the same UTC hour derive the identical submission id.
const hourWindowLayout = "2006010215"

type recordAppender interface {
	Append(ctx context.Context, record *models.StoredSurveyRecord) error
}

// SubmissionService runs the intake pipeline: validation, identifier
// derivation, anonymization and the durable append. The clock is injected
// so tests can pin the hour window.
type SubmissionService struct {
	records  recordAppender
	validate *validator.Validate
	clock    func() time.Time
	logger   *zap.Logger
	metrics  *MetricsService
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(records recordAppender, validate *validator.Validate, clock func() time.Time, logger *zap.Logger, metrics *MetricsService) *SubmissionService {
	if validate == nil {
		validate = NewValidator()
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{records: records, validate: validate, clock: clock, logger: logger, metrics: metrics}
}

// Submit validates the raw payload, derives the effective identifier,
// anonymizes PII and appends the record. On validation failure the full
// field error set is returned and nothing is persisted. On storage failure
// nothing is considered committed and the error is surfaced to the caller.
func (s *SubmissionService) Submit(ctx context.Context, raw map[string]any, clientIP string) (*models.StoredSurveyRecord, []models.FieldError, error) {
	sub, fieldErrs := ValidateSubmission(s.validate, raw)
	if len(fieldErrs) > 0 {
		s.metrics.RecordSubmission("validation_failed")
		return nil, fieldErrs, nil
	}

	now := s.clock().UTC()
	submissionID := deriveSubmissionID(sub.Email, sub.SubmissionID, now)
	record := anonymize(sub, submissionID, now, clientIP)

	if err := s.records.Append(ctx, record); err != nil {
		s.logger.Error("failed to append submission",
			zap.String("submission_id", submissionID),
			zap.Error(err),
		)
		s.metrics.RecordSubmission("storage_failed")
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, appErrors.ErrStorage.Message)
	}

	s.metrics.RecordSubmission("accepted")
	return record, nil, nil
}

// deriveSubmissionID honors a caller-supplied identifier verbatim. Otherwise
// it computes digest(email + hour window) as a per-hour idempotency key.
// The hour-boundary truncation is abrupt by contract: a submission at the
// boundary lands in whichever window the wall clock reports.
func deriveSubmissionID(email, supplied string, now time.Time) string {
	if supplied != "" {
		return supplied
	}
	return hash.Digest(email + now.UTC().Format(hourWindowLayout))
}

// anonymize builds the storable record: email and age are replaced by their
// digests (age hashed as its decimal string form), everything else is
// copied, and server-side metadata is stamped.
func anonymize(sub *models.SurveySubmission, submissionID string, receivedAt time.Time, clientIP string) *models.StoredSurveyRecord {
	return &models.StoredSurveyRecord{
		Name:         sub.Name,
		Email:        hash.Digest(sub.Email),
		Age:          hash.Digest(strconv.Itoa(*sub.Age)),
		Consent:      *sub.Consent,
		Rating:       *sub.Rating,
		Comments:     sub.Comments,
		UserAgent:    sub.UserAgent,
		SubmissionID: submissionID,
		ReceivedAt:   receivedAt.UTC(),
		IP:           clientIP,
	}
}
