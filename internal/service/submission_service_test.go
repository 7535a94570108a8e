package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pollwise/survey-intake-api/internal/models"
	appErrors "github.com/pollwise/survey-intake-api/pkg/errors"
	"github.com/pollwise/survey-intake-api/pkg/hash"
)

type mockAppender struct {
	records []*models.StoredSurveyRecord
	err     error
}

func (m *mockAppender) Append(ctx context.Context, record *models.StoredSurveyRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, record)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var hexID = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSubmitDerivesHourlyIdempotencyKey(t *testing.T) {
	repo := &mockAppender{}
	at := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	svc := NewSubmissionService(repo, NewValidator(), fixedClock(at), zap.NewNop(), nil)

	record, fieldErrs, err := svc.Submit(context.Background(), validPayload(), "203.0.113.7")
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, record)

	assert.Equal(t, hash.Digest("ana@example.com"+"2024030914"), record.SubmissionID)
	assert.True(t, hexID.MatchString(record.SubmissionID))
}

func TestSubmitSameEmailSameHourSameID(t *testing.T) {
	repo := &mockAppender{}
	early := time.Date(2024, 3, 9, 14, 0, 0, 1, time.UTC)
	late := time.Date(2024, 3, 9, 14, 59, 59, 0, time.UTC)

	first, _, err := NewSubmissionService(repo, NewValidator(), fixedClock(early), zap.NewNop(), nil).
		Submit(context.Background(), validPayload(), "")
	require.NoError(t, err)
	second, _, err := NewSubmissionService(repo, NewValidator(), fixedClock(late), zap.NewNop(), nil).
		Submit(context.Background(), validPayload(), "")
	require.NoError(t, err)

	assert.Equal(t, first.SubmissionID, second.SubmissionID)
}

func TestSubmitDifferentHourDifferentID(t *testing.T) {
	repo := &mockAppender{}
	before := time.Date(2024, 3, 9, 14, 59, 59, 0, time.UTC)
	after := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)

	first, _, err := NewSubmissionService(repo, NewValidator(), fixedClock(before), zap.NewNop(), nil).
		Submit(context.Background(), validPayload(), "")
	require.NoError(t, err)
	second, _, err := NewSubmissionService(repo, NewValidator(), fixedClock(after), zap.NewNop(), nil).
		Submit(context.Background(), validPayload(), "")
	require.NoError(t, err)

	assert.NotEqual(t, first.SubmissionID, second.SubmissionID)
}

func TestSubmitHonorsCallerSuppliedID(t *testing.T) {
	repo := &mockAppender{}
	svc := NewSubmissionService(repo, NewValidator(), fixedClock(time.Now()), zap.NewNop(), nil)

	payload := validPayload()
	payload["submission_id"] = "my-own-key"

	record, _, err := svc.Submit(context.Background(), payload, "")
	require.NoError(t, err)
	assert.Equal(t, "my-own-key", record.SubmissionID)
}

func TestSubmitAnonymizesPII(t *testing.T) {
	repo := &mockAppender{}
	at := time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC)
	svc := NewSubmissionService(repo, NewValidator(), fixedClock(at), zap.NewNop(), nil)

	record, _, err := svc.Submit(context.Background(), validPayload(), "203.0.113.7")
	require.NoError(t, err)

	assert.NotEqual(t, "ana@example.com", record.Email)
	assert.NotEqual(t, "30", record.Age)
	assert.Equal(t, hash.Digest("ana@example.com"), record.Email)
	assert.Equal(t, hash.Digest("30"), record.Age)
	assert.Equal(t, "Ana", record.Name)
	assert.True(t, record.Consent)
	assert.Equal(t, 5, record.Rating)
	assert.Equal(t, at, record.ReceivedAt)
	assert.Equal(t, "203.0.113.7", record.IP)
}

func TestSubmitValidationFailurePersistsNothing(t *testing.T) {
	repo := &mockAppender{}
	svc := NewSubmissionService(repo, NewValidator(), nil, zap.NewNop(), nil)

	payload := validPayload()
	payload["consent"] = false

	record, fieldErrs, err := svc.Submit(context.Background(), payload, "")
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.NotEmpty(t, fieldErrs)
	assert.Empty(t, repo.records)
}

func TestSubmitStorageFailureSurfaced(t *testing.T) {
	repo := &mockAppender{err: errors.New("disk full")}
	svc := NewSubmissionService(repo, NewValidator(), nil, zap.NewNop(), nil)

	record, fieldErrs, err := svc.Submit(context.Background(), validPayload(), "")
	assert.Nil(t, record)
	assert.Empty(t, fieldErrs)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStorage.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrStorage.Status, appErr.Status)
}
