package models

import "time"

// SurveySubmission is the untrusted, client-supplied payload for
// POST /v1/survey. Pointer fields distinguish "absent" from the zero value
// so required/bounds checks can report the right constraint.
type SurveySubmission struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Age          *int   `json:"age" validate:"required,gte=13,lte=120"`
	Consent      *bool  `json:"consent" validate:"required,eq=true"`
	Rating       *int   `json:"rating" validate:"required,gte=1,lte=5"`
	Comments     string `json:"comments" validate:"omitempty,max=1000"`
	UserAgent    string `json:"user_agent"`
	SubmissionID string `json:"submission_id"`
}

// StoredSurveyRecord is the trusted, persisted form of a submission.
// Email and age hold hex digests, never the clear values. A record is
// immutable once constructed and appended exactly once.
type StoredSurveyRecord struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Age          string    `json:"age"`
	Consent      bool      `json:"consent"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	SubmissionID string    `json:"submission_id"`
	ReceivedAt   time.Time `json:"received_at"`
	IP           string    `json:"ip"`
}

// FieldError describes one failed validation constraint on one field.
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}
