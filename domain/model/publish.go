package model

import "time"

// PublishRecord is the audit trail of a single publish attempt.
// A failed attempt leaves the account connected; only this record and the
// application logs carry the outcome.
type PublishRecord struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	AccountID    string    `json:"account_id"`
	Platform     string    `json:"platform"`
	Status       string    `json:"status"` // pending | success | failed
	ExternalRef  *string   `json:"external_ref,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	PublishStatusPending = "pending"
	PublishStatusSuccess = "success"
	PublishStatusFailed  = "failed"
)
