package mq

import "time"

// EmailIngestedPayload announces one newly persisted inbox message.
type EmailIngestedPayload struct {
	EmailID    int64     `json:"email_id"`
	From       string    `json:"from"`
	Subject    string    `json:"subject"`
	Date       time.Time `json:"date"`
	IngestedAt time.Time `json:"ingested_at"`
}
