// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentConfirmedEvent is published when a gateway success callback
// settles an application fee.  It contains enough information for
// downstream consumers to audit, notify, or trigger analytics without
// querying the primary database.
type PaymentConfirmedEvent struct {
	ApplicationID   uint64 `json:"application_id"`
	UserID          uint64 `json:"user_id"`
	UserEmail       string `json:"user_email"`
	ScholarshipID   uint64 `json:"scholarship_id"`
	ScholarshipName string `json:"scholarship_name"`
	UniversityName  string `json:"university_name"`
	AmountCents     uint32 `json:"amount_cents"`
	TransactionID   string `json:"transaction_id"`
	ConfirmedAt     string `json:"confirmed_at"`
}
