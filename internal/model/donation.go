package model

import "time"

// Donation payment statuses. Terminal statuses never transition again and
// the row is immutable once one is reached.
const (
	DonationPending    = "pending"
	DonationProcessing = "processing"
	DonationCompleted  = "completed"
	DonationFailed     = "failed"
	DonationRefunded   = "refunded"
)

// TerminalStatus reports whether a donation status is final.
func TerminalStatus(s string) bool {
	switch s {
	case DonationCompleted, DonationFailed, DonationRefunded:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether s is an accepted payment method.
func ValidPaymentMethod(s string) bool {
	switch s {
	case "card", "bank_transfer", "wallet":
		return true
	}
	return false
}

// ValidFrequency reports whether s is an accepted recurring frequency.
func ValidFrequency(s string) bool {
	switch s {
	case "weekly", "monthly", "quarterly":
		return true
	}
	return false
}

// Donation mirrors the `donations` table: one contribution event for a
// campaign. DonorID is nil for anonymous donations. TransactionID and
// ReceiptURL come from the external payment processor.
type Donation struct {
	ID            uint64    `json:"id"`
	CampaignID    uint64    `json:"campaign_id"`
	DonorID       *uint64   `json:"donor_id,omitempty"`
	AmountCents   uint64    `json:"amount_cents"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	Message       string    `json:"message,omitempty"`
	IsAnonymous   bool      `json:"is_anonymous"`
	IsRecurring   bool      `json:"is_recurring"`
	Frequency     string    `json:"frequency,omitempty"`
	DonorName     string    `json:"donor_name,omitempty"`
	DonorEmail    string    `json:"donor_email,omitempty"`
	TransactionID string    `json:"transaction_id"`
	ReceiptURL    string    `json:"receipt_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
