// Package payment wraps the external payment-processing endpoint. The
// processor is an opaque collaborator: we POST the charge request, trust its
// success/failure signal completely and never retry on its behalf.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ChargeRequest is the payload the processor accepts.
type ChargeRequest struct {
	CampaignID    uint64 `json:"campaignId"`
	AmountCents   uint64 `json:"amount"`
	Message       string `json:"message,omitempty"`
	IsAnonymous   bool   `json:"isAnonymous"`
	PaymentMethod string `json:"paymentMethod"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	IsRecurring   bool   `json:"isRecurring"`
	Frequency     string `json:"frequency,omitempty"`
}

// ChargeResult is the processor's success payload.
type ChargeResult struct {
	TransactionID string `json:"transactionId"`
	ReceiptURL    string `json:"receiptUrl,omitempty"`
}

// Error carries the processor's error message so handlers can surface it
// verbatim to the user.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment endpoint: %s (status %d)", e.Message, e.StatusCode)
}

// Client posts charges to the configured endpoint. Construct with NewClient
// and inject where needed; there is no package-level singleton.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Charge submits one payment and returns the processor's result. A non-2xx
// response is decoded for its message field and returned as *Error; anything
// else (network, decode) comes back as a plain error.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// One id per charge attempt; it shows up in the processor's logs and
	// ours, which is all the reconciliation tooling we have.
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		msg := e.Message
		if msg == "" {
			msg = e.Error
		}
		if msg == "" {
			msg = "payment failed"
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	var out ChargeResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out.TransactionID == "" {
		return nil, errors.New("payment endpoint returned no transaction id")
	}
	return &out, nil
}
