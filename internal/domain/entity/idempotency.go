package entity

import "time"

// IdempotencyKey stores the response of a processed request so retries replay it
type IdempotencyKey struct {
	Key          string    `json:"key"`
	Scope        string    `json:"scope"`    // POS session that sent the request
	Endpoint     string    `json:"endpoint"` // e.g. "POST /api/v1/pos/checkout"
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsExpired checks if the key has expired at the given instant
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
