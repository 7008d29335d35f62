package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates a new random identifier for an in-memory entity
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s is a well-formed identifier produced by NewID
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// GenerateReceiptNo generates a unique receipt number, e.g. "RCPT-20260119-3F2A9C1B"
func GenerateReceiptNo(prefix string, at time.Time) string {
	return prefix + "-" + at.Format("20060102") + "-" + strings.ToUpper(uuid.New().String()[:8])
}
