package id

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// NewID32 returns a random (v4) UUID as exactly 32 hex characters, no dashes.
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// NewOrderNumber returns a human-readable work order number, e.g. WO-20250906-3fa9c1.
func NewOrderNumber(at time.Time) string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return "WO-" + at.UTC().Format("20060102") + "-" + hex.EncodeToString(b)
}
