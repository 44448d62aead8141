package models

import (
	"fmt"
	"strings"
	"time"
)

const NoExpiryDescription = "permanent"

type TokenStatus struct {
	Token    string        `json:"token"`
	Valid    bool          `json:"valid"`
	NoExpiry bool          `json:"no_expiry"`
	TTL      time.Duration `json:"ttl"`
}

// ExpiryDescription renders the remaining lifetime as "permanent" or "<seconds>s".
func (t TokenStatus) ExpiryDescription() string {
	if t.NoExpiry {
		return NoExpiryDescription
	}
	return fmt.Sprintf("%ds", int64(t.TTL/time.Second))
}

// MaskToken keeps the first characters of token for log correlation.
func MaskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}
	return token[:visible] + strings.Repeat("*", len(token)-visible)
}
