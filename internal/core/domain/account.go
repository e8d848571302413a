package domain

import (
	"strings"
	"time"
)

// Account is a registered user. One account per normalized email.
//
// Passwords are stored verbatim. This mirrors the credential contract the
// mobile client persists and is a documented weakness, not something the
// storage layer hashes away.
type Account struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session records the currently authenticated user. At most one exists at a
// time; its presence drives IsAuthenticated.
type Session struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LoginTime time.Time `json:"loginTime"`
}

// NormalizeEmail produces the canonical account key: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
