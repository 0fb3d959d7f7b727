package domain

import "time"

// Session es una sesión autenticada en memoria. El token es opaco.
type Session struct {
	Token         string    `json:"-"`
	Username      string    `json:"username"`
	Administrator bool      `json:"administrator"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// IsExpired reporta si una sesión que expira en expiresAt ya no es válida en now.
func IsExpired(expiresAt, now time.Time) bool {
	return !now.Before(expiresAt)
}
