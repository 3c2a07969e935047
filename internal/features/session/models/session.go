package models

import "time"

// Session is the server-side state behind an opaque credential. The handle is
// the credential itself: an unguessable random string the client presents.
// Signed-token sessions have no server-side record and never appear here.
type Session struct {
	Handle     string    `json:"-"`
	ExternalID string    `json:"external_id"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
