package domain

import "time"

// Session is produced by a granted login and handed to the home and transfer
// screens. It lives in memory only.
type Session struct {
	UserID    string
	StartedAt time.Time
}

// NewSession starts a session for userID.
func NewSession(userID string) Session {
	return Session{UserID: userID, StartedAt: time.Now()}
}

// Valid reports whether the session carries a user id.
func (s Session) Valid() bool { return s.UserID != "" }
