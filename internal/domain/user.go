package domain

import "time"

// User is an account holder. Password hashes never leave the storage
// layer; the JSON shape here is what the API returns.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is an authenticated browser session. The token is an opaque
// random value carried in a cookie and looked up in storage.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
