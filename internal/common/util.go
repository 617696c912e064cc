package common

import "github.com/google/uuid"

// IsValidID reports whether id is a canonical UUID string. Every persisted
// identifier (users, blogs, comments, media) uses this format.
func IsValidID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}

// CanonicalID parses id and returns its lowercase hyphenated form, so ids
// from URLs compare equal to stored ones.
func CanonicalID(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
