package uid

import "github.com/google/uuid"

// GenerateMatchID returns a random (v4) UUID string for a new match.
func GenerateMatchID() string {
	return uuid.NewString()
}

// ValidMatchID reports whether id parses as a UUID.
func ValidMatchID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
