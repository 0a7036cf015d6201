package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID returns the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok
}

// parseIDList parses a comma-separated list of integer ids. An empty value
// means no filter; any non-integer element is an error.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// parseBoolFlag parses a 0/1-style query flag; any non-zero integer is
// true and a missing value is false.
func parseBoolFlag(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
