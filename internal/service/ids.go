package service

import (
	"fmt"

	"github.com/google/uuid"
)

// parseID validates a path id. A malformed id behaves like a missing record,
// matching the store's treatment of malformed object ids.
func parseID(kind, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, NewNotFound(fmt.Sprintf("%s with ID '%s' not found", kind, id))
	}
	return parsed, nil
}

// filterValidIDs drops tokens that cannot be record ids so batch lookups
// never trip over malformed values. Dropped tokens simply never resolve; the
// caller detects them through the count comparison.
func filterValidIDs(ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	return valid
}
