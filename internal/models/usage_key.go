package models

import (
	"fmt"
	"strings"
)

const usageKeyPrefix = "block-v1:"

// UsageKey identifies one block inside a course run:
// block-v1:{org}+{course}+{run}+type@{type}+block@{id}
type UsageKey struct {
	Org       string
	Course    string
	Run       string
	BlockType string
	BlockID   string
}

// ParseUsageKey parses the serialized form of a usage key.
func ParseUsageKey(raw string) (UsageKey, error) {
	if !strings.HasPrefix(raw, usageKeyPrefix) {
		return UsageKey{}, fmt.Errorf("invalid usage key %q: missing %s prefix", raw, usageKeyPrefix)
	}

	parts := strings.Split(strings.TrimPrefix(raw, usageKeyPrefix), "+")
	if len(parts) != 5 {
		return UsageKey{}, fmt.Errorf("invalid usage key %q: expected 5 parts, got %d", raw, len(parts))
	}

	key := UsageKey{Org: parts[0], Course: parts[1], Run: parts[2]}
	for _, part := range parts[3:] {
		switch {
		case strings.HasPrefix(part, "type@"):
			key.BlockType = strings.TrimPrefix(part, "type@")
		case strings.HasPrefix(part, "block@"):
			key.BlockID = strings.TrimPrefix(part, "block@")
		}
	}

	if key.Org == "" || key.Course == "" || key.Run == "" || key.BlockType == "" || key.BlockID == "" {
		return UsageKey{}, fmt.Errorf("invalid usage key %q: empty component", raw)
	}

	return key, nil
}

// CourseKey returns the course run the block belongs to.
func (k UsageKey) CourseKey() string {
	return fmt.Sprintf("course-v1:%s+%s+%s", k.Org, k.Course, k.Run)
}

func (k UsageKey) String() string {
	return fmt.Sprintf("%s%s+%s+%s+type@%s+block@%s", usageKeyPrefix, k.Org, k.Course, k.Run, k.BlockType, k.BlockID)
}
