package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

func TestExtendedDueResolver(t *testing.T) {
	due := time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC)
	block := &models.Block{Due: &due}
	resolver := ExtendedDueResolver{}

	assert.Equal(t, &due, resolver.Resolve(block, nil))
	assert.Nil(t, resolver.Resolve(&models.Block{}, nil))

	module := &models.StudentModule{State: datatypes.JSON(`{"extended_due": "2025-03-08T09:00:00Z"}`)}
	extended := resolver.Resolve(block, module)
	require.NotNil(t, extended)
	assert.Equal(t, time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC), extended.UTC())

	plain := &models.StudentModule{State: datatypes.JSON(`{"points": 1}`)}
	assert.Equal(t, &due, resolver.Resolve(block, plain))
}

func TestFormatDue(t *testing.T) {
	assert.Nil(t, FormatDue(nil))

	due := time.Date(2025, 3, 1, 18, 30, 5, 0, time.UTC)
	assert.Equal(t, "01.03.2025 18:30:05", *FormatDue(&due))

	local := due.In(time.FixedZone("MSK", 3*3600))
	assert.Equal(t, "01.03.2025 18:30:05", *FormatDue(&local))
}
