package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

func TestValidate_CreateBlockRequest(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&models.CreateBlockRequest{
		Location: "block-v1:ifmo+cs101+2025+type@gradable+block@lab1",
	}))

	weight := -1.0
	err := v.Validate(&models.CreateBlockRequest{
		Location: "lab1",
		Weight:   &weight,
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)

	byField := map[string]ValidationError{}
	for _, e := range verrs {
		byField[e.Field] = e
	}
	assert.Equal(t, "usage_key", byField["location"].Rule)
	assert.Equal(t, "min", byField["weight"].Rule)
	assert.Equal(t, "must be at least 0", byField["weight"].Message)
	assert.Equal(t, "validation failed: 2 field errors", err.Error())
}

func TestValidate_Required(t *testing.T) {
	err := New().Validate(&models.CreateBlockRequest{})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "location", verrs[0].Field)
	assert.Equal(t, "is required", verrs[0].Message)
}
