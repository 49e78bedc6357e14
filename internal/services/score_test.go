package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetScore(t *testing.T) {
	score := GetScore(0.5, ptr(10.0))
	require.NotNil(t, score.Score)
	require.NotNil(t, score.Total)
	assert.Equal(t, 5.0, *score.Score)
	assert.Equal(t, 10.0, *score.Total)

	empty := GetScore(0.5, nil)
	assert.Nil(t, empty.Score)
	assert.Nil(t, empty.Total)
}

func TestMaxScore(t *testing.T) {
	assert.Nil(t, MaxScore(nil))
	assert.Equal(t, 4.0, *MaxScore(ptr(4.0)))
}

func TestScoreString(t *testing.T) {
	tests := []struct {
		name   string
		points float64
		weight *float64
		locale string
		want   string
	}{
		{"nil weight", 1, nil, "en", ""},
		{"zero weight", 1, ptr(0.0), "en", ""},
		{"half of ten", 0.5, ptr(10.0), "en", "(5.0/10 points)"},
		{"fractional", 0.5, ptr(5.0), "en", "(2.5/5 points)"},
		{"nothing earned", 0, ptr(1.0), "en", "(0.0/1 points)"},
		{"russian", 1, ptr(3.0), "ru", "(3.0/3 баллов)"},
		{"unknown locale", 1, ptr(2.0), "", "(2.0/2 points)"},
		{"fractional weight", 1, ptr(2.5), "en", "(2.5/2.5 points)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreString(tt.points, tt.weight, tt.locale))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "5.0", formatFloat(5))
	assert.Equal(t, "2.5", formatFloat(2.5))
	assert.Equal(t, "-1.0", formatFloat(-1))
	assert.Equal(t, "0.125", formatFloat(0.125))
}
