package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportGrades(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedBlock(repo, ptr(10.0))
	seedModule(repo, "u-bob", "bob", `{"points": 0.2}`)
	seedModule(repo, "u-alice", "alice", `{"points": 0.5}`)
	service := NewExportService(repo, discardLogger())

	t.Run("staff only", func(t *testing.T) {
		_, err := service.ExportGrades(ctx, testLocation, lmsRuntime(alice, false))
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("unknown block", func(t *testing.T) {
		_, err := service.ExportGrades(ctx, "block-v1:x+y+z+type@gradable+block@nope", lmsRuntime(tutor, true))
		assert.ErrorIs(t, err, ErrBlockNotFound)
	})

	t.Run("one row per module", func(t *testing.T) {
		buf, err := service.ExportGrades(ctx, testLocation, lmsRuntime(tutor, true))
		require.NoError(t, err)

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(gradesSheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Username", rows[0][0])
		assert.Equal(t, "alice", rows[1][0])
		assert.Equal(t, "u-alice", rows[1][1])
		assert.Equal(t, "0.5", rows[1][2])
		assert.Equal(t, "bob", rows[2][0])
	})
}
