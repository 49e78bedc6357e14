package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestStudentModule_Fields(t *testing.T) {
	empty := &StudentModule{}
	fields, err := empty.Fields()
	require.NoError(t, err)
	assert.Zero(t, fields.Points)
	assert.Nil(t, fields.ExtendedDue)

	broken := &StudentModule{State: datatypes.JSON(`not json`)}
	_, err = broken.Fields()
	assert.Error(t, err)
}

func TestStudentModule_SetPoints(t *testing.T) {
	m := &StudentModule{State: datatypes.JSON(`{"attempts_used": 2}`)}
	require.NoError(t, m.SetPoints(0.75))

	assert.JSONEq(t, `{"attempts_used": 2, "points": 0.75}`, string(m.State))

	fields, err := m.Fields()
	require.NoError(t, err)
	assert.Equal(t, 0.75, fields.Points)
}

func TestStudentModule_SetPointsOnNullState(t *testing.T) {
	m := &StudentModule{State: datatypes.JSON(`null`)}
	require.NoError(t, m.SetPoints(0.5))

	assert.JSONEq(t, `{"points": 0.5}`, string(m.State))
}

func TestStudentModule_Clear(t *testing.T) {
	grade, max := 3.0, 5.0
	m := &StudentModule{State: datatypes.JSON(`{"points": 0.6}`), Grade: &grade, MaxGrade: &max}

	m.Clear()

	assert.Equal(t, EmptyState, string(m.State))
	assert.Nil(t, m.Grade)
	assert.Nil(t, m.MaxGrade)
}

func TestBlock_IsGraded(t *testing.T) {
	zero, two := 0.0, 2.0
	assert.False(t, (&Block{}).IsGraded())
	assert.False(t, (&Block{Weight: &zero}).IsGraded())
	assert.True(t, (&Block{Weight: &two}).IsGraded())
}
