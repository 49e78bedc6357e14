package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// EmptyState is the serialized state of a module with no user-scope fields.
const EmptyState = "{}"

// StudentModule is the persisted interaction record of one student with one block.
// User-scope fields (points, extended_due) are serialized into State.
type StudentModule struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	StudentID      string `json:"student_id" gorm:"not null;size:255;uniqueIndex:idx_student_module"`
	Username       string `json:"username" gorm:"not null;size:150;index"`
	ModuleStateKey string `json:"module_state_key" gorm:"not null;size:255;uniqueIndex:idx_student_module"`
	CourseID       string `json:"course_id" gorm:"not null;size:255;index"`

	State    datatypes.JSON `json:"state" gorm:"type:jsonb"`
	Grade    *float64       `json:"grade"`
	MaxGrade *float64       `json:"max_grade"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StudentModule) TableName() string {
	return "student_modules"
}

// UserFields is the decoded form of StudentModule.State.
type UserFields struct {
	Points      float64    `json:"points,omitempty"`
	ExtendedDue *time.Time `json:"extended_due,omitempty"`
}

// Fields decodes the user-scope fields stored in the module state.
func (m *StudentModule) Fields() (UserFields, error) {
	var fields UserFields
	if len(m.State) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(m.State, &fields); err != nil {
		return fields, fmt.Errorf("decode module state: %w", err)
	}
	return fields, nil
}

// SetPoints writes points into the module state, keeping the other keys.
func (m *StudentModule) SetPoints(points float64) error {
	raw := map[string]interface{}{}
	if len(m.State) > 0 {
		if err := json.Unmarshal(m.State, &raw); err != nil {
			return fmt.Errorf("decode module state: %w", err)
		}
	}
	// a stored JSON null decodes to a nil map
	if raw == nil {
		raw = map[string]interface{}{}
	}
	raw["points"] = points

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode module state: %w", err)
	}
	m.State = datatypes.JSON(data)
	return nil
}

// Clear drops every user-scope field and both grades.
func (m *StudentModule) Clear() {
	m.State = datatypes.JSON(EmptyState)
	m.Grade = nil
	m.MaxGrade = nil
}
