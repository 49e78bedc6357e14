package models

import (
	"time"
)

const DefaultDisplayName = "Gradable Block"

// Block holds the settings-scope fields of one block instance.
// A nil or zero Weight means the block is ungraded.
type Block struct {
	Location  string `json:"location" gorm:"primaryKey;size:255"`
	CourseID  string `json:"course_id" gorm:"not null;index;size:255"`
	BlockID   string `json:"block_id" gorm:"not null;size:255"`
	BlockType string `json:"block_type" gorm:"not null;size:100"`

	DisplayName *string    `json:"display_name" gorm:"size:255"`
	Description *string    `json:"description" gorm:"type:text"`
	Weight      *float64   `json:"weight"`
	Attempts    *int       `json:"attempts"`
	Due         *time.Time `json:"due"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Block) TableName() string {
	return "blocks"
}

// IsGraded reports whether the block carries a non-zero weight.
func (b *Block) IsGraded() bool {
	return b.Weight != nil && *b.Weight != 0
}
