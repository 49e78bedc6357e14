package models

import "time"

// UserLoginRequest is the body of the staff state actions.
// A missing login is not an error: it resolves to no module.
type UserLoginRequest struct {
	UserLogin *string `json:"user_login"`
}

// StateResponse is returned by reset_user_state and get_user_state.
type StateResponse struct {
	State string `json:"state"`
}

// SaveSettingsRequest carries the four authored fields. Missing keys decode to nil
// and are stored as nil.
type SaveSettingsRequest struct {
	DisplayName *string  `json:"display_name"`
	Description *string  `json:"description"`
	Weight      *float64 `json:"weight"`
	Attempts    *int     `json:"attempts"`
}

// CreateBlockRequest provisions a block instance at a course location.
type CreateBlockRequest struct {
	Location    string     `json:"location" validate:"required,usage_key"`
	DisplayName *string    `json:"display_name" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=10000"`
	Weight      *float64   `json:"weight" validate:"omitempty,min=0"`
	Attempts    *int       `json:"attempts" validate:"omitempty,min=0"`
	Due         *time.Time `json:"due"`
}

// SavePointsRequest records the raw points earned by the acting student.
type SavePointsRequest struct {
	Points float64 `json:"points" validate:"min=0"`
}
