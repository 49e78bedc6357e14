package models

// RenderContext is the read model shared by the student view and get_user_data.
type RenderContext struct {
	Meta         RenderMeta   `json:"meta"`
	StudentState StudentState `json:"student_state"`
}

type RenderMeta struct {
	Location string  `json:"location"`
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Text     string  `json:"text"`
	Due      *string `json:"due"`
	Attempts *int    `json:"attempts"`
}

type StudentState struct {
	Score    ScoreState `json:"score"`
	IsStaff  bool       `json:"is_staff"`
	IsStudio bool       `json:"is_studio"`
}

type ScoreState struct {
	Earned *float64 `json:"earned"`
	Max    *float64 `json:"max"`
	String string   `json:"string"`
}

// SettingsContext is the smaller context handed to the studio view.
type SettingsContext struct {
	ID       string           `json:"id"`
	Metadata SettingsMetadata `json:"metadata"`
}

type SettingsMetadata struct {
	DisplayName *string  `json:"display_name"`
	Description *string  `json:"description"`
	Weight      *float64 `json:"weight"`
	Attempts    *int     `json:"attempts"`
}
