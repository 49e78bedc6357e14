package models

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// User is the acting user as resolved from the identity provider.
// The block service does not own user data, so it is never persisted here.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`

	AvatarURL *string `json:"avatar_url,omitempty"`
}
