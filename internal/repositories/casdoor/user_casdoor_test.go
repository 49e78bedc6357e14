package casdoor

import (
	"testing"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

func TestMapRole(t *testing.T) {
	tests := []struct {
		name string
		want models.UserRole
	}{
		{"Teacher", models.RoleTeacher},
		{"instructor", models.RoleTeacher},
		{"ADMIN", models.RoleAdmin},
		{"student", models.RoleStudent},
		{"proctor", models.RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapRole(tt.name))
		})
	}
}

func TestConvertUser(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ConvertUser(nil))
	})

	t.Run("admin flag wins over roles", func(t *testing.T) {
		user := ConvertUser(&casdoorsdk.User{
			Id:      "u-1",
			Name:    "alice",
			IsAdmin: true,
			Roles:   []*casdoorsdk.Role{{Name: "student"}},
		})
		require.NotNil(t, user)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.Equal(t, "alice", user.FullName)
		assert.Nil(t, user.AvatarURL)
	})

	t.Run("teacher role", func(t *testing.T) {
		user := ConvertUser(&casdoorsdk.User{
			Id:          "u-2",
			Name:        "bob",
			DisplayName: "Bob B",
			Avatar:      "https://example.com/a.png",
			Roles:       []*casdoorsdk.Role{{Name: "student"}, {Name: "teacher"}},
		})
		require.NotNil(t, user)
		assert.Equal(t, models.RoleTeacher, user.Role)
		assert.Equal(t, "bob", user.Username)
		assert.Equal(t, "Bob B", user.FullName)
		require.NotNil(t, user.AvatarURL)
	})
}
