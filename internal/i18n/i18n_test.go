package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		fallback string
		want     string
	}{
		{"empty header", "", "ru", "ru"},
		{"russian", "ru-RU,ru;q=0.9,en;q=0.8", "en", "ru"},
		{"english", "en-US,en;q=0.9", "ru", "en"},
		{"quality order", "de;q=0.5,ru;q=0.9", "en", "ru"},
		{"unsupported fallback", "", "fr", "en"},
		{"garbage", ";;;", "ru", "ru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.header, tt.fallback))
		})
	}
}

func TestT(t *testing.T) {
	assert.Equal(t, "User state has been reset.", T("en", UserStateReset))
	assert.Equal(t, "Состояние пользователя сброшено.", T("ru", UserStateReset))
	assert.Equal(t, "Модуль для указанного пользователя не существует.", T("ru", ModuleNotFound))
	assert.Equal(t, "points", T("fr", PointsWord))
	assert.Equal(t, "unknown_key", T("en", "unknown_key"))
}
