package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserInitials(t *testing.T) {
	tests := []struct {
		name string
		full string
		want string
	}{
		{"two words", "Dana Reyes", "DR"},
		{"one word", "dana", "D"},
		{"three words takes first two", "Ana Maria Silva", "AM"},
		{"empty", "", ""},
		{"extra spaces", "  dana   reyes ", "DR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Name: tt.full}
			assert.Equal(t, tt.want, u.Initials())
		})
	}
}
