package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		status string
		want   interface{}
	}{
		{"ok", StatusOKStyle},
		{"exit 2", StatusWarnStyle},
		{"aborted", StatusFailedStyle},
		{"failed to launch", StatusFailedStyle},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusStyle(tt.status))
			assert.Contains(t, StatusStyle(tt.status).Render("test"), "test")
		})
	}
}

func TestStatusStyleReturnsDefaultForUnknown(t *testing.T) {
	rendered := StatusStyle("pending").Render("test")
	assert.Contains(t, rendered, "test")
}

func TestStylesRender(t *testing.T) {
	tests := []struct {
		name  string
		style func(...string) string
	}{
		{"TitleStyle", TitleStyle.Render},
		{"HeaderStyle", HeaderStyle.Render},
		{"BorderStyle", BorderStyle.Render},
		{"SelectedStyle", SelectedStyle.Render},
		{"CursorStyle", CursorStyle.Render},
		{"HelpStyle", HelpStyle.Render},
		{"ErrorStyle", ErrorStyle.Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.style("hello")
			assert.Contains(t, result, "hello")
		})
	}
}
