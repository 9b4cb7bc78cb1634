package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	task := NewTask(2, "Design")
	assert.Equal(t, int64(2), task.ProjectID)
	assert.Equal(t, "Design", task.Name)
	assert.True(t, task.IsValid())
	assert.Equal(t, "Design", task.String())
}

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{"valid", Task{ProjectID: 1, Name: "x"}, true},
		{"no project", Task{Name: "x"}, false},
		{"no name", Task{ProjectID: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestNewProject(t *testing.T) {
	p := NewProject(1, "Website")
	assert.Equal(t, DefaultProjectColor, p.Color)
	assert.True(t, p.IsValid())
	assert.False(t, Project{Name: "x"}.IsValid())
}

func TestProject_DisplayColor(t *testing.T) {
	assert.Equal(t, "#6c757d", Project{}.DisplayColor())
	assert.Equal(t, "#abcdef", Project{Color: "#abcdef"}.DisplayColor())
}

func TestUser_ZoneOrUTC(t *testing.T) {
	assert.Equal(t, "UTC", User{}.ZoneOrUTC())
	assert.Equal(t, "Asia/Tokyo", User{Timezone: "Asia/Tokyo"}.ZoneOrUTC())
}
