package repository

import (
	"testing"
	"time"
)

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday today", time.Date(1996, 10, 18, 0, 0, 0, 0, time.UTC), 30},
		{"birthday tomorrow", time.Date(1996, 10, 19, 0, 0, 0, 0, time.UTC), 29},
		{"birthday passed", time.Date(1996, 3, 1, 0, 0, 0, 0, time.UTC), 30},
		{"born in the future", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeAt(tt.birth, now); got != tt.want {
				t.Errorf("AgeAt() = %d, want %d", got, tt.want)
			}
		})
	}
}
