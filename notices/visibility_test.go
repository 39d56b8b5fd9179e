package notices

import (
	"testing"
	"time"

	"milonga/models"
)

func TestIsVisible(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name   string
		notice models.Notice
		want   bool
	}{
		{"active, no dates", models.Notice{IsActive: true}, true},
		{"inactive", models.Notice{IsActive: false}, false},
		{"started, open ended", models.Notice{IsActive: true, StartDate: &past}, true},
		{"not yet started", models.Notice{IsActive: true, StartDate: &future}, false},
		{"ended", models.Notice{IsActive: true, EndDate: &past}, false},
		{"ends in the future", models.Notice{IsActive: true, EndDate: &future}, true},
		{"inside window", models.Notice{IsActive: true, StartDate: &past, EndDate: &future}, true},
		{"starts exactly now", models.Notice{IsActive: true, StartDate: &now}, true},
		{"ends exactly now", models.Notice{IsActive: true, EndDate: &now}, true},
		{"inactive inside window", models.Notice{IsActive: false, StartDate: &past, EndDate: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVisible(tt.notice, now); got != tt.want {
				t.Errorf("IsVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}
