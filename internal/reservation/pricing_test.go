package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPriceCents(t *testing.T) {
	tests := []struct {
		name        string
		hourlyCents int64
		start       string
		end         string
		want        int64
	}{
		{"whole hours", 1000, "09:00", "11:00", 2000},
		{"hour and a half", 1000, "09:00", "10:30", 1500},
		{"three quarters", 1000, "09:00", "09:45", 750},
		{"half cent rounds up", 999, "09:00", "09:30", 500},
		{"below half cent rounds down", 1001, "09:00", "09:01", 17},
		{"single minute", 1000, "09:00", "09:01", 17},
		{"free court", 0, "09:00", "10:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := mustRange(t, tt.start, tt.end)
			assert.Equal(t, tt.want, TotalPriceCents(tt.hourlyCents, tr))
		})
	}
}

func TestTotalPriceCents_Deterministic(t *testing.T) {
	tr := mustRange(t, "09:00", "09:30")
	first := TotalPriceCents(999, tr)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, TotalPriceCents(999, tr))
	}
}
