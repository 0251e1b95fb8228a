package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspace_Location(t *testing.T) {
	noon := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		workspace  *Workspace
		wantName   string
		wantOffset int
	}{
		{"nil workspace", nil, "UTC", 0},
		{"unset", &Workspace{}, "UTC", 0},
		{"unknown zone", &Workspace{Timezone: "Mars/Olympus"}, "UTC", 0},
		{"jakarta", &Workspace{Timezone: "Asia/Jakarta"}, "Asia/Jakarta", 7 * 60 * 60},
		{"new york", &Workspace{Timezone: "America/New_York"}, "America/New_York", -5 * 60 * 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := tt.workspace.Location()
			require.NotNil(t, loc)
			assert.Equal(t, tt.wantName, loc.String())
			_, offset := noon.In(loc).Zone()
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestFitsMoneyScale(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"12", true},
		{"12.3456", true},
		{"12.34560000", true},
		{"-0.0001", true},
		{"12.34567", false},
		{"0.00001", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, FitsMoneyScale(decimal.RequireFromString(tt.value)))
		})
	}
}
