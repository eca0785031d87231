package cli

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-5, "0s"},
		{45, "45s"},
		{125, "2m"},
		{3725, "1h 2m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2025, 10, 9, 12, 0, 0, 0, time.UTC)
	if got := FormatAgo(now, now); got != "just now" {
		t.Errorf("FormatAgo(now) = %q", got)
	}
	if got := FormatAgo(now.Add(-90*time.Second), now); got != "1m ago" {
		t.Errorf("FormatAgo(-90s) = %q, want 1m ago", got)
	}
	if got := FormatAgo(now.Add(time.Minute), now); got != "just now" {
		t.Errorf("future stamp = %q, want just now", got)
	}
}

func TestFormatPeriod(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{800 * time.Millisecond, "800ms"},
		{2 * time.Second, "2s"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatPeriod(tt.in); got != tt.want {
			t.Errorf("FormatPeriod(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
