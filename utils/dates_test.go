package utils

import (
	"testing"
	"time"
)

func TestParsePubDate_SupportedFormats(t *testing.T) {
	// Every format represents the same instant: 2024-01-15 07:30:00 UTC.
	want := time.Date(2024, 1, 15, 7, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "RFC1123 with numeric offset",
			raw:  "Mon, 15 Jan 2024 14:30:00 +0700",
		},
		{
			name: "RFC1123 with two-digit year",
			raw:  "Mon, 15 Jan 24 14:30:00 +0700",
		},
		{
			name: "Naive datetime treated as UTC",
			raw:  "2024-01-15 07:30:00",
		},
		{
			name: "GMT literal with numeric offset",
			raw:  "Mon, 15 Jan 2024 14:30:00 GMT+0700",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePubDate(tt.raw)
			if err != nil {
				t.Fatalf("ParsePubDate(%q) error: %v", tt.raw, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParsePubDate(%q) = %v, want %v", tt.raw, got, want)
			}
		})
	}
}

func TestParsePubDate_GMTHourFallback(t *testing.T) {
	// "GMT+7" matches no fixed layout; the fallback parses the prefix and
	// adds the offset as whole hours, reproducing the approximate shift.
	got, err := ParsePubDate("Mon, 15 Jan 2024 14:30:00 GMT+7")
	if err != nil {
		t.Fatalf("ParsePubDate error: %v", err)
	}

	want := time.Date(2024, 1, 15, 21, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParsePubDate GMT+7 fallback = %v, want %v", got, want)
	}
}

func TestParsePubDate_NegativeGMTFallback(t *testing.T) {
	got, err := ParsePubDate("Mon, 15 Jan 2024 14:30:00 GMT-5")
	if err != nil {
		t.Fatalf("ParsePubDate error: %v", err)
	}

	want := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParsePubDate GMT-5 fallback = %v, want %v", got, want)
	}
}

func TestParsePubDate_Unparseable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "Empty string", raw: ""},
		{name: "Garbage", raw: "not a date"},
		{name: "Fractional GMT offset", raw: "Mon, 15 Jan 2024 14:30:00 GMT+5:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePubDate(tt.raw); err == nil {
				t.Errorf("ParsePubDate(%q) expected error, got none", tt.raw)
			}
		})
	}
}

func TestDayBucket(t *testing.T) {
	// The UTC date decides the bucket, not the local date at the source offset.
	instant := time.Date(2024, 1, 15, 23, 30, 0, 0, time.FixedZone("ICT", 7*3600))
	if got := DayBucket(instant); got != "2024-01-15" {
		t.Errorf("DayBucket = %q, want 2024-01-15", got)
	}
}

func TestWeekBucket(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{
			name: "Monday maps to itself",
			day:  time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			want: "2024-01-15",
		},
		{
			name: "Wednesday maps back to Monday",
			day:  time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC),
			want: "2024-01-15",
		},
		{
			name: "Sunday maps back to previous Monday",
			day:  time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC),
			want: "2024-01-15",
		},
		{
			name: "Week spanning a month boundary",
			day:  time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
			want: "2024-01-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekBucket(tt.day); got != tt.want {
				t.Errorf("WeekBucket(%v) = %q, want %q", tt.day, got, tt.want)
			}
		})
	}
}
