package schema

import (
	"testing"
	"time"

	"pupils-backend/apperror"
)

func TestParseBirthDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "01-10-2005", want: time.Date(2005, time.October, 1, 0, 0, 0, 0, time.UTC)},
		{in: "1-1-2008", want: time.Date(2008, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{in: " 29-02-2012 ", want: time.Date(2012, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{in: "29-02-2013", wantErr: true},
		{in: "2005-10-01", wantErr: true},
		{in: "01/10/2005", wantErr: true},
		{in: "32-01-2005", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseBirthDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseBirthDate(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBirthDate(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseBirthDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	d, err := ParseBirthDate("1-9-2010")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatDate(d); got != "01-09-2010" {
		t.Errorf("FormatDate = %q, want zero padded", got)
	}
}

func TestCheckAge(t *testing.T) {
	today := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		ok    bool
	}{
		{"exactly five by year", time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC), true},
		{"four", time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"nineteen", time.Date(2007, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"twenty by year even before birthday", time.Date(2006, time.December, 31, 0, 0, 0, 0, time.UTC), false},
		{"born this year", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"in the future", time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAge(tt.birth, today)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !apperror.Is(err, apperror.KindAgeOutOfRange) {
				t.Fatalf("expected age error, got %v", err)
			}
		})
	}
}
