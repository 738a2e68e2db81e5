package dates

import (
	"testing"
	"time"

	"modtok/platform/apperr"
)

func TestParse_ValidDate(t *testing.T) {
	got, err := Parse("2026-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParse_RejectsOtherFormats(t *testing.T) {
	for _, raw := range []string{"05-03-2026", "2026/03/05", "2026-03-05T10:00:00Z", "not a date"} {
		_, err := Parse(raw)
		if apperr.GetKind(err) != apperr.KindValidation {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestTruncate_DropsTimeOfDay(t *testing.T) {
	instant := time.Date(2026, 3, 5, 23, 59, 59, 999, time.UTC)
	got := Truncate(instant)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %s", got)
	}
	if got.Day() != 5 {
		t.Fatalf("expected same date, got %s", got)
	}
}

func TestTruncate_NormalizesToUTC(t *testing.T) {
	santiago := time.FixedZone("CLT", -4*60*60)
	// 22:00 in Santiago is already the next day in UTC.
	instant := time.Date(2026, 3, 5, 22, 0, 0, 0, santiago)
	got := Truncate(instant)
	if got.Day() != 6 {
		t.Fatalf("expected the UTC date, got %s", got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %s", got.Location())
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	day, err := Parse("2026-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Format(day) != "2026-12-31" {
		t.Fatalf("expected round trip, got %s", Format(day))
	}
}
