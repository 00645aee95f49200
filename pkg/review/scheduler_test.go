package review

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestSchedule_FirstSuccess(t *testing.T) {
	now := date(2024, time.January, 1)

	res := Schedule(0, true, now)

	if res.ReviewCount != 1 {
		t.Errorf("expected review count 1, got %d", res.ReviewCount)
	}
	if !res.LastReviewed.Equal(now) {
		t.Errorf("expected lastReviewed %v, got %v", now, res.LastReviewed)
	}
	want := date(2024, time.January, 3) // 2^1 days later
	if !res.NextReviewDate.Equal(want) {
		t.Errorf("expected next review %v, got %v", want, res.NextReviewDate)
	}
}

func TestSchedule_FailureIgnoresStreak(t *testing.T) {
	now := date(2024, time.March, 10)

	res := Schedule(3, false, now)

	if res.ReviewCount != 4 {
		t.Errorf("expected review count 4, got %d", res.ReviewCount)
	}
	want := date(2024, time.March, 11)
	if !res.NextReviewDate.Equal(want) {
		t.Errorf("expected next review %v, got %v", want, res.NextReviewDate)
	}
}

func TestSchedule_SuccessIntervals(t *testing.T) {
	now := date(2024, time.June, 1)

	tests := []struct {
		reviewCount int
		wantDays    int
	}{
		{0, 2},
		{1, 4},
		{2, 8},
		{8, 512},
		{9, 1024},  // 10th success hits the ceiling
		{10, 1024}, // 11th stays there
		{50, 1024},
	}

	for _, tc := range tests {
		res := Schedule(tc.reviewCount, true, now)
		want := now.AddDate(0, 0, tc.wantDays)
		if !res.NextReviewDate.Equal(want) {
			t.Errorf("count %d: expected next review %v (%d days), got %v",
				tc.reviewCount, want, tc.wantDays, res.NextReviewDate)
		}
		if res.ReviewCount != tc.reviewCount+1 {
			t.Errorf("count %d: expected post-increment %d, got %d",
				tc.reviewCount, tc.reviewCount+1, res.ReviewCount)
		}
	}
}

func TestSchedule_CalendarRollover(t *testing.T) {
	// 2 days past Jan 31 must land in February, not on a bogus Jan 33.
	res := Schedule(0, true, date(2024, time.January, 31))
	want := date(2024, time.February, 2)
	if !res.NextReviewDate.Equal(want) {
		t.Errorf("expected month rollover to %v, got %v", want, res.NextReviewDate)
	}

	// Failure on Dec 31 rolls into the next year.
	res = Schedule(7, false, date(2023, time.December, 31))
	want = date(2024, time.January, 1)
	if !res.NextReviewDate.Equal(want) {
		t.Errorf("expected year rollover to %v, got %v", want, res.NextReviewDate)
	}
}

func TestIsDue(t *testing.T) {
	now := date(2024, time.May, 15)

	if !IsDue(nil, now) {
		t.Error("a never-reviewed card must always be due")
	}

	past := date(2024, time.May, 14)
	if !IsDue(&past, now) {
		t.Error("a card scheduled in the past must be due")
	}

	if !IsDue(&now, now) {
		t.Error("a card scheduled exactly now must be due")
	}

	future := date(2024, time.May, 16)
	if IsDue(&future, now) {
		t.Error("a card scheduled in the future must not be due")
	}
}
