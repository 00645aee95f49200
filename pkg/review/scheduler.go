// Package review implements the spaced-repetition schedule for
// flashcards. It is a leaf package: pure functions over plain values,
// no storage, no clock of its own.
package review

import "time"

const (
	// failureIntervalDays is the deferral applied when a card was not
	// remembered, whatever the previous streak was.
	failureIntervalDays = 1

	// maxExponent caps the success back-off at 2^10 = 1024 days.
	maxExponent = 10
)

// Result carries the review statistics to persist after one outcome.
// The scheduler never mutates storage; the caller applies these values.
type Result struct {
	ReviewCount    int
	LastReviewed   time.Time
	NextReviewDate time.Time
}

// Schedule computes the next review date after one review outcome.
//
// The interval is keyed off the post-increment count: the first
// successful review yields 2 days, the second 4, doubling up to the
// 1024-day ceiling from the 10th success on. A failed review always
// defers by exactly one day; no streak memory is kept beyond the
// counter itself.
//
// Dates use calendar-day arithmetic, so month and year boundaries roll
// over correctly.
func Schedule(reviewCount int, remembered bool, now time.Time) Result {
	count := reviewCount + 1
	days := failureIntervalDays
	if remembered {
		exp := count
		if exp > maxExponent {
			exp = maxExponent
		}
		days = 1 << exp
	}
	return Result{
		ReviewCount:    count,
		LastReviewed:   now,
		NextReviewDate: now.AddDate(0, 0, days),
	}
}

// IsDue reports whether a card scheduled for next is due at now. A card
// that was never reviewed (nil next) is always due. The predicate is
// pure so callers can filter arbitrary collections with it.
func IsDue(next *time.Time, now time.Time) bool {
	if next == nil {
		return true
	}
	return !next.After(now)
}
