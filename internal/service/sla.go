package service

import (
	"math"
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// SLADays returns the elapsed calendar days between receipt and closing. When
// no closing date exists the given reference instant bounds the interval, so
// the value for an open case grows as it is recomputed. Partial days always
// round up.
func SLADays(received time.Time, closing *time.Time, now time.Time) int {
	end := now
	if closing != nil {
		end = *closing
	}
	diff := end.Sub(received)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// ComplaintSLADays computes the SLA for one case, using the conclusion's
// closing date when present.
func ComplaintSLADays(complaint *domain.Complaint, now time.Time) int {
	var closing *time.Time
	if complaint.Conclusion != nil {
		closing = &complaint.Conclusion.ClosingDate
	}
	return SLADays(complaint.ReceivedDate, closing, now)
}

// AverageSLADays is the mean SLA across cases, rounded to the nearest day.
func AverageSLADays(complaints []domain.Complaint, now time.Time) int {
	if len(complaints) == 0 {
		return 0
	}
	total := 0
	for i := range complaints {
		total += ComplaintSLADays(&complaints[i], now)
	}
	return int(math.Round(float64(total) / float64(len(complaints))))
}
