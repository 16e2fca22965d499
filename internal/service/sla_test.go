package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestSLADaysOpenCase(t *testing.T) {
	received := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, SLADays(received, nil, now))
}

func TestSLADaysClosedCase(t *testing.T) {
	received := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	closing := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// The closing date bounds the interval; the reference instant is ignored.
	assert.Equal(t, 10, SLADays(received, &closing, now))
}

func TestSLADaysPartialDayRoundsUp(t *testing.T) {
	received := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 10, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, SLADays(received, nil, now))
}

func TestSLADaysSameInstant(t *testing.T) {
	received := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, SLADays(received, nil, received))
}

func TestSLADaysMonotonicWhileOpen(t *testing.T) {
	received := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	previous := 0
	for day := 1; day <= 30; day++ {
		now := received.AddDate(0, 0, day)
		current := SLADays(received, nil, now)
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
}

func TestComplaintSLADaysUsesConclusionClosingDate(t *testing.T) {
	complaint := &domain.Complaint{
		ReceivedDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Conclusion: &domain.Conclusion{
			ClosingDate: time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
		},
	}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 7, ComplaintSLADays(complaint, now))
}

func TestAverageSLADays(t *testing.T) {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	complaints := []domain.Complaint{
		{ReceivedDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}, // 10 days
		{ReceivedDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}, // 5 days
	}

	assert.Equal(t, 8, AverageSLADays(complaints, now))
	assert.Equal(t, 0, AverageSLADays(nil, now))
}
