package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/events"
)

const summaryCacheKey = "report:summary"

// ReportSummary carries the dashboard numbers.
type ReportSummary struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	ByCategory     map[string]int `json:"by_category"`
	ByProcedencia  map[string]int `json:"by_procedencia"`
	AverageSLADays int            `json:"average_sla_days"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// ReportService derives read-only dashboard numbers from the aggregates. A
// redis cache fronts the computation; any write through the synchronizer
// invalidates it via the event dispatcher.
type ReportService struct {
	complaints *ComplaintService
	cache      *redis.Client
	ttl        time.Duration
	logger     *zap.Logger
}

// NewReportService constructs the service. cache may be nil, in which case
// every call recomputes.
func NewReportService(complaints *ComplaintService, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{complaints: complaints, cache: cache, ttl: ttl, logger: logger}
}

// RegisterInvalidation drops the cached summary whenever a complaint changes.
func (s *ReportService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	invalidate := func(ctx context.Context, _ events.Event) error {
		s.Invalidate(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventComplaintCreated, invalidate)
	dispatcher.Subscribe(events.EventComplaintUpdated, invalidate)
	dispatcher.Subscribe(events.EventApprovalDecided, invalidate)
}

// Summary returns the dashboard numbers, from cache when fresh.
func (s *ReportService) Summary(ctx context.Context) (*ReportSummary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	complaints, err := s.complaints.List(ctx, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summary := &ReportSummary{
		Total:         len(complaints),
		ByStatus:      make(map[string]int),
		ByCategory:    make(map[string]int),
		ByProcedencia: make(map[string]int),
		GeneratedAt:   now,
	}
	for i := range complaints {
		summary.ByStatus[complaints[i].Status.DisplayName()]++
		if complaints[i].Category != "" {
			summary.ByCategory[complaints[i].Category]++
		}
		if complaints[i].Conclusion != nil {
			summary.ByProcedencia[string(complaints[i].Conclusion.Procedencia)]++
		}
	}
	summary.AverageSLADays = AverageSLADays(complaints, now)

	s.toCache(ctx, summary)
	return summary, nil
}

// Invalidate drops the cached summary.
func (s *ReportService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryCacheKey).Err(); err != nil {
		s.logger.Warn("report cache invalidation failed", zap.Error(err))
	}
}

func (s *ReportService) fromCache(ctx context.Context) *ReportSummary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var summary ReportSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}
	return &summary
}

func (s *ReportService) toCache(ctx context.Context, summary *ReportSummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, summaryCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("report cache write failed", zap.Error(err))
	}
}
