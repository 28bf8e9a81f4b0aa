package service

import (
	"context"
	"fmt"
	"time"

	"github.com/toad-frogski/visits/internal/domain"
	"github.com/toad-frogski/visits/internal/plugin"
	"github.com/toad-frogski/visits/internal/repository"
	"github.com/toad-frogski/visits/internal/timeline"
)

type statisticsService struct {
	sessions repository.SessionRepo
	entries  repository.EntryRepo
	registry *plugin.Registry
}

// NewStatisticsService builds the read-side aggregator. The plugin
// registry is passed in explicitly; a nil registry means no extras.
func NewStatisticsService(sessions repository.SessionRepo, entries repository.EntryRepo, registry *plugin.Registry) StatisticsService {
	if registry == nil {
		registry = plugin.NewRegistry()
	}
	return &statisticsService{sessions: sessions, entries: entries, registry: registry}
}

// RangeStatistics produces one DayReport per date in [start, end],
// inclusive. Dates without a session get nil statistics and whatever
// extras the plugins contribute; the range itself never fails on an
// empty day.
func (s *statisticsService) RangeStatistics(ctx context.Context, userID string, start, end time.Time) ([]DayReport, error) {
	startDate := domain.DateOf(start)
	endDate := domain.DateOf(end)
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("statistics range end %s precedes start %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}

	sessions, err := s.sessions.ListByUserDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*domain.Session, len(sessions))
	for _, session := range sessions {
		byDate[session.Date.Format("2006-01-02")] = session
	}

	var reports []DayReport
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		report := DayReport{
			Date:   date,
			Extras: s.registry.Collect(ctx, userID, date),
		}

		if session, ok := byDate[date.Format("2006-01-02")]; ok {
			entries, err := s.entries.ListBySession(ctx, session.ID)
			if err != nil {
				return nil, err
			}
			stats := timeline.Aggregate(entries)
			report.Session = session
			report.Statistics = &stats
		}

		reports = append(reports, report)
	}
	return reports, nil
}
