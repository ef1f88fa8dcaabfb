package service

import (
	"context"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/dto"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

// TimeseriesReportParams scope the daily series report.
type TimeseriesReportParams struct {
	Range googleads.DateRange
}

// TimeseriesReportService produces the account-level daily series the
// dashboard charts.
type TimeseriesReportService interface {
	GetReport(ctx context.Context, customerID string, params TimeseriesReportParams) (dto.TimeseriesResponse, bool, error)
}

type timeseriesReportService struct {
	client AdsClient
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewTimeseriesReportService builds the daily series aggregator.
func NewTimeseriesReportService(client AdsClient, store cache.Store, ttl time.Duration, logger zerolog.Logger) TimeseriesReportService {
	return &timeseriesReportService{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "timeseries_report_service").Logger(),
	}
}

func (s *timeseriesReportService) GetReport(ctx context.Context, customerID string, params TimeseriesReportParams) (dto.TimeseriesResponse, bool, error) {
	values := url.Values{}
	values.Set("range", params.Range.Label())
	key := cache.Key("timeseries", customerID, values)

	var cached dto.TimeseriesResponse
	if cacheRead(ctx, s.store, key, &cached) {
		return cached, true, nil
	}

	rows, err := s.client.Search(ctx, customerID, googleads.DailyPerformanceQuery(params.Range))
	if err != nil {
		return dto.TimeseriesResponse{}, false, err
	}

	byDate := make(map[string]*accumulator)
	totals := &accumulator{}
	for _, row := range rows {
		date := row.Segments.Date
		acc, ok := byDate[date]
		if !ok {
			acc = &accumulator{}
			byDate[date] = acc
		}
		acc.add(row.Metrics)
		totals.add(row.Metrics)
	}

	points := make([]dto.TimeseriesPoint, 0, len(byDate))
	for date, acc := range byDate {
		points = append(points, dto.TimeseriesPoint{Date: date, Metrics: acc.metrics()})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	response := dto.TimeseriesResponse{Points: points, Totals: totals.metrics()}
	cacheWrite(ctx, s.store, key, response, s.ttl)
	return response, false, nil
}
