package service

import (
	"context"
	"sync"

	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

type searchCall struct {
	customerID string
	query      string
}

// stubAdsClient answers Search by delegating to fn and records every call.
type stubAdsClient struct {
	mu        sync.Mutex
	calls     []searchCall
	fn        func(customerID, query string) ([]googleads.Row, error)
	customers []string
	listErr   error
}

func (s *stubAdsClient) Search(_ context.Context, customerID, query string) ([]googleads.Row, error) {
	s.mu.Lock()
	s.calls = append(s.calls, searchCall{customerID: customerID, query: query})
	s.mu.Unlock()
	return s.fn(customerID, query)
}

func (s *stubAdsClient) ListAccessibleCustomers(context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.customers, nil
}

func (s *stubAdsClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func metricsRow(impressions, clicks, costMicros int64, conversions, conversionsValue float64) googleads.Metrics {
	return googleads.Metrics{
		Impressions:      googleads.FlexInt64(impressions),
		Clicks:           googleads.FlexInt64(clicks),
		CostMicros:       googleads.FlexInt64(costMicros),
		Conversions:      conversions,
		ConversionsValue: conversionsValue,
	}
}
