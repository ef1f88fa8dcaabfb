package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

func campaignRow(id int64, name string, m googleads.Metrics) googleads.Row {
	return googleads.Row{
		Campaign: googleads.Campaign{
			ID:                     googleads.FlexInt64(id),
			Name:                   name,
			Status:                 "ENABLED",
			AdvertisingChannelType: "SEARCH",
		},
		Metrics: m,
	}
}

func reportRange(t *testing.T) googleads.DateRange {
	t.Helper()
	r, err := googleads.ParseDateRange("", "2024-03-01", "2024-03-07", time.Now())
	require.NoError(t, err)
	return r
}

func TestCampaignReportAggregatesAndSorts(t *testing.T) {
	client := &stubAdsClient{fn: func(_, _ string) ([]googleads.Row, error) {
		return []googleads.Row{
			campaignRow(11, "Brand NL", metricsRow(1000, 50, 25_000_000, 5, 200)),
			campaignRow(12, "Shopping NL", metricsRow(5000, 200, 100_000_000, 20, 1600)),
		}, nil
	}}

	svc := NewCampaignReportService(client, cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())
	report, cacheHit, err := svc.GetReport(context.Background(), "5756290882", CampaignReportParams{Range: reportRange(t)})
	require.NoError(t, err)
	require.False(t, cacheHit)

	require.Len(t, report.Campaigns, 2)
	// Sorted by spend descending.
	require.Equal(t, int64(12), report.Campaigns[0].ID)
	require.InDelta(t, 100.0, report.Campaigns[0].Metrics.Cost, 0.0001)
	require.InDelta(t, 4.0, report.Campaigns[0].Metrics.CTR, 0.0001)
	require.InDelta(t, 16.0, report.Campaigns[0].Metrics.ROAS, 0.0001)

	require.Equal(t, int64(6000), report.Totals.Impressions)
	require.InDelta(t, 125.0, report.Totals.Cost, 0.0001)
	require.Nil(t, report.TotalsComparison)
}

func TestCampaignReportCacheHit(t *testing.T) {
	calls := 0
	client := &stubAdsClient{fn: func(_, _ string) ([]googleads.Row, error) {
		calls++
		return []googleads.Row{campaignRow(11, "Brand NL", metricsRow(100, 10, 1_000_000, 0, 0))}, nil
	}}

	svc := NewCampaignReportService(client, cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())
	params := CampaignReportParams{Range: reportRange(t)}

	first, cacheHit, err := svc.GetReport(context.Background(), "5756290882", params)
	require.NoError(t, err)
	require.False(t, cacheHit)

	second, cacheHit, err := svc.GetReport(context.Background(), "5756290882", params)
	require.NoError(t, err)
	require.True(t, cacheHit)
	require.Equal(t, first, second)
	require.Equal(t, 1, calls)
}

func TestCampaignReportComparisonRunsPreviousPeriod(t *testing.T) {
	client := &stubAdsClient{fn: func(_, query string) ([]googleads.Row, error) {
		if strings.Contains(query, "2024-03-01") {
			return []googleads.Row{campaignRow(11, "Brand NL", metricsRow(1200, 60, 30_000_000, 6, 300))}, nil
		}
		// Previous window 2024-02-23..2024-02-29.
		return []googleads.Row{campaignRow(11, "Brand NL", metricsRow(1000, 50, 25_000_000, 5, 200))}, nil
	}}

	svc := NewCampaignReportService(client, cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())
	report, _, err := svc.GetReport(context.Background(), "5756290882", CampaignReportParams{
		Range:   reportRange(t),
		Compare: true,
	})
	require.NoError(t, err)
	require.Equal(t, 2, client.callCount())

	require.Len(t, report.Campaigns, 1)
	comparison := report.Campaigns[0].Comparison
	require.NotNil(t, comparison)
	require.Equal(t, "2024-02-23..2024-02-29", comparison.Range)
	require.InDelta(t, 1000, comparison.Impressions.Previous, 0.0001)
	require.InDelta(t, 20.0, comparison.Impressions.Change, 0.0001)
	require.InDelta(t, 20.0, comparison.Cost.Change, 0.0001)

	require.NotNil(t, report.TotalsComparison)
	require.InDelta(t, 25.0, report.TotalsComparison.Cost.Previous, 0.0001)
}

func TestCampaignReportComparedAndPlainRequestsHaveDistinctCacheKeys(t *testing.T) {
	client := &stubAdsClient{fn: func(_, _ string) ([]googleads.Row, error) {
		return []googleads.Row{campaignRow(11, "Brand NL", metricsRow(100, 10, 1_000_000, 0, 0))}, nil
	}}

	store := cache.NewMemory(time.Minute)
	svc := NewCampaignReportService(client, store, time.Minute, zerolog.Nop())
	params := CampaignReportParams{Range: reportRange(t)}

	_, _, err := svc.GetReport(context.Background(), "5756290882", params)
	require.NoError(t, err)

	params.Compare = true
	_, cacheHit, err := svc.GetReport(context.Background(), "5756290882", params)
	require.NoError(t, err)
	require.False(t, cacheHit)
}

func TestCampaignReportPropagatesAPIError(t *testing.T) {
	wantErr := fmt.Errorf("quota exceeded")
	client := &stubAdsClient{fn: func(_, _ string) ([]googleads.Row, error) {
		return nil, wantErr
	}}

	svc := NewCampaignReportService(client, cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())
	_, _, err := svc.GetReport(context.Background(), "5756290882", CampaignReportParams{Range: reportRange(t)})
	require.ErrorIs(t, err, wantErr)
}

func TestCampaignReportEmptyResultIsNotNull(t *testing.T) {
	client := &stubAdsClient{fn: func(_, _ string) ([]googleads.Row, error) {
		return nil, nil
	}}

	svc := NewCampaignReportService(client, cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())
	report, _, err := svc.GetReport(context.Background(), "5756290882", CampaignReportParams{Range: reportRange(t)})
	require.NoError(t, err)
	require.NotNil(t, report.Campaigns)
	require.Empty(t, report.Campaigns)
	require.Zero(t, report.Totals.Impressions)
}
