package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

func auctionRow(campaignID int64, domain string, impressions int64, impressionShare, outranking float64) googleads.Row {
	return googleads.Row{
		Campaign: googleads.Campaign{ID: googleads.FlexInt64(campaignID)},
		Segments: googleads.Segments{AuctionInsightDomain: domain},
		Metrics: googleads.Metrics{
			Impressions:                         googleads.FlexInt64(impressions),
			AuctionInsightSearchImpressionShare: impressionShare,
			AuctionInsightSearchOutrankingShare: outranking,
		},
	}
}

func TestAuctionReportWeightsSharesByImpressions(t *testing.T) {
	client := &stubAdsClient{fn: func(_, _ string) ([]googleads.Row, error) {
		return []googleads.Row{
			auctionRow(1, "competitor.example", 9000, 0.8, 0.6),
			auctionRow(2, "competitor.example", 1000, 0.2, 0.1),
			auctionRow(1, "other.example", 9000, 0.3, 0.2),
		}, nil
	}}

	svc := NewAuctionReportService(client, cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())
	report, _, err := svc.GetReport(context.Background(), "5756290882", AuctionReportParams{Range: reportRange(t)})
	require.NoError(t, err)

	require.Len(t, report.Domains, 2)
	// Sorted by impression share descending.
	top := report.Domains[0]
	require.Equal(t, "competitor.example", top.Domain)
	// (0.8*9000 + 0.2*1000) / 10000
	require.InDelta(t, 0.74, top.ImpressionShare, 0.0001)
	require.InDelta(t, 0.55, top.OutrankingShare, 0.0001)
	require.Equal(t, 2, top.Campaigns)

	require.Equal(t, "other.example", report.Domains[1].Domain)
	require.Equal(t, 1, report.Domains[1].Campaigns)
}

func TestAuctionReportSkipsRowsWithoutDomain(t *testing.T) {
	client := &stubAdsClient{fn: func(_, _ string) ([]googleads.Row, error) {
		return []googleads.Row{
			auctionRow(1, "", 9000, 0.9, 0.9),
			auctionRow(1, "competitor.example", 1000, 0.5, 0.5),
		}, nil
	}}

	svc := NewAuctionReportService(client, cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())
	report, _, err := svc.GetReport(context.Background(), "5756290882", AuctionReportParams{Range: reportRange(t)})
	require.NoError(t, err)
	require.Len(t, report.Domains, 1)
}
