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

// AuctionReportParams scope the auction insights report.
type AuctionReportParams struct {
	Range googleads.DateRange
}

// AuctionReportService aggregates auction-insight metrics per competing
// domain across all campaigns of an account.
type AuctionReportService interface {
	GetReport(ctx context.Context, customerID string, params AuctionReportParams) (dto.AuctionReportResponse, bool, error)
}

type auctionReportService struct {
	client AdsClient
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewAuctionReportService builds the auction insights aggregator.
func NewAuctionReportService(client AdsClient, store cache.Store, ttl time.Duration, logger zerolog.Logger) AuctionReportService {
	return &auctionReportService{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "auction_report_service").Logger(),
	}
}

type domainShares struct {
	impressionShare   weightedShare
	overlapRate       weightedShare
	outrankingShare   weightedShare
	positionAboveRate weightedShare
	topOfPageRate     weightedShare
	campaigns         map[int64]struct{}
}

func (s *auctionReportService) GetReport(ctx context.Context, customerID string, params AuctionReportParams) (dto.AuctionReportResponse, bool, error) {
	values := url.Values{}
	values.Set("range", params.Range.Label())
	key := cache.Key("auctions", customerID, values)

	var cached dto.AuctionReportResponse
	if cacheRead(ctx, s.store, key, &cached) {
		return cached, true, nil
	}

	rows, err := s.client.Search(ctx, customerID, googleads.AuctionInsightQuery(params.Range))
	if err != nil {
		return dto.AuctionReportResponse{}, false, err
	}

	// One row per campaign and domain. Shares are averaged across campaigns
	// weighted by campaign impressions so large campaigns dominate.
	byDomain := make(map[string]*domainShares)
	for _, row := range rows {
		domain := row.Segments.AuctionInsightDomain
		if domain == "" {
			continue
		}
		shares, ok := byDomain[domain]
		if !ok {
			shares = &domainShares{campaigns: make(map[int64]struct{})}
			byDomain[domain] = shares
		}
		weight := float64(row.Metrics.Impressions.Int64())
		shares.impressionShare.add(row.Metrics.AuctionInsightSearchImpressionShare, weight)
		shares.overlapRate.add(row.Metrics.AuctionInsightSearchOverlapRate, weight)
		shares.outrankingShare.add(row.Metrics.AuctionInsightSearchOutrankingShare, weight)
		shares.positionAboveRate.add(row.Metrics.AuctionInsightSearchPositionAboveRate, weight)
		shares.topOfPageRate.add(row.Metrics.AuctionInsightSearchTopImpressionPercentage, weight)
		shares.campaigns[row.Campaign.ID.Int64()] = struct{}{}
	}

	domains := make([]dto.AuctionRow, 0, len(byDomain))
	for domain, shares := range byDomain {
		domains = append(domains, dto.AuctionRow{
			Domain:            domain,
			ImpressionShare:   shares.impressionShare.value(),
			OverlapRate:       shares.overlapRate.value(),
			OutrankingShare:   shares.outrankingShare.value(),
			PositionAboveRate: shares.positionAboveRate.value(),
			TopOfPageRate:     shares.topOfPageRate.value(),
			Campaigns:         len(shares.campaigns),
		})
	}

	sort.Slice(domains, func(i, j int) bool {
		if domains[i].ImpressionShare != domains[j].ImpressionShare {
			return domains[i].ImpressionShare > domains[j].ImpressionShare
		}
		return domains[i].Domain < domains[j].Domain
	})

	response := dto.AuctionReportResponse{Domains: domains}
	cacheWrite(ctx, s.store, key, response, s.ttl)
	return response, false, nil
}
