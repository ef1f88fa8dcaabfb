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

// AdGroupReportParams scope the ad group report.
type AdGroupReportParams struct {
	Range      googleads.DateRange
	CampaignID string
}

// AdGroupReportService produces the per-ad-group dashboard report.
type AdGroupReportService interface {
	GetReport(ctx context.Context, customerID string, params AdGroupReportParams) (dto.AdGroupReportResponse, bool, error)
}

type adGroupReportService struct {
	client AdsClient
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewAdGroupReportService builds the ad group report aggregator.
func NewAdGroupReportService(client AdsClient, store cache.Store, ttl time.Duration, logger zerolog.Logger) AdGroupReportService {
	return &adGroupReportService{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "adgroup_report_service").Logger(),
	}
}

func (s *adGroupReportService) GetReport(ctx context.Context, customerID string, params AdGroupReportParams) (dto.AdGroupReportResponse, bool, error) {
	values := url.Values{}
	values.Set("range", params.Range.Label())
	values.Set("campaign_id", params.CampaignID)
	key := cache.Key("adgroups", customerID, values)

	var cached dto.AdGroupReportResponse
	if cacheRead(ctx, s.store, key, &cached) {
		return cached, true, nil
	}

	rows, err := s.client.Search(ctx, customerID, googleads.AdGroupPerformanceQuery(params.Range, params.CampaignID))
	if err != nil {
		return dto.AdGroupReportResponse{}, false, err
	}

	type adGroupMeta struct {
		adGroup  googleads.AdGroup
		campaign googleads.Campaign
	}
	byID := make(map[int64]*accumulator)
	meta := make(map[int64]adGroupMeta)
	totals := &accumulator{}

	for _, row := range rows {
		id := row.AdGroup.ID.Int64()
		acc, ok := byID[id]
		if !ok {
			acc = &accumulator{}
			byID[id] = acc
			meta[id] = adGroupMeta{adGroup: row.AdGroup, campaign: row.Campaign}
		}
		acc.add(row.Metrics)
		totals.add(row.Metrics)
	}

	adGroups := make([]dto.AdGroupRow, 0, len(byID))
	for id, acc := range byID {
		m := meta[id]
		adGroups = append(adGroups, dto.AdGroupRow{
			ID:           id,
			Name:         m.adGroup.Name,
			Status:       m.adGroup.Status,
			CampaignID:   m.campaign.ID.Int64(),
			CampaignName: m.campaign.Name,
			Metrics:      acc.metrics(),
		})
	}

	sort.Slice(adGroups, func(i, j int) bool {
		if adGroups[i].Metrics.Cost != adGroups[j].Metrics.Cost {
			return adGroups[i].Metrics.Cost > adGroups[j].Metrics.Cost
		}
		return adGroups[i].ID < adGroups[j].ID
	})

	response := dto.AdGroupReportResponse{AdGroups: adGroups, Totals: totals.metrics()}
	cacheWrite(ctx, s.store, key, response, s.ttl)
	return response, false, nil
}
