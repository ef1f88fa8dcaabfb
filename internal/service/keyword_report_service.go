package service

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/dto"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

const (
	defaultKeywordLimit = 50
	maxKeywordLimit     = 200
)

// KeywordReportParams scope the keyword report.
type KeywordReportParams struct {
	Range googleads.DateRange
	Limit int
}

// KeywordReportService produces the top-spending keywords report.
type KeywordReportService interface {
	GetReport(ctx context.Context, customerID string, params KeywordReportParams) (dto.KeywordReportResponse, bool, error)
}

type keywordReportService struct {
	client AdsClient
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewKeywordReportService builds the keyword report aggregator.
func NewKeywordReportService(client AdsClient, store cache.Store, ttl time.Duration, logger zerolog.Logger) KeywordReportService {
	return &keywordReportService{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "keyword_report_service").Logger(),
	}
}

func (s *keywordReportService) GetReport(ctx context.Context, customerID string, params KeywordReportParams) (dto.KeywordReportResponse, bool, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultKeywordLimit
	}
	if limit > maxKeywordLimit {
		limit = maxKeywordLimit
	}

	values := url.Values{}
	values.Set("range", params.Range.Label())
	values.Set("limit", strconv.Itoa(limit))
	key := cache.Key("keywords", customerID, values)

	var cached dto.KeywordReportResponse
	if cacheRead(ctx, s.store, key, &cached) {
		return cached, true, nil
	}

	rows, err := s.client.Search(ctx, customerID, googleads.KeywordPerformanceQuery(params.Range, limit))
	if err != nil {
		return dto.KeywordReportResponse{}, false, err
	}

	keywords := make([]dto.KeywordRow, 0, len(rows))
	totals := &accumulator{}
	for _, row := range rows {
		totals.add(row.Metrics)
		acc := accumulator{}
		acc.add(row.Metrics)
		keywords = append(keywords, dto.KeywordRow{
			CriterionID:  row.AdGroupCriterion.CriterionID.Int64(),
			Text:         row.AdGroupCriterion.Keyword.Text,
			MatchType:    row.AdGroupCriterion.Keyword.MatchType,
			QualityScore: row.AdGroupCriterion.QualityInfo.QualityScore,
			CampaignName: row.Campaign.Name,
			AdGroupName:  row.AdGroup.Name,
			Metrics:      acc.metrics(),
		})
	}

	// The query orders by spend already; keep the order stable after the
	// metric derivation pass.
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Metrics.Cost > keywords[j].Metrics.Cost
	})

	response := dto.KeywordReportResponse{Keywords: keywords, Totals: totals.metrics()}
	cacheWrite(ctx, s.store, key, response, s.ttl)
	return response, false, nil
}
