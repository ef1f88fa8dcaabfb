package service

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/dto"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

// CampaignReportParams scope the campaign report.
type CampaignReportParams struct {
	Range    googleads.DateRange
	Statuses []string
	Compare  bool
}

// CampaignReportService produces the per-campaign dashboard report.
type CampaignReportService interface {
	GetReport(ctx context.Context, customerID string, params CampaignReportParams) (dto.CampaignReportResponse, bool, error)
}

type campaignReportService struct {
	client AdsClient
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCampaignReportService builds the campaign report aggregator.
func NewCampaignReportService(client AdsClient, store cache.Store, ttl time.Duration, logger zerolog.Logger) CampaignReportService {
	return &campaignReportService{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "campaign_report_service").Logger(),
	}
}

func (s *campaignReportService) GetReport(ctx context.Context, customerID string, params CampaignReportParams) (dto.CampaignReportResponse, bool, error) {
	key := s.cacheKey(customerID, params)

	tracer := otel.Tracer("github.com/justcarpets/ads-dashboard-api/internal/service/campaign_report")
	ctx, span := tracer.Start(ctx, "report.campaigns")
	span.SetAttributes(
		attribute.String("report.customer_id", customerID),
		attribute.String("report.range", params.Range.Label()),
	)
	defer span.End()

	var cached dto.CampaignReportResponse
	if cacheRead(ctx, s.store, key, &cached) {
		span.SetAttributes(attribute.Bool("report.cache_hit", true))
		return cached, true, nil
	}

	var currentRows, previousRows []googleads.Row
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rows, err := s.client.Search(groupCtx, customerID, googleads.CampaignPerformanceQuery(params.Range, params.Statuses))
		currentRows = rows
		return err
	})
	if params.Compare {
		group.Go(func() error {
			rows, err := s.client.Search(groupCtx, customerID, googleads.CampaignPerformanceQuery(params.Range.Previous(), params.Statuses))
			previousRows = rows
			return err
		})
	}
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "campaign_search_failed")
		return dto.CampaignReportResponse{}, false, err
	}

	response := s.buildReport(currentRows, previousRows, params)
	span.SetAttributes(attribute.Int("report.campaigns", len(response.Campaigns)))

	cacheWrite(ctx, s.store, key, response, s.ttl)
	return response, false, nil
}

func (s *campaignReportService) buildReport(rows, previousRows []googleads.Row, params CampaignReportParams) dto.CampaignReportResponse {
	byID := make(map[int64]*accumulator)
	meta := make(map[int64]googleads.Campaign)
	totals := &accumulator{}

	for _, row := range rows {
		id := row.Campaign.ID.Int64()
		acc, ok := byID[id]
		if !ok {
			acc = &accumulator{}
			byID[id] = acc
			meta[id] = row.Campaign
		}
		acc.add(row.Metrics)
		totals.add(row.Metrics)
	}

	var previousByID map[int64]*accumulator
	previousTotals := &accumulator{}
	if params.Compare {
		previousByID = make(map[int64]*accumulator)
		for _, row := range previousRows {
			id := row.Campaign.ID.Int64()
			acc, ok := previousByID[id]
			if !ok {
				acc = &accumulator{}
				previousByID[id] = acc
			}
			acc.add(row.Metrics)
			previousTotals.add(row.Metrics)
		}
	}

	previousLabel := ""
	if params.Compare {
		previousLabel = params.Range.Previous().Label()
	}

	campaigns := make([]dto.CampaignRow, 0, len(byID))
	for id, acc := range byID {
		campaign := meta[id]
		row := dto.CampaignRow{
			ID:          id,
			Name:        campaign.Name,
			Status:      campaign.Status,
			ChannelType: campaign.AdvertisingChannelType,
			Metrics:     acc.metrics(),
		}
		if params.Compare {
			previous := dto.Metrics{}
			if prevAcc, ok := previousByID[id]; ok {
				previous = prevAcc.metrics()
			}
			row.Comparison = comparePeriods(row.Metrics, previous, previousLabel)
		}
		campaigns = append(campaigns, row)
	}

	sort.Slice(campaigns, func(i, j int) bool {
		if campaigns[i].Metrics.Cost != campaigns[j].Metrics.Cost {
			return campaigns[i].Metrics.Cost > campaigns[j].Metrics.Cost
		}
		return campaigns[i].ID < campaigns[j].ID
	})

	response := dto.CampaignReportResponse{
		Campaigns: campaigns,
		Totals:    totals.metrics(),
	}
	if params.Compare {
		response.TotalsComparison = comparePeriods(response.Totals, previousTotals.metrics(), previousLabel)
	}
	return response
}

func (s *campaignReportService) cacheKey(customerID string, params CampaignReportParams) string {
	values := url.Values{}
	values.Set("range", params.Range.Label())
	if len(params.Statuses) > 0 {
		values.Set("status", strings.Join(params.Statuses, ","))
	}
	if params.Compare {
		values.Set("compare", "true")
	}
	return cache.Key("campaigns", customerID, values)
}
