package service

import (
	"context"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/config"
	"github.com/justcarpets/ads-dashboard-api/internal/dto"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

// MccOverviewParams scope the multi-account rollup.
type MccOverviewParams struct {
	Range googleads.DateRange
}

// MccOverviewService rolls up campaign totals across every registry account.
type MccOverviewService interface {
	GetOverview(ctx context.Context, params MccOverviewParams) (dto.MccOverviewResponse, bool, error)
}

type mccOverviewService struct {
	client   AdsClient
	registry *config.Registry
	store    cache.Store
	ttl      time.Duration
	workers  int
	logger   zerolog.Logger
}

// NewMccOverviewService builds the MCC rollup aggregator. workers bounds the
// per-account fan-out.
func NewMccOverviewService(client AdsClient, registry *config.Registry, store cache.Store, ttl time.Duration, workers int, logger zerolog.Logger) MccOverviewService {
	if workers <= 0 {
		workers = 4
	}
	return &mccOverviewService{
		client:   client,
		registry: registry,
		store:    store,
		ttl:      ttl,
		workers:  workers,
		logger:   logger.With().Str("component", "mcc_overview_service").Logger(),
	}
}

func (s *mccOverviewService) GetOverview(ctx context.Context, params MccOverviewParams) (dto.MccOverviewResponse, bool, error) {
	values := url.Values{}
	values.Set("range", params.Range.Label())
	key := cache.Key("mcc_overview", "", values)

	tracer := otel.Tracer("github.com/justcarpets/ads-dashboard-api/internal/service/mcc_overview")
	ctx, span := tracer.Start(ctx, "report.mcc_overview")
	span.SetAttributes(attribute.String("report.range", params.Range.Label()))
	defer span.End()

	var cached dto.MccOverviewResponse
	if cacheRead(ctx, s.store, key, &cached) {
		span.SetAttributes(attribute.Bool("report.cache_hit", true))
		return cached, true, nil
	}

	accounts := s.registry.Accounts()
	summaries := make([]dto.MccAccountSummary, len(accounts))

	// One query per account; each goroutine owns its slot so no locking is
	// needed. A failing account keeps its row and does not cancel siblings.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	query := googleads.CampaignPerformanceQuery(params.Range, nil)

	for i, account := range accounts {
		i, account := i, account
		group.Go(func() error {
			summary := dto.MccAccountSummary{
				Market:     account.Market,
				CustomerID: account.CustomerID,
			}

			rows, err := s.client.Search(groupCtx, account.CustomerID, query)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("market", account.Market).
					Str("customer_id", account.CustomerID).
					Msg("account fetch failed, degrading to partial rollup")
				summary.Error = err.Error()
				summaries[i] = summary
				return nil
			}

			acc := &accumulator{}
			campaigns := make(map[int64]struct{})
			for _, row := range rows {
				acc.add(row.Metrics)
				campaigns[row.Campaign.ID.Int64()] = struct{}{}
			}
			summary.Metrics = acc.metrics()
			summary.Campaigns = len(campaigns)
			summaries[i] = summary
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		return dto.MccOverviewResponse{}, false, err
	}

	totals := &accumulator{}
	failed := 0
	for _, summary := range summaries {
		if summary.Error != "" {
			failed++
			continue
		}
		totals.impressions += summary.Metrics.Impressions
		totals.clicks += summary.Metrics.Clicks
		totals.cost += summary.Metrics.Cost
		totals.conversions += summary.Metrics.Conversions
		totals.conversionsValue += summary.Metrics.ConversionsValue
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Metrics.Cost > summaries[j].Metrics.Cost
	})

	response := dto.MccOverviewResponse{
		Accounts:       summaries,
		Totals:         totals.metrics(),
		AccountCount:   len(accounts),
		FailedAccounts: failed,
	}
	span.SetAttributes(
		attribute.Int("report.accounts", len(accounts)),
		attribute.Int("report.failed_accounts", failed),
	)

	// Partial rollups are not memoised so a transient account failure heals
	// on the next request instead of after the TTL.
	if failed == 0 {
		cacheWrite(ctx, s.store, key, response, s.ttl)
	}
	return response, false, nil
}
