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

// ShoppingReportParams scope the shopping report.
type ShoppingReportParams struct {
	Range googleads.DateRange
}

// ShoppingReportService produces the per-product shopping report.
type ShoppingReportService interface {
	GetReport(ctx context.Context, customerID string, params ShoppingReportParams) (dto.ShoppingReportResponse, bool, error)
}

type shoppingReportService struct {
	client AdsClient
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewShoppingReportService builds the shopping report aggregator.
func NewShoppingReportService(client AdsClient, store cache.Store, ttl time.Duration, logger zerolog.Logger) ShoppingReportService {
	return &shoppingReportService{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "shopping_report_service").Logger(),
	}
}

func (s *shoppingReportService) GetReport(ctx context.Context, customerID string, params ShoppingReportParams) (dto.ShoppingReportResponse, bool, error) {
	values := url.Values{}
	values.Set("range", params.Range.Label())
	key := cache.Key("shopping", customerID, values)

	var cached dto.ShoppingReportResponse
	if cacheRead(ctx, s.store, key, &cached) {
		return cached, true, nil
	}

	rows, err := s.client.Search(ctx, customerID, googleads.ShoppingPerformanceQuery(params.Range))
	if err != nil {
		return dto.ShoppingReportResponse{}, false, err
	}

	// Shopping rows arrive per campaign and product; fold them by product so
	// a product advertised from several campaigns shows once.
	byProduct := make(map[string]*accumulator)
	titles := make(map[string]string)
	totals := &accumulator{}
	for _, row := range rows {
		id := row.Segments.ProductItemID
		acc, ok := byProduct[id]
		if !ok {
			acc = &accumulator{}
			byProduct[id] = acc
			titles[id] = row.Segments.ProductTitle
		}
		acc.add(row.Metrics)
		totals.add(row.Metrics)
	}

	products := make([]dto.ShoppingRow, 0, len(byProduct))
	for id, acc := range byProduct {
		products = append(products, dto.ShoppingRow{
			ProductItemID: id,
			ProductTitle:  titles[id],
			Metrics:       acc.metrics(),
		})
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Metrics.Cost != products[j].Metrics.Cost {
			return products[i].Metrics.Cost > products[j].Metrics.Cost
		}
		return products[i].ProductItemID < products[j].ProductItemID
	})

	response := dto.ShoppingReportResponse{Products: products, Totals: totals.metrics()}
	cacheWrite(ctx, s.store, key, response, s.ttl)
	return response, false, nil
}
