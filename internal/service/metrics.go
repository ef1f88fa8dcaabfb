package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/dto"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

// accumulator sums base metrics across rows before ratios are derived.
// Deriving from the sums keeps aggregate ratios weighted correctly; averaging
// per-row ratios would not.
type accumulator struct {
	impressions      int64
	clicks           int64
	cost             float64
	conversions      float64
	conversionsValue float64
}

func (a *accumulator) add(m googleads.Metrics) {
	a.impressions += m.Impressions.Int64()
	a.clicks += m.Clicks.Int64()
	a.cost += m.Cost()
	a.conversions += m.Conversions
	a.conversionsValue += m.ConversionsValue
}

func (a *accumulator) metrics() dto.Metrics {
	return deriveRatios(a.impressions, a.clicks, a.cost, a.conversions, a.conversionsValue)
}

// deriveRatios fills in CTR, average CPC, conversion rate, CPA and ROAS from
// the base metrics, guarding every divide-by-zero with 0.
func deriveRatios(impressions, clicks int64, cost, conversions, conversionsValue float64) dto.Metrics {
	m := dto.Metrics{
		Impressions:      impressions,
		Clicks:           clicks,
		Cost:             cost,
		Conversions:      conversions,
		ConversionsValue: conversionsValue,
	}
	if impressions > 0 {
		m.CTR = float64(clicks) / float64(impressions) * 100
	}
	if clicks > 0 {
		m.AvgCPC = cost / float64(clicks)
		m.ConversionRate = conversions / float64(clicks) * 100
	}
	if conversions > 0 {
		m.CPA = cost / conversions
	}
	if cost > 0 {
		m.ROAS = conversionsValue / cost
	}
	return m
}

// weightedShare folds an impression-share style metric as a weighted average.
type weightedShare struct {
	sum    float64
	weight float64
}

func (w *weightedShare) add(share, weight float64) {
	w.sum += share * weight
	w.weight += weight
}

func (w *weightedShare) value() float64 {
	if w.weight == 0 {
		return 0
	}
	return w.sum / w.weight
}

func delta(current, previous float64) dto.MetricDelta {
	d := dto.MetricDelta{Previous: previous}
	if previous != 0 {
		d.Change = (current - previous) / previous * 100
	}
	return d
}

// comparePeriods diffs the headline metrics of two windows.
func comparePeriods(current, previous dto.Metrics, previousRange string) *dto.PeriodComparison {
	return &dto.PeriodComparison{
		Range:       previousRange,
		Impressions: delta(float64(current.Impressions), float64(previous.Impressions)),
		Clicks:      delta(float64(current.Clicks), float64(previous.Clicks)),
		Cost:        delta(current.Cost, previous.Cost),
		Conversions: delta(current.Conversions, previous.Conversions),
		CTR:         delta(current.CTR, previous.CTR),
		AvgCPC:      delta(current.AvgCPC, previous.AvgCPC),
	}
}

func cacheRead(ctx context.Context, store cache.Store, key string, target interface{}) bool {
	if store == nil {
		return false
	}
	payload, found := store.Get(ctx, key)
	if !found {
		return false
	}
	return json.Unmarshal(payload, target) == nil
}

func cacheWrite(ctx context.Context, store cache.Store, key string, value interface{}, ttl time.Duration) {
	if store == nil {
		return
	}
	if payload, err := json.Marshal(value); err == nil {
		store.Set(ctx, key, payload, ttl)
	}
}
