package dto

// Metrics is the base + derived metric set every report row carries. Cost is
// in account currency units; CTR and conversion rate are percentages.
type Metrics struct {
	Impressions      int64   `json:"impressions"`
	Clicks           int64   `json:"clicks"`
	Cost             float64 `json:"cost"`
	Conversions      float64 `json:"conversions"`
	ConversionsValue float64 `json:"conversions_value"`
	CTR              float64 `json:"ctr"`
	AvgCPC           float64 `json:"avg_cpc"`
	ConversionRate   float64 `json:"conversion_rate"`
	CPA              float64 `json:"cpa"`
	ROAS             float64 `json:"roas"`
}

// MetricDelta is one metric diffed against the previous period.
type MetricDelta struct {
	Previous float64 `json:"previous"`
	Change   float64 `json:"change_pct"`
}

// PeriodComparison diffs the headline metrics against the preceding window of
// equal length.
type PeriodComparison struct {
	Range       string      `json:"range"`
	Impressions MetricDelta `json:"impressions"`
	Clicks      MetricDelta `json:"clicks"`
	Cost        MetricDelta `json:"cost"`
	Conversions MetricDelta `json:"conversions"`
	CTR         MetricDelta `json:"ctr"`
	AvgCPC      MetricDelta `json:"avg_cpc"`
}
