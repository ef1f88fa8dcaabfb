package googleads

import (
	"fmt"
	"strings"
)

// Query assembles a GAQL statement from its clauses. It is a string
// templater, not a planner: callers are expected to pass well-formed field
// and predicate fragments.
type Query struct {
	selects    []string
	resource   string
	conditions []string
	orderBy    string
	limit      int
}

// NewQuery starts a query against the given resource.
func NewQuery(resource string) *Query {
	return &Query{resource: resource}
}

// Select appends fields to the SELECT clause.
func (q *Query) Select(fields ...string) *Query {
	q.selects = append(q.selects, fields...)
	return q
}

// Where appends a predicate; predicates are joined with AND.
func (q *Query) Where(condition string) *Query {
	if condition != "" {
		q.conditions = append(q.conditions, condition)
	}
	return q
}

// During restricts the query to the reporting window.
func (q *Query) During(r DateRange) *Query {
	return q.Where(r.Condition())
}

// OrderBy sets the ORDER BY clause.
func (q *Query) OrderBy(clause string) *Query {
	q.orderBy = clause
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Build renders the GAQL string.
func (q *Query) Build() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(q.selects, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(q.resource)
	if len(q.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.conditions, " AND "))
	}
	if q.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.orderBy)
	}
	if q.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", q.limit))
	}
	return sb.String()
}

var baseMetrics = []string{
	"metrics.impressions",
	"metrics.clicks",
	"metrics.cost_micros",
	"metrics.conversions",
	"metrics.conversions_value",
}

// CampaignPerformanceQuery selects per-campaign totals for the window.
// statuses defaults to ENABLED when empty.
func CampaignPerformanceQuery(r DateRange, statuses []string) string {
	q := NewQuery("campaign").
		Select("campaign.id", "campaign.name", "campaign.status", "campaign.advertising_channel_type").
		Select(baseMetrics...).
		Where(statusCondition("campaign.status", statuses)).
		During(r)
	return q.Build()
}

// AdGroupPerformanceQuery selects per-ad-group totals, optionally scoped to a
// single campaign.
func AdGroupPerformanceQuery(r DateRange, campaignID string) string {
	q := NewQuery("ad_group").
		Select("ad_group.id", "ad_group.name", "ad_group.status", "campaign.id", "campaign.name").
		Select(baseMetrics...).
		Where("ad_group.status = 'ENABLED'").
		During(r)
	if campaignID != "" {
		q.Where(fmt.Sprintf("campaign.id = %s", campaignID))
	}
	return q.Build()
}

// KeywordPerformanceQuery selects keyword rows ordered by spend.
func KeywordPerformanceQuery(r DateRange, limit int) string {
	return NewQuery("keyword_view").
		Select(
			"ad_group_criterion.criterion_id",
			"ad_group_criterion.keyword.text",
			"ad_group_criterion.keyword.match_type",
			"ad_group_criterion.quality_info.quality_score",
			"campaign.name",
			"ad_group.name",
		).
		Select(baseMetrics...).
		Where("ad_group_criterion.status = 'ENABLED'").
		During(r).
		OrderBy("metrics.cost_micros DESC").
		Limit(limit).
		Build()
}

// ShoppingPerformanceQuery selects shopping rows segmented by product.
func ShoppingPerformanceQuery(r DateRange) string {
	return NewQuery("shopping_performance_view").
		Select("segments.product_item_id", "segments.product_title", "campaign.id").
		Select(baseMetrics...).
		During(r).
		Build()
}

// AuctionInsightQuery selects campaign auction-insight metrics segmented by
// competing domain.
func AuctionInsightQuery(r DateRange) string {
	return NewQuery("campaign").
		Select(
			"campaign.id",
			"segments.auction_insight_domain",
			"metrics.impressions",
			"metrics.auction_insight_search_impression_share",
			"metrics.auction_insight_search_overlap_rate",
			"metrics.auction_insight_search_outranking_share",
			"metrics.auction_insight_search_position_above_rate",
			"metrics.auction_insight_search_top_impression_percentage",
		).
		During(r).
		Build()
}

// DailyPerformanceQuery selects account-level daily totals for charting.
func DailyPerformanceQuery(r DateRange) string {
	return NewQuery("customer").
		Select("segments.date").
		Select(baseMetrics...).
		During(r).
		OrderBy("segments.date ASC").
		Build()
}

// ChildAccountsQuery lists direct child accounts of the MCC.
func ChildAccountsQuery() string {
	return NewQuery("customer_client").
		Select(
			"customer_client.client_customer",
			"customer_client.descriptive_name",
			"customer_client.currency_code",
			"customer_client.status",
		).
		Where("customer_client.level = 1").
		Build()
}

var allowedStatuses = map[string]struct{}{
	"ENABLED": {},
	"PAUSED":  {},
	"REMOVED": {},
}

func statusCondition(field string, statuses []string) string {
	quoted := make([]string, 0, len(statuses))
	for _, status := range statuses {
		normalized := strings.ToUpper(strings.TrimSpace(status))
		if _, ok := allowedStatuses[normalized]; ok {
			quoted = append(quoted, fmt.Sprintf("'%s'", normalized))
		}
	}
	if len(quoted) == 0 {
		return fmt.Sprintf("%s = 'ENABLED'", field)
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(quoted, ", "))
}
