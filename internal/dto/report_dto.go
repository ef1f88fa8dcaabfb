package dto

// CampaignRow is one campaign in the campaign report.
type CampaignRow struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Status      string            `json:"status"`
	ChannelType string            `json:"channel_type"`
	Metrics     Metrics           `json:"metrics"`
	Comparison  *PeriodComparison `json:"comparison,omitempty"`
}

// CampaignReportResponse is the campaign dashboard payload.
type CampaignReportResponse struct {
	Campaigns        []CampaignRow     `json:"campaigns"`
	Totals           Metrics           `json:"totals"`
	TotalsComparison *PeriodComparison `json:"totals_comparison,omitempty"`
}

// AdGroupRow is one ad group in the ad group report.
type AdGroupRow struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	CampaignID   int64   `json:"campaign_id"`
	CampaignName string  `json:"campaign_name"`
	Metrics      Metrics `json:"metrics"`
}

// AdGroupReportResponse is the ad group dashboard payload.
type AdGroupReportResponse struct {
	AdGroups []AdGroupRow `json:"ad_groups"`
	Totals   Metrics      `json:"totals"`
}

// KeywordRow is one keyword in the keyword report.
type KeywordRow struct {
	CriterionID  int64   `json:"criterion_id"`
	Text         string  `json:"text"`
	MatchType    string  `json:"match_type"`
	QualityScore int     `json:"quality_score"`
	CampaignName string  `json:"campaign_name"`
	AdGroupName  string  `json:"ad_group_name"`
	Metrics      Metrics `json:"metrics"`
}

// KeywordReportResponse is the keyword dashboard payload.
type KeywordReportResponse struct {
	Keywords []KeywordRow `json:"keywords"`
	Totals   Metrics      `json:"totals"`
}

// ShoppingRow is one product in the shopping report.
type ShoppingRow struct {
	ProductItemID string  `json:"product_item_id"`
	ProductTitle  string  `json:"product_title"`
	Metrics       Metrics `json:"metrics"`
}

// ShoppingReportResponse is the shopping dashboard payload.
type ShoppingReportResponse struct {
	Products []ShoppingRow `json:"products"`
	Totals   Metrics       `json:"totals"`
}

// AuctionRow aggregates auction-insight metrics for one competing domain.
// Share metrics are impression-weighted averages across campaigns, 0..1.
type AuctionRow struct {
	Domain            string  `json:"domain"`
	ImpressionShare   float64 `json:"impression_share"`
	OverlapRate       float64 `json:"overlap_rate"`
	OutrankingShare   float64 `json:"outranking_share"`
	PositionAboveRate float64 `json:"position_above_rate"`
	TopOfPageRate     float64 `json:"top_of_page_rate"`
	Campaigns         int     `json:"campaigns"`
}

// AuctionReportResponse is the auction insights payload.
type AuctionReportResponse struct {
	Domains []AuctionRow `json:"domains"`
}

// TimeseriesPoint is one day of account-level performance.
type TimeseriesPoint struct {
	Date    string  `json:"date"`
	Metrics Metrics `json:"metrics"`
}

// TimeseriesResponse is the daily-series payload used for charts.
type TimeseriesResponse struct {
	Points []TimeseriesPoint `json:"points"`
	Totals Metrics           `json:"totals"`
}

// MccAccountSummary is one account's rollup inside the MCC overview. A failed
// fetch keeps the row with zero metrics and the error message.
type MccAccountSummary struct {
	Market     string  `json:"market"`
	CustomerID string  `json:"customer_id"`
	Metrics    Metrics `json:"metrics"`
	Campaigns  int     `json:"campaigns"`
	Error      string  `json:"error,omitempty"`
}

// MccOverviewResponse is the multi-account rollup payload. Totals ratios are
// re-derived from summed bases, never averaged averages.
type MccOverviewResponse struct {
	Accounts       []MccAccountSummary `json:"accounts"`
	Totals         Metrics             `json:"totals"`
	AccountCount   int                 `json:"account_count"`
	FailedAccounts int                 `json:"failed_accounts"`
}
