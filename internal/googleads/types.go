package googleads

import (
	"bytes"
	"fmt"
	"strconv"
)

// FlexInt64 decodes the int64 metric fields the REST API serialises as JSON
// strings ("costMicros":"1230000") while tolerating plain numbers.
type FlexInt64 int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	value, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid int64 metric %q: %w", data, err)
	}
	*f = FlexInt64(value)
	return nil
}

// Int64 returns the plain integer value.
func (f FlexInt64) Int64() int64 {
	return int64(f)
}

// Metrics carries the metric fields the dashboard selects. Micros fields are
// converted to currency units by the callers (divide by 1e6).
type Metrics struct {
	Impressions      FlexInt64 `json:"impressions"`
	Clicks           FlexInt64 `json:"clicks"`
	CostMicros       FlexInt64 `json:"costMicros"`
	Conversions      float64   `json:"conversions"`
	ConversionsValue float64   `json:"conversionsValue"`

	AuctionInsightSearchImpressionShare         float64 `json:"auctionInsightSearchImpressionShare"`
	AuctionInsightSearchOverlapRate             float64 `json:"auctionInsightSearchOverlapRate"`
	AuctionInsightSearchOutrankingShare         float64 `json:"auctionInsightSearchOutrankingShare"`
	AuctionInsightSearchPositionAboveRate       float64 `json:"auctionInsightSearchPositionAboveRate"`
	AuctionInsightSearchTopImpressionPercentage float64 `json:"auctionInsightSearchTopImpressionPercentage"`
}

// Cost returns the spend in currency units.
func (m Metrics) Cost() float64 {
	return float64(m.CostMicros) / 1e6
}

// Campaign is the campaign attribute slice of a row.
type Campaign struct {
	ID                     FlexInt64 `json:"id"`
	Name                   string    `json:"name"`
	Status                 string    `json:"status"`
	AdvertisingChannelType string    `json:"advertisingChannelType"`
}

// AdGroup is the ad group attribute slice of a row.
type AdGroup struct {
	ID     FlexInt64 `json:"id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
}

// Keyword is the criterion keyword info.
type Keyword struct {
	Text      string `json:"text"`
	MatchType string `json:"matchType"`
}

// QualityInfo carries the keyword quality score.
type QualityInfo struct {
	QualityScore int `json:"qualityScore"`
}

// AdGroupCriterion is the criterion attribute slice of a keyword row.
type AdGroupCriterion struct {
	CriterionID FlexInt64   `json:"criterionId"`
	Status      string      `json:"status"`
	Keyword     Keyword     `json:"keyword"`
	QualityInfo QualityInfo `json:"qualityInfo"`
}

// Segments carries the segmentation fields used by the dashboard reports.
type Segments struct {
	Date                 string `json:"date"`
	ProductItemID        string `json:"productItemId"`
	ProductTitle         string `json:"productTitle"`
	AuctionInsightDomain string `json:"auctionInsightDomain"`
}

// CustomerClient describes a child account row under the MCC.
type CustomerClient struct {
	ClientCustomer  string `json:"clientCustomer"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
	Status          string `json:"status"`
}

// Row is a single protojson search result row. Only the attribute slices the
// dashboard selects are modelled; everything else is dropped on decode.
type Row struct {
	Campaign         Campaign         `json:"campaign"`
	AdGroup          AdGroup          `json:"adGroup"`
	AdGroupCriterion AdGroupCriterion `json:"adGroupCriterion"`
	Segments         Segments         `json:"segments"`
	CustomerClient   CustomerClient   `json:"customerClient"`
	Metrics          Metrics          `json:"metrics"`
}
