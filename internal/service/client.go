package service

import (
	"context"

	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

// AdsClient is the slice of the Google Ads client the report services use.
type AdsClient interface {
	Search(ctx context.Context, customerID, query string) ([]googleads.Row, error)
	ListAccessibleCustomers(ctx context.Context) ([]string, error)
}
