package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

func clientRow(id, name, currency, status string) googleads.Row {
	return googleads.Row{CustomerClient: googleads.CustomerClient{
		ClientCustomer:  "customers/" + id,
		DescriptiveName: name,
		CurrencyCode:    currency,
		Status:          status,
	}}
}

func TestListAccountsMergesRegistryWithLiveRows(t *testing.T) {
	client := &stubAdsClient{fn: func(customerID, query string) ([]googleads.Row, error) {
		require.Equal(t, "9999999999", customerID)
		require.Contains(t, query, "customer_client.level = 1")
		return []googleads.Row{
			clientRow("5756290882", "Just Carpets NL", "EUR", "ENABLED"),
			clientRow("7777777777", "New Market", "EUR", "ENABLED"),
		}, nil
	}}

	svc := NewAccountService(client, testRegistry(t), "9999999999", cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())
	response, cacheHit, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.False(t, cacheHit)

	byID := make(map[string]int)
	for i, account := range response.Accounts {
		byID[account.CustomerID] = i
	}

	nl := response.Accounts[byID["5756290882"]]
	require.Equal(t, "NL", nl.Market)
	require.Equal(t, "Just Carpets NL", nl.Name)
	require.Equal(t, "EUR", nl.CurrencyCode)
	require.Equal(t, "ENABLED", nl.Status)

	// Registry entries missing from the live listing keep a placeholder.
	uk := response.Accounts[byID["8163355443"]]
	require.Equal(t, "UK", uk.Market)
	require.Equal(t, "UNKNOWN", uk.Status)

	// Live accounts absent from the registry are appended without a market.
	extra := response.Accounts[byID["7777777777"]]
	require.Empty(t, extra.Market)
	require.Equal(t, "New Market", extra.Name)
}

func TestListAccountsCaches(t *testing.T) {
	client := &stubAdsClient{fn: func(_, _ string) ([]googleads.Row, error) {
		return []googleads.Row{clientRow("5756290882", "Just Carpets NL", "EUR", "ENABLED")}, nil
	}}

	svc := NewAccountService(client, testRegistry(t), "9999999999", cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())

	_, _, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)

	_, cacheHit, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.True(t, cacheHit)
	require.Equal(t, 1, client.callCount())
}

func TestCheckConnection(t *testing.T) {
	client := &stubAdsClient{customers: []string{"customers/1", "customers/2"}}
	svc := NewAccountService(client, testRegistry(t), "9999999999", cache.NewMemory(time.Minute), time.Minute, zerolog.Nop())

	status, err := svc.CheckConnection(context.Background())
	require.NoError(t, err)
	require.True(t, status.Connected)
	require.Equal(t, 2, status.AccessibleCustomers)

	client.listErr = fmt.Errorf("unreachable")
	_, err = svc.CheckConnection(context.Background())
	require.Error(t, err)
}
