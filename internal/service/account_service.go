package service

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/config"
	"github.com/justcarpets/ads-dashboard-api/internal/dto"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
)

// AccountService lists the client accounts under the MCC and checks API
// connectivity.
type AccountService interface {
	ListAccounts(ctx context.Context) (dto.AccountsResponse, bool, error)
	CheckConnection(ctx context.Context) (dto.ConnectionStatus, error)
}

type accountService struct {
	client   AdsClient
	registry *config.Registry
	mccID    string
	store    cache.Store
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewAccountService builds the account listing service.
func NewAccountService(client AdsClient, registry *config.Registry, mccID string, store cache.Store, ttl time.Duration, logger zerolog.Logger) AccountService {
	return &accountService{
		client:   client,
		registry: registry,
		mccID:    mccID,
		store:    store,
		ttl:      ttl,
		logger:   logger.With().Str("component", "account_service").Logger(),
	}
}

func (s *accountService) ListAccounts(ctx context.Context) (dto.AccountsResponse, bool, error) {
	key := cache.Key("accounts", s.mccID, url.Values{})

	var cached dto.AccountsResponse
	if cacheRead(ctx, s.store, key, &cached) {
		return cached, true, nil
	}

	rows, err := s.client.Search(ctx, s.mccID, googleads.ChildAccountsQuery())
	if err != nil {
		return dto.AccountsResponse{}, false, err
	}

	live := make(map[string]googleads.CustomerClient, len(rows))
	for _, row := range rows {
		id := customerIDFromResource(row.CustomerClient.ClientCustomer)
		if id != "" {
			live[id] = row.CustomerClient
		}
	}

	accounts := make([]dto.AccountInfo, 0, len(live))
	seen := make(map[string]struct{}, len(live))

	for _, entry := range s.registry.Accounts() {
		info := dto.AccountInfo{
			Market:     entry.Market,
			CustomerID: entry.CustomerID,
			Status:     "UNKNOWN",
		}
		if client, ok := live[entry.CustomerID]; ok {
			info.Name = client.DescriptiveName
			info.CurrencyCode = client.CurrencyCode
			info.Status = client.Status
		}
		accounts = append(accounts, info)
		seen[entry.CustomerID] = struct{}{}
	}

	// Accounts linked under the MCC but missing from the registry are still
	// listed so new markets show up before the registry is updated.
	extras := make([]dto.AccountInfo, 0)
	for id, client := range live {
		if _, ok := seen[id]; ok {
			continue
		}
		extras = append(extras, dto.AccountInfo{
			CustomerID:   id,
			Name:         client.DescriptiveName,
			CurrencyCode: client.CurrencyCode,
			Status:       client.Status,
		})
	}
	sort.Slice(extras, func(i, j int) bool {
		return extras[i].CustomerID < extras[j].CustomerID
	})
	accounts = append(accounts, extras...)

	response := dto.AccountsResponse{Accounts: accounts}
	cacheWrite(ctx, s.store, key, response, s.ttl)
	return response, false, nil
}

func (s *accountService) CheckConnection(ctx context.Context) (dto.ConnectionStatus, error) {
	names, err := s.client.ListAccessibleCustomers(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("google ads connectivity check failed")
		return dto.ConnectionStatus{}, err
	}
	return dto.ConnectionStatus{Connected: len(names) > 0, AccessibleCustomers: len(names)}, nil
}

// customerIDFromResource strips the "customers/" prefix of a customer
// resource name.
func customerIDFromResource(resource string) string {
	return strings.TrimPrefix(resource, "customers/")
}
