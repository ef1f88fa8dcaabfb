package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Account maps a dashboard market label to a Google Ads customer id.
type Account struct {
	Market     string `json:"market"`
	CustomerID string `json:"customer_id"`
}

// Registry is the set of client accounts the dashboard reports on.
type Registry struct {
	accounts []Account
	byID     map[string]Account
}

const registrySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["accounts"],
  "properties": {
    "accounts": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["market", "customer_id"],
        "properties": {
          "market": {"type": "string", "minLength": 1},
          "customer_id": {"type": "string", "pattern": "^[0-9-]{10,12}$"}
        }
      }
    }
  }
}`

// defaultAccounts is the built-in Just Carpets market map used when no
// registry file is configured.
var defaultAccounts = []Account{
	{Market: "NL", CustomerID: "5756290882"},
	{Market: "BE", CustomerID: "5735473691"},
	{Market: "DE", CustomerID: "1946606314"},
	{Market: "DK", CustomerID: "8921136631"},
	{Market: "ES", CustomerID: "4748902087"},
	{Market: "FI", CustomerID: "8470338623"},
	{Market: "FR (Ravann)", CustomerID: "2846016798"},
	{Market: "FR (Tapis)", CustomerID: "7539242704"},
	{Market: "IT", CustomerID: "8472162607"},
	{Market: "NO", CustomerID: "3581636329"},
	{Market: "PL", CustomerID: "8467590750"},
	{Market: "SE", CustomerID: "8463558543"},
	{Market: "EU", CustomerID: "6542318847"},
	{Market: "UK", CustomerID: "8163355443"},
}

// LoadRegistry reads the account registry from path, or returns the built-in
// registry when path is empty. Files are validated against a JSON schema
// before use so a malformed registry fails at startup, not mid-request.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return newRegistry(defaultAccounts)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read account registry: %w", err)
	}

	schema, err := jsonschema.CompileString("registry.schema.json", registrySchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile registry schema: %w", err)
	}

	var generic interface{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&generic); err != nil {
		return nil, fmt.Errorf("invalid registry json: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("registry failed schema validation: %w", err)
	}

	var parsed struct {
		Accounts []Account `json:"accounts"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid registry json: %w", err)
	}

	return newRegistry(parsed.Accounts)
}

func newRegistry(accounts []Account) (*Registry, error) {
	registry := &Registry{
		accounts: make([]Account, 0, len(accounts)),
		byID:     make(map[string]Account, len(accounts)),
	}

	for _, account := range accounts {
		id, err := NormalizeCustomerID(account.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("registry account %q: %w", account.Market, err)
		}
		if _, exists := registry.byID[id]; exists {
			return nil, fmt.Errorf("registry customer id %s listed twice", id)
		}
		normalized := Account{Market: account.Market, CustomerID: id}
		registry.accounts = append(registry.accounts, normalized)
		registry.byID[id] = normalized
	}

	sort.Slice(registry.accounts, func(i, j int) bool {
		return registry.accounts[i].Market < registry.accounts[j].Market
	})

	return registry, nil
}

// Accounts returns registry entries sorted by market label.
func (r *Registry) Accounts() []Account {
	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// Lookup resolves a customer id to its registry entry.
func (r *Registry) Lookup(customerID string) (Account, bool) {
	account, ok := r.byID[customerID]
	return account, ok
}

// Contains reports whether the customer id belongs to the registry.
func (r *Registry) Contains(customerID string) bool {
	_, ok := r.byID[customerID]
	return ok
}
