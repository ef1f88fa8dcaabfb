package dto

// AccountInfo merges a registry entry with the live customer_client row.
// Market is empty for accounts linked under the MCC but absent from the
// registry; Status is UNKNOWN when the live listing did not include the
// account.
type AccountInfo struct {
	Market       string `json:"market,omitempty"`
	CustomerID   string `json:"customer_id"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
	Status       string `json:"status"`
}

// AccountsResponse is the account listing payload.
type AccountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

// ConnectionStatus reports Google Ads API reachability.
type ConnectionStatus struct {
	Connected           bool `json:"connected"`
	AccessibleCustomers int  `json:"accessible_customers"`
}
