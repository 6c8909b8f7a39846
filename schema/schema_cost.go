package schema

// EndpointCost breaks down the projected spend for a single endpoint.
type EndpointCost struct {
	CallsPerMonth  int     `json:"calls_per_month"`
	MonthlyCostUSD float64 `json:"monthly_cost_usd"`
	AnnualCostUSD  float64 `json:"annual_cost_usd"`
}

// EndpointSaving represents the projected monthly saving for one unused endpoint.
type EndpointSaving struct {
	Method            string  `json:"method"`
	Path              string  `json:"path"`
	MonthlySavingsUSD float64 `json:"monthly_savings_usd"`
}

// CostAssumptions records the pricing inputs behind a savings estimate.
type CostAssumptions struct {
	CostPerMillionRequests        float64 `json:"cost_per_million_requests"`
	InfrastructureCostPerEndpoint float64 `json:"infrastructure_cost_per_endpoint"`
	Currency                      string  `json:"currency"`
}

// SavingsEstimate represents the projected savings from removing all
// unused endpoints found in a scan.
type SavingsEstimate struct {
	TotalUnusedEndpoints int              `json:"total_unused_endpoints"`
	MonthlySavingsUSD    float64          `json:"monthly_savings_usd"`
	AnnualSavingsUSD     float64          `json:"annual_savings_usd"`
	ThreeYearSavingsUSD  float64          `json:"three_year_savings_usd"`
	Breakdown            []EndpointSaving `json:"breakdown"`
	Assumptions          CostAssumptions  `json:"assumptions"`
}
