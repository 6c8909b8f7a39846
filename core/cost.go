package core

import "github.com/huangsam/graveyard/schema"

// Cost model constants.
const (
	// DefaultCostPerMillionRequests tracks AWS API Gateway pricing
	// (as of 2026, USD per million requests).
	DefaultCostPerMillionRequests = 3.50

	// InfrastructureCostPerEndpoint is the assumed monthly hosting cost
	// carried by an endpoint even when nothing calls it.
	InfrastructureCostPerEndpoint = 0.10

	daysPerMonth        = 30
	monthsPerYear       = 12
	monthsPerThreeYears = 36
	requestsPerUnit     = 1_000_000
)

// CostCalculator projects request spend and removal savings from scan
// results. The zero value is not usable; construct with NewCostCalculator.
type CostCalculator struct {
	costPerMillion float64
}

// NewCostCalculator returns a calculator using the given price per million
// requests. A non-positive price falls back to the default.
func NewCostCalculator(costPerMillionRequests float64) *CostCalculator {
	if costPerMillionRequests <= 0 {
		costPerMillionRequests = DefaultCostPerMillionRequests
	}
	return &CostCalculator{costPerMillion: costPerMillionRequests}
}

// EndpointCost projects the monthly and annual request spend for one
// endpoint from its call count over the observed period.
func (c *CostCalculator) EndpointCost(callCount, periodDays int) schema.EndpointCost {
	if periodDays <= 0 {
		periodDays = daysPerMonth
	}
	callsPerMonth := float64(callCount) * (float64(daysPerMonth) / float64(periodDays))
	monthlyCost := (callsPerMonth / requestsPerUnit) * c.costPerMillion

	return schema.EndpointCost{
		CallsPerMonth:  int(callsPerMonth),
		MonthlyCostUSD: schema.RoundTo(monthlyCost, 4),
		AnnualCostUSD:  schema.RoundTo(monthlyCost*monthsPerYear, 2),
	}
}

// Savings projects the spend freed up by removing the given unused
// endpoints. Each zero-call endpoint contributes a flat monthly
// infrastructure cost; endpoints with traffic contribute nothing.
func (c *CostCalculator) Savings(unusedResults []schema.EndpointUsageResult) schema.SavingsEstimate {
	var monthlySavings float64
	breakdown := make([]schema.EndpointSaving, 0, len(unusedResults))

	for _, r := range unusedResults {
		if r.CallCount != 0 {
			continue
		}
		monthlySavings += InfrastructureCostPerEndpoint
		breakdown = append(breakdown, schema.EndpointSaving{
			Method:            r.Method,
			Path:              r.Path,
			MonthlySavingsUSD: InfrastructureCostPerEndpoint,
		})
	}

	return schema.SavingsEstimate{
		TotalUnusedEndpoints: len(unusedResults),
		MonthlySavingsUSD:    schema.RoundTo(monthlySavings, 2),
		AnnualSavingsUSD:     schema.RoundTo(monthlySavings*monthsPerYear, 2),
		ThreeYearSavingsUSD:  schema.RoundTo(monthlySavings*monthsPerThreeYears, 2),
		Breakdown:            breakdown,
		Assumptions: schema.CostAssumptions{
			CostPerMillionRequests:        c.costPerMillion,
			InfrastructureCostPerEndpoint: InfrastructureCostPerEndpoint,
			Currency:                      "USD",
		},
	}
}

// SavingsFromSnapshots projects removal savings from stored endpoint
// snapshots, for cost analysis over historical scans.
func (c *CostCalculator) SavingsFromSnapshots(snapshots []schema.EndpointSnapshot) schema.SavingsEstimate {
	results := make([]schema.EndpointUsageResult, 0, len(snapshots))
	for _, s := range snapshots {
		if s.CallCount != 0 {
			continue
		}
		results = append(results, schema.EndpointUsageResult{
			Method:    s.Method,
			Path:      s.Path,
			CallCount: s.CallCount,
		})
	}
	return c.Savings(results)
}
