package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/graveyard/schema"
)

func TestNewCostCalculator(t *testing.T) {
	t.Run("custom price", func(t *testing.T) {
		calc := NewCostCalculator(5.0)
		cost := calc.EndpointCost(1_000_000, 30)
		assert.Equal(t, 5.0, cost.MonthlyCostUSD)
	})

	t.Run("non-positive price falls back to default", func(t *testing.T) {
		for _, price := range []float64{0, -1} {
			calc := NewCostCalculator(price)
			cost := calc.EndpointCost(1_000_000, 30)
			assert.Equal(t, DefaultCostPerMillionRequests, cost.MonthlyCostUSD)
		}
	})
}

func TestEndpointCost(t *testing.T) {
	calc := NewCostCalculator(DefaultCostPerMillionRequests)

	tests := []struct {
		name        string
		callCount   int
		periodDays  int
		wantCalls   int
		wantMonthly float64
		wantAnnual  float64
	}{
		{
			name:        "million calls in a month",
			callCount:   1_000_000,
			periodDays:  30,
			wantCalls:   1_000_000,
			wantMonthly: 3.5,
			wantAnnual:  42.0,
		},
		{
			name:        "two month window scales down",
			callCount:   600_000,
			periodDays:  60,
			wantCalls:   300_000,
			wantMonthly: 1.05,
			wantAnnual:  12.6,
		},
		{
			name:        "half month window scales up",
			callCount:   900_000,
			periodDays:  15,
			wantCalls:   1_800_000,
			wantMonthly: 6.3,
			wantAnnual:  75.6,
		},
		{
			name:        "zero period defaults to a month",
			callCount:   2_000_000,
			periodDays:  0,
			wantCalls:   2_000_000,
			wantMonthly: 7.0,
			wantAnnual:  84.0,
		},
		{
			name:        "fractional calls truncate",
			callCount:   100,
			periodDays:  90,
			wantCalls:   33,
			wantMonthly: 0.0001,
			wantAnnual:  0.0,
		},
		{
			name:        "zero calls cost nothing",
			callCount:   0,
			periodDays:  30,
			wantCalls:   0,
			wantMonthly: 0.0,
			wantAnnual:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost := calc.EndpointCost(tt.callCount, tt.periodDays)
			assert.Equal(t, tt.wantCalls, cost.CallsPerMonth)
			assert.Equal(t, tt.wantMonthly, cost.MonthlyCostUSD)
			assert.Equal(t, tt.wantAnnual, cost.AnnualCostUSD)
		})
	}
}

func TestSavings(t *testing.T) {
	calc := NewCostCalculator(DefaultCostPerMillionRequests)

	results := []schema.EndpointUsageResult{
		{Method: "GET", Path: "/api/legacy", CallCount: 0},
		{Method: "POST", Path: "/api/orphan", CallCount: 0},
		{Method: "GET", Path: "/api/quiet", CallCount: 2},
	}

	savings := calc.Savings(results)

	// Every input counts toward the total, only zero-call endpoints save money.
	assert.Equal(t, 3, savings.TotalUnusedEndpoints)
	assert.Equal(t, 0.2, savings.MonthlySavingsUSD)
	assert.Equal(t, 2.4, savings.AnnualSavingsUSD)
	assert.Equal(t, 7.2, savings.ThreeYearSavingsUSD)

	require.Len(t, savings.Breakdown, 2)
	assert.Equal(t, "GET", savings.Breakdown[0].Method)
	assert.Equal(t, "/api/legacy", savings.Breakdown[0].Path)
	assert.Equal(t, 0.1, savings.Breakdown[0].MonthlySavingsUSD)

	assert.Equal(t, DefaultCostPerMillionRequests, savings.Assumptions.CostPerMillionRequests)
	assert.Equal(t, 0.1, savings.Assumptions.InfrastructureCostPerEndpoint)
	assert.Equal(t, "USD", savings.Assumptions.Currency)
}

func TestSavingsEmpty(t *testing.T) {
	calc := NewCostCalculator(DefaultCostPerMillionRequests)
	savings := calc.Savings(nil)

	assert.Equal(t, 0, savings.TotalUnusedEndpoints)
	assert.Equal(t, 0.0, savings.MonthlySavingsUSD)
	assert.Empty(t, savings.Breakdown)
}

func TestSavingsFromSnapshots(t *testing.T) {
	calc := NewCostCalculator(DefaultCostPerMillionRequests)

	snapshots := []schema.EndpointSnapshot{
		{Method: "GET", Path: "/api/legacy", CallCount: 0},
		{Method: "GET", Path: "/api/busy", CallCount: 5000},
		{Method: "DELETE", Path: "/api/orphan", CallCount: 0},
	}

	savings := calc.SavingsFromSnapshots(snapshots)

	// Only the zero-call snapshots survive the filter.
	assert.Equal(t, 2, savings.TotalUnusedEndpoints)
	assert.Equal(t, 0.2, savings.MonthlySavingsUSD)
	require.Len(t, savings.Breakdown, 2)
	assert.Equal(t, "/api/legacy", savings.Breakdown[0].Path)
	assert.Equal(t, "/api/orphan", savings.Breakdown[1].Path)
}
