package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
)

func TestExecuteHistoryList(t *testing.T) {
	store := &contract.MockScanStore{}
	store.On("GetScans", "", 25).Return(trendScans(3, 4), nil)

	cfg := &contract.Config{ResultLimit: 25, Output: schema.TextOut}
	require.NoError(t, ExecuteHistoryList(cfg, mockedHistory(store)))
	store.AssertExpectations(t)
}

func TestExecuteHistoryListFiltered(t *testing.T) {
	store := &contract.MockScanStore{}
	store.On("GetScans", "payments", 5).Return(trendScans(3), nil)

	cfg := &contract.Config{ServiceFilter: "payments", ResultLimit: 5, Output: schema.JSONOut}
	require.NoError(t, ExecuteHistoryList(cfg, mockedHistory(store)))
	store.AssertExpectations(t)
}

func TestExecuteHistoryListEmpty(t *testing.T) {
	store := &contract.MockScanStore{}
	store.On("GetScans", "", 25).Return([]schema.ScanRecord{}, nil)

	cfg := &contract.Config{ResultLimit: 25, Output: schema.TextOut}
	// Empty history is a notice, not a failure
	require.NoError(t, ExecuteHistoryList(cfg, mockedHistory(store)))
}

func TestExecuteHistoryListError(t *testing.T) {
	store := &contract.MockScanStore{}
	store.On("GetScans", "", 25).Return(nil, assert.AnError)

	cfg := &contract.Config{ResultLimit: 25, Output: schema.TextOut}
	err := ExecuteHistoryList(cfg, mockedHistory(store))
	assert.ErrorContains(t, err, "error loading scan history")
}

func TestExecuteHistoryStatus(t *testing.T) {
	store := &contract.MockScanStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{
		Backend:        "sqlite",
		Connected:      true,
		TotalScans:     12,
		LastScanID:     12,
		LastScanTime:   time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
		TotalSnapshots: 480,
	}, nil)

	cfg := &contract.Config{Output: schema.TextOut}
	require.NoError(t, ExecuteHistoryStatus(cfg, mockedHistory(store)))
	store.AssertExpectations(t)
}

func TestExecuteHistoryStatusError(t *testing.T) {
	store := &contract.MockScanStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{}, assert.AnError)

	cfg := &contract.Config{Output: schema.TextOut}
	err := ExecuteHistoryStatus(cfg, mockedHistory(store))
	assert.ErrorContains(t, err, "error getting history status")
}
