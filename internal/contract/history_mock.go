package contract

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/huangsam/graveyard/schema"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ HistoryManager = &MockHistoryManager{} // Compile-time check

// GetScanStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetScanStore() ScanStore {
	ret := m.Called()
	store, _ := ret.Get(0).(ScanStore)
	return store
}

// MockScanStore is a mock implementation of ScanStore for testing.
type MockScanStore struct {
	mock.Mock
}

var _ ScanStore = &MockScanStore{} // Compile-time check

// SaveScan implements the ScanStore interface.
func (m *MockScanStore) SaveScan(record *schema.ScanRecord, results []schema.EndpointUsageResult) (int64, error) {
	ret := m.Called(record, results)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// GetScans implements the ScanStore interface.
func (m *MockScanStore) GetScans(serviceName string, limit int) ([]schema.ScanRecord, error) {
	ret := m.Called(serviceName, limit)
	scans, _ := ret.Get(0).([]schema.ScanRecord)
	return scans, ret.Error(1)
}

// GetScanByID implements the ScanStore interface.
func (m *MockScanStore) GetScanByID(id int64) (*schema.ScanDetail, error) {
	ret := m.Called(id)
	detail, _ := ret.Get(0).(*schema.ScanDetail)
	return detail, ret.Error(1)
}

// GetLatestScan implements the ScanStore interface.
func (m *MockScanStore) GetLatestScan(serviceName string) (*schema.ScanDetail, error) {
	ret := m.Called(serviceName)
	detail, _ := ret.Get(0).(*schema.ScanDetail)
	return detail, ret.Error(1)
}

// GetScansSince implements the ScanStore interface.
func (m *MockScanStore) GetScansSince(serviceName string, since time.Time) ([]schema.ScanRecord, error) {
	ret := m.Called(serviceName, since)
	scans, _ := ret.Get(0).([]schema.ScanRecord)
	return scans, ret.Error(1)
}

// GetServices implements the ScanStore interface.
func (m *MockScanStore) GetServices() ([]string, error) {
	ret := m.Called()
	services, _ := ret.Get(0).([]string)
	return services, ret.Error(1)
}

// GetAllSnapshots implements the ScanStore interface.
func (m *MockScanStore) GetAllSnapshots() ([]schema.SnapshotRecord, error) {
	ret := m.Called()
	snapshots, _ := ret.Get(0).([]schema.SnapshotRecord)
	return snapshots, ret.Error(1)
}

// GetStatus implements the ScanStore interface.
func (m *MockScanStore) GetStatus() (schema.HistoryStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.HistoryStatus)
	return status, ret.Error(1)
}

// Clear implements the ScanStore interface.
func (m *MockScanStore) Clear() error {
	ret := m.Called()
	return ret.Error(0)
}

// Close implements the ScanStore interface.
func (m *MockScanStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
