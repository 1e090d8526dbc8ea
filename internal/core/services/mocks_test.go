package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateFetcher ---
type MockRateFetcher struct {
	mock.Mock
	source domain.RateSource
}

func NewMockRateFetcher(source domain.RateSource) *MockRateFetcher {
	return &MockRateFetcher{source: source}
}

func (m *MockRateFetcher) Source() domain.RateSource { return m.source }

func (m *MockRateFetcher) FetchRates(ctx context.Context, base string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock RateHistorian ---
type MockRateHistorian struct {
	mock.Mock
}

func (m *MockRateHistorian) Historical(pair string, days int, now time.Time) ([]domain.HistoricalRate, error) {
	args := m.Called(pair, days, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoricalRate), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, params portsrepo.ListTransactionsParams) ([]domain.Transaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, updated domain.Transaction, expected domain.TransactionStatus) error {
	args := m.Called(ctx, updated, expected)
	return args.Error(0)
}

// --- Mock NotificationPublisher ---
type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) Publish(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ParsePushPayload(payload []byte) domain.Notification {
	args := m.Called(payload)
	return args.Get(0).(domain.Notification)
}

func (m *MockNotificationService) ResolveClick(action, url string, openURLs []string) domain.ClickResult {
	args := m.Called(action, url, openURLs)
	return args.Get(0).(domain.ClickResult)
}

func (m *MockNotificationService) Notify(ctx context.Context, n domain.Notification) {
	m.Called(ctx, n)
}

func (m *MockNotificationService) TransactionCreated(ctx context.Context, tx domain.Transaction) {
	m.Called(ctx, tx)
}

func (m *MockNotificationService) TransactionStatusChanged(ctx context.Context, tx domain.Transaction, previous domain.TransactionStatus) {
	m.Called(ctx, tx, previous)
}

// --- Mock ReceiptExporter ---
type MockReceiptExporter struct {
	mock.Mock
}

func (m *MockReceiptExporter) Export(receipt domain.Receipt) ([]byte, error) {
	args := m.Called(receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Mock KVStore, for failing writes ---
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKVStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKVStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// usdRates is a small valid USD table.
func usdRates(at time.Time) []domain.ExchangeRate {
	return []domain.ExchangeRate{
		rateOf("USD/GHS", "12.45", at),
		rateOf("USD/NGN", "795.5", at),
		rateOf("USD/EUR", "0.92", at),
	}
}

func rateOf(pair, value string, at time.Time) domain.ExchangeRate {
	return domain.ExchangeRate{Pair: pair, Rate: dec(value), LastUpdated: at, Region: domain.RegionGlobal}
}
