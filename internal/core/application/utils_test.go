package application_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

var ctx = context.Background()

type mockEventPublisher struct {
	mock.Mock
	lock      *sync.Mutex
	published []*domain.SpendRecord
}

func newMockedEventPublisher() *mockEventPublisher {
	return &mockEventPublisher{lock: &sync.Mutex{}}
}

func (m *mockEventPublisher) PublishSpendRecord(
	ctx context.Context, record *domain.SpendRecord,
) error {
	args := m.Called(ctx, record)

	m.lock.Lock()
	m.published = append(m.published, record)
	m.lock.Unlock()

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockEventPublisher) publishedRecords() []*domain.SpendRecord {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]*domain.SpendRecord{}, m.published...)
}

// failingHistoryRepoManager wraps a repo manager with a history repository
// that can never store records.
type failingHistoryRepoManager struct {
	ports.RepoManager
}

func (m failingHistoryRepoManager) HistoryRepository() domain.HistoryRepository {
	return failingHistoryRepository{m.RepoManager.HistoryRepository()}
}

type failingHistoryRepository struct {
	domain.HistoryRepository
}

func (failingHistoryRepository) AddRecord(
	_ context.Context, _ *domain.SpendRecord,
) (bool, error) {
	return false, fmt.Errorf("disk full")
}
