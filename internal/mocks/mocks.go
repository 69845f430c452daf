// internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockSnapshotRepository mocks the SnapshotRepository interface
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Load(ctx context.Context) (entity.TimeSeries, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(entity.TimeSeries), args.Bool(1), args.Error(2)
}

func (m *MockSnapshotRepository) Write(ctx context.Context, snapshot *entity.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Latest(ctx context.Context) (*entity.LatestEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LatestEntry), args.Error(1)
}

// MockSubscriberRepository mocks the SubscriberRepository interface
type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Store(ctx context.Context, sub *entity.Subscriber) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriberRepository) FindByChatID(ctx context.Context, chatID int64) (*entity.Subscriber, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) List(ctx context.Context) ([]*entity.Subscriber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) Delete(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

// MockCredentialSource mocks the credential source interface
type MockCredentialSource struct {
	mock.Mock
}

func (m *MockCredentialSource) Extract(ctx context.Context) (entity.Credential, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.Credential), args.Error(1)
}

// MockRateSource mocks the rate source interface
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRates(ctx context.Context, cred entity.Credential) (map[string]entity.RateRecord, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]entity.RateRecord), args.Error(1)
}

// MockMessageSender mocks the message sender interface
type MockMessageSender struct {
	mock.Mock
}

func (m *MockMessageSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}
