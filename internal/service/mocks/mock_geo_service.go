package mocks

import (
	"context"

	"geolocations/internal/dataset"

	"github.com/stretchr/testify/mock"
)

type MockGeoService struct {
	mock.Mock
}

func (m *MockGeoService) record(args mock.Arguments) (dataset.Record, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dataset.Record), args.Error(1)
}

func (m *MockGeoService) records(args mock.Arguments) ([]dataset.Record, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dataset.Record), args.Error(1)
}

func (m *MockGeoService) Countries(ctx context.Context) ([]dataset.Record, error) {
	return m.records(m.Called(ctx))
}

func (m *MockGeoService) Country(ctx context.Context, code string) (dataset.Record, error) {
	return m.record(m.Called(ctx, code))
}

func (m *MockGeoService) Currencies(ctx context.Context) ([]dataset.Record, error) {
	return m.records(m.Called(ctx))
}

func (m *MockGeoService) CurrencyByCountry(ctx context.Context, countryCode string) (dataset.Record, error) {
	return m.record(m.Called(ctx, countryCode))
}

func (m *MockGeoService) Currency(ctx context.Context, currencyCode string) (dataset.Record, error) {
	return m.record(m.Called(ctx, currencyCode))
}

func (m *MockGeoService) Flags(ctx context.Context) (dataset.Record, error) {
	return m.record(m.Called(ctx))
}

func (m *MockGeoService) Flag(ctx context.Context, countryCode string) (dataset.Record, error) {
	return m.record(m.Called(ctx, countryCode))
}

func (m *MockGeoService) States(ctx context.Context, countryCode string) (dataset.Record, error) {
	return m.record(m.Called(ctx, countryCode))
}

func (m *MockGeoService) Cities(ctx context.Context, countryCode, stateCode string) (dataset.Record, error) {
	return m.record(m.Called(ctx, countryCode, stateCode))
}

func (m *MockGeoService) Complete(ctx context.Context, countryCode string) (*dataset.Complete, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataset.Complete), args.Error(1)
}

func (m *MockGeoService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
