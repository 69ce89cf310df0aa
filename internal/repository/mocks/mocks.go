package mocks

import (
	"context"

	"github.com/rpggio/faultdesk/internal/domain/activity"
	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/stretchr/testify/mock"
)

// FaultRepository is a mock for fault.Repository.
type FaultRepository struct {
	mock.Mock
}

func (m *FaultRepository) LoadAll(ctx context.Context) ([]fault.Fault, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]fault.Fault); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FaultRepository) LastID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FaultRepository) Save(ctx context.Context, rec *fault.Fault) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *FaultRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
