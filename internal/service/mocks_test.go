package service

import (
	"MoodKeeper/internal/model"
	"MoodKeeper/internal/realtime"
	"MoodKeeper/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.RecordRepository
type mockRecordRepo struct{ mock.Mock }

func (m *mockRecordRepo) Create(ctx context.Context, rec *model.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockRecordRepo) ListByUser(ctx context.Context, userID int64) ([]model.Record, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Record); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecordRepo) Delete(ctx context.Context, userID int64, id string) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

var _ repo.RecordRepository = (*mockRecordRepo)(nil)

// мок для realtime.Bus
type mockBus struct{ mock.Mock }

func (m *mockBus) Publish(ctx context.Context, msg realtime.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockBus) StartForwarder(ctx context.Context, onMsg func(realtime.Message)) error {
	return m.Called(ctx, onMsg).Error(0)
}

func (m *mockBus) Close() error { return m.Called().Error(0) }

var _ realtime.Bus = (*mockBus)(nil)
