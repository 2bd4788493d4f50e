// Package mockstorage provides a testify-based mock implementation
// of the storage interfaces used by the service package.
// It is used for unit testing by simulating storage behavior and failures.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/usersapi/internal/user"
)

// StorageMock is a testify mock that implements every storage method
// the service relies on.
type StorageMock struct {
	mock.Mock
}

// Append mocks adding a record to the end of the collection.
func (m *StorageMock) Append(ctx context.Context, usr user.User) error {
	args := m.Called(ctx, usr)
	return args.Error(0)
}

// FindByID mocks a lookup by identifier.
func (m *StorageMock) FindByID(ctx context.Context, id string) (user.User, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Bool(1), args.Error(2)
}

// ReplaceByID mocks overwriting a record in place.
func (m *StorageMock) ReplaceByID(ctx context.Context, usr user.User) (bool, error) {
	args := m.Called(ctx, usr)
	return args.Bool(0), args.Error(1)
}

// RemoveByID mocks deleting a record.
func (m *StorageMock) RemoveByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Snapshot mocks listing every record.
func (m *StorageMock) Snapshot(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]user.User)
	return users, args.Error(1)
}
