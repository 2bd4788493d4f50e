// Package memorystorage keeps user records in process memory.
//
// The collection preserves insertion order and is guarded by a single
// read/write mutex: readers share the lock, every mutation takes it
// exclusively. Records go in and come out as copies, so callers never hold
// references into the collection.
package memorystorage

import (
	"context"
	"errors"
	"sync"

	"github.com/patric-chuzhbe/usersapi/internal/user"
)

// ErrIndexOutOfRange is returned by the positional operations when the index
// does not address an existing record.
var ErrIndexOutOfRange = errors.New("index out of range")

type MemoryStorage struct {
	mu    sync.RWMutex
	users []user.User
}

func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		users: []user.User{},
	}, nil
}

// Append adds usr to the end of the collection.
func (theStorage *MemoryStorage) Append(ctx context.Context, usr user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	theStorage.users = append(theStorage.users, usr.Clone())

	return nil
}

// FindByID returns the record with the given id, if any.
func (theStorage *MemoryStorage) FindByID(ctx context.Context, id string) (user.User, bool, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, false, err
	}

	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	idx := theStorage.indexOf(id)
	if idx < 0 {
		return user.User{}, false, nil
	}

	return theStorage.users[idx].Clone(), true, nil
}

// ReplaceAt overwrites the record at index.
func (theStorage *MemoryStorage) ReplaceAt(ctx context.Context, index int, usr user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	return theStorage.replaceAt(index, usr)
}

// RemoveAt deletes the record at index, shifting the following records left.
func (theStorage *MemoryStorage) RemoveAt(ctx context.Context, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	return theStorage.removeAt(index)
}

// ReplaceByID overwrites the record whose id equals usr.ID, keeping its
// position. It reports false when no such record exists.
func (theStorage *MemoryStorage) ReplaceByID(ctx context.Context, usr user.User) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	idx := theStorage.indexOf(usr.ID)
	if idx < 0 {
		return false, nil
	}

	return true, theStorage.replaceAt(idx, usr)
}

// RemoveByID deletes the record with the given id. It reports false when no
// such record exists.
func (theStorage *MemoryStorage) RemoveByID(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	idx := theStorage.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	return true, theStorage.removeAt(idx)
}

// Snapshot returns all records in insertion order.
func (theStorage *MemoryStorage) Snapshot(ctx context.Context) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	result := make([]user.User, 0, len(theStorage.users))
	for _, usr := range theStorage.users {
		result = append(result, usr.Clone())
	}

	return result, nil
}

func (theStorage *MemoryStorage) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	return len(theStorage.users), nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}

// indexOf must be called with mu held.
func (theStorage *MemoryStorage) indexOf(id string) int {
	for i := range theStorage.users {
		if theStorage.users[i].ID == id {
			return i
		}
	}

	return -1
}

// replaceAt must be called with mu held for writing.
func (theStorage *MemoryStorage) replaceAt(index int, usr user.User) error {
	if index < 0 || index >= len(theStorage.users) {
		return ErrIndexOutOfRange
	}
	theStorage.users[index] = usr.Clone()

	return nil
}

// removeAt must be called with mu held for writing.
func (theStorage *MemoryStorage) removeAt(index int) error {
	if index < 0 || index >= len(theStorage.users) {
		return ErrIndexOutOfRange
	}
	copy(theStorage.users[index:], theStorage.users[index+1:])
	theStorage.users[len(theStorage.users)-1] = user.User{}
	theStorage.users = theStorage.users[:len(theStorage.users)-1]

	return nil
}
