package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/patric-chuzhbe/usersapi/internal/codec"
	"github.com/patric-chuzhbe/usersapi/internal/user"
)

type usersReader interface {
	FindByID(ctx context.Context, id string) (user.User, bool, error)

	Snapshot(ctx context.Context) ([]user.User, error)
}

type usersWriter interface {
	Append(ctx context.Context, usr user.User) error

	ReplaceByID(ctx context.Context, usr user.User) (bool, error)

	RemoveByID(ctx context.Context, id string) (bool, error)
}

type storage interface {
	usersReader
	usersWriter
}

var (
	// ErrInvalidID is returned when an identifier is not a canonical UUID.
	ErrInvalidID = errors.New("invalid user ID")

	// ErrUserNotFound is returned when no record carries the requested ID.
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidJSON  = codec.ErrInvalidJSON
	ErrInvalidShape = codec.ErrInvalidShape
)

type Service struct {
	db         storage
	generateID func() (uuid.UUID, error)
}

type InitOption func(*Service)

// WithIDGenerator replaces the UUID v4 generator used to mint user IDs.
func WithIDGenerator(generateID func() (uuid.UUID, error)) InitOption {
	return func(s *Service) {
		s.generateID = generateID
	}
}

func New(db storage, optionsProto ...InitOption) *Service {
	s := &Service{
		db:         db,
		generateID: uuid.NewRandom,
	}
	for _, protoOption := range optionsProto {
		protoOption(s)
	}

	return s
}

// ListUsers returns every user in insertion order.
func (s *Service) ListUsers(ctx context.Context) ([]user.User, error) {
	users, err := s.db.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("in internal/service/service.go/ListUsers(): error while `s.db.Snapshot()` calling: %w", err)
	}

	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (user.User, error) {
	if !codec.IsValidID(id) {
		return user.User{}, ErrInvalidID
	}

	usr, found, err := s.db.FindByID(ctx, id)
	if err != nil {
		return user.User{}, fmt.Errorf("in internal/service/service.go/GetUser(): error while `s.db.FindByID()` calling: %w", err)
	}
	if !found {
		return user.User{}, ErrUserNotFound
	}

	return usr, nil
}

// CreateUser decodes body, assigns a fresh ID and stores the new record.
func (s *Service) CreateUser(ctx context.Context, body []byte) (user.User, error) {
	payload, err := codec.DecodeUserPayload(body)
	if err != nil {
		return user.User{}, err
	}

	id, err := s.generateID()
	if err != nil {
		return user.User{}, fmt.Errorf("in internal/service/service.go/CreateUser(): error while generating user ID: %w", err)
	}

	usr := user.User{
		ID:       id.String(),
		Username: payload.Username,
		Age:      payload.Age,
		Hobbies:  payload.Hobbies,
	}

	if err := s.db.Append(ctx, usr); err != nil {
		return user.User{}, fmt.Errorf("in internal/service/service.go/CreateUser(): error while `s.db.Append()` calling: %w", err)
	}

	return usr.Clone(), nil
}

// ReplaceUser overwrites username, age and hobbies of an existing record.
// Failures are reported in a fixed order: malformed JSON, malformed ID,
// wrong payload shape, missing record.
func (s *Service) ReplaceUser(ctx context.Context, id string, body []byte) (user.User, error) {
	value, err := codec.ParseJSON(body)
	if err != nil {
		return user.User{}, err
	}

	if !codec.IsValidID(id) {
		return user.User{}, ErrInvalidID
	}

	payload, err := codec.ValidateShape(value)
	if err != nil {
		return user.User{}, err
	}

	usr := user.User{
		ID:       id,
		Username: payload.Username,
		Age:      payload.Age,
		Hobbies:  payload.Hobbies,
	}

	found, err := s.db.ReplaceByID(ctx, usr)
	if err != nil {
		return user.User{}, fmt.Errorf("in internal/service/service.go/ReplaceUser(): error while `s.db.ReplaceByID()` calling: %w", err)
	}
	if !found {
		return user.User{}, ErrUserNotFound
	}

	return usr.Clone(), nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if !codec.IsValidID(id) {
		return ErrInvalidID
	}

	found, err := s.db.RemoveByID(ctx, id)
	if err != nil {
		return fmt.Errorf("in internal/service/service.go/DeleteUser(): error while `s.db.RemoveByID()` calling: %w", err)
	}
	if !found {
		return ErrUserNotFound
	}

	return nil
}
