package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/AlibekovAA/exercise-tracker/internal/tracker/domain"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

type Registry interface {
	Create(ctx context.Context, username string) (domain.Summary, error)
	List(ctx context.Context) ([]domain.Summary, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	Append(ctx context.Context, id domain.ID, exercise domain.Exercise) (domain.User, error)
	Count(ctx context.Context) int
}

// MemoryRegistry keeps users in creation order with id and username
// indexes. One lock covers id assignment, the uniqueness check and appends.
type MemoryRegistry struct {
	mu         sync.RWMutex
	users      []*domain.User
	byID       map[domain.ID]*domain.User
	byUsername map[string]*domain.User
	nextID     int64
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		users:      make([]*domain.User, 0, 16),
		byID:       make(map[domain.ID]*domain.User),
		byUsername: make(map[string]*domain.User),
		nextID:     1,
	}
}

func (r *MemoryRegistry) Create(ctx context.Context, username string) (domain.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[username]; exists {
		return domain.Summary{}, ErrUsernameAlreadyExists
	}

	user := &domain.User{
		ID:       domain.ID(strconv.FormatInt(r.nextID, 10)),
		Username: username,
		Log:      []domain.Exercise{},
	}
	r.nextID++

	r.users = append(r.users, user)
	r.byID[user.ID] = user
	r.byUsername[username] = user

	return user.Summary(), nil
}

func (r *MemoryRegistry) List(ctx context.Context) ([]domain.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Summary, len(r.users))
	for i, u := range r.users {
		out[i] = u.Summary()
	}
	return out, nil
}

func (r *MemoryRegistry) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user.Clone(), nil
}

func (r *MemoryRegistry) Append(ctx context.Context, id domain.ID, exercise domain.Exercise) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	user.Log = append(user.Log, exercise)
	user.ExerciseCount++

	return user.Clone(), nil
}

func (r *MemoryRegistry) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

var _ Registry = (*MemoryRegistry)(nil)
