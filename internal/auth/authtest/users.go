// Package authtest provides in-memory auth dependencies for tests.
package authtest

import (
	"context"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
)

// Users is an in-memory service.UserStore.
type Users struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
}

func NewUsers() *Users {
	return &Users{byID: make(map[int64]domain.User)}
}

func (u *Users) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (u *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.byID {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (u *Users) Create(_ context.Context, name, email, passwordHash string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.byID {
		if user.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}
	u.nextID++
	now := time.Now().UTC()
	user := domain.User{
		ID:           u.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u.byID[user.ID] = user
	return &user, nil
}
