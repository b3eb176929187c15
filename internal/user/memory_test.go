package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nekogravitycat/condo-backend/internal/auth"
)

type memoryRepository struct {
	mu     sync.Mutex
	users  map[string]*User
	nextID int
	err    error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: map[string]*User{}}
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.nextID)
	u.CreatedAt = time.Date(2024, 1, 1, 0, 0, r.nextID, 0, time.UTC)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

// plainHasher keeps tests fast; bcrypt is covered in the auth package.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return auth.ErrPasswordMismatch
	}
	return nil
}
