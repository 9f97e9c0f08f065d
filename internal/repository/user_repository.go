package repository

import (
	"fmt"
	"strings"
	"sync"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

// UserRepo holds the seeded users in memory.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: make(map[string]model.User), byEmail: make(map[string]string)}
}

// Create inserts a user, hashing the plain password with the given bcrypt cost.
func (r *UserRepo) Create(u model.User, password string, cost int) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; ok {
		return fmt.Errorf("user %s: %w", u.ID, ErrAlreadyExists)
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return fmt.Errorf("email %s: %w", u.Email, ErrAlreadyExists)
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return r.byID[id], nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// DefaultUsers are the accounts seeded at start-up.
func DefaultUsers() []model.User {
	return []model.User{
		{ID: "user123", Name: "Alex Doe", Email: "alex.doe@example.com", AvatarURL: "https://i.pravatar.cc/150?u=alexdoe", Role: model.RoleCustomer},
		{ID: "owner1", Name: "Box Office", Email: "boxoffice@example.com", AvatarURL: "https://i.pravatar.cc/150?u=boxoffice", Role: model.RoleOwner},
	}
}
