package user

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

type Repository interface {
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	Create(user User) (User, error)
	Update(id int, user User) (User, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{
		users:  make([]User, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, u := range seed {
		repo.users = append(repo.users, u)
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users = append(r.users, user)
	return user, nil
}

func (r *InMemoryRepository) Update(id int, update User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			u.Email = update.Email
			u.DisplayName = update.DisplayName
			if update.Password != "" {
				u.Password = update.Password
			}
			if update.UpdatedAt != "" {
				u.UpdatedAt = update.UpdatedAt
			}
			r.users[i] = u
			return u, nil
		}
	}
	return User{}, ErrNotFound
}
