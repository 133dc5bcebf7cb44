package memory

import (
	"context"
	"sync"
	"time"

	"stayseek/internal/domain/auth"
	"stayseek/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[user.ID]*user.User
	emails map[string]user.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		items:  make(map[user.ID]*user.User),
		emails: make(map[string]user.ID),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id user.ID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found, ok := r.items[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	copied := *found
	return &copied, nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.emails[user.NormalizeEmail(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	copied := *r.items[id]
	return &copied, nil
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.emails[u.Email]; ok && existing != u.ID {
		return user.ErrEmailAlreadyUsed
	}
	if u.ID == 0 {
		r.nextID++
		u.ID = user.ID(r.nextID)
	}
	copied := *u
	r.items[u.ID] = &copied
	r.emails[u.Email] = u.ID
	return nil
}

type SessionStore struct {
	mu    sync.RWMutex
	items map[auth.Token]*auth.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{items: make(map[auth.Token]*auth.Session)}
}

func (s *SessionStore) ByToken(ctx context.Context, token auth.Token) (*auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.items[token]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		return nil, auth.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *SessionStore) Save(ctx context.Context, session *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.items[session.Token] = &copied
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token auth.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
	return nil
}

var (
	_ user.Repository   = (*UserRepository)(nil)
	_ auth.SessionStore = (*SessionStore)(nil)
)
