package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainauth "stayseek/internal/domain/auth"
	domainuser "stayseek/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrPasswordTooShort   = errors.New("auth: password must be at least 8 characters")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenGenerator interface {
	NewToken() (string, error)
}

// Service implements the identity collaborator: it resolves a request
// token into a (user id, role) fact and manages sessions.
type Service struct {
	Users      domainuser.Repository
	Sessions   domainauth.SessionStore
	Passwords  PasswordHasher
	Tokens     TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

type RegisterParams struct {
	Email        string
	Name         string
	Password     string
	WantToManage bool
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *domainuser.User
	Token string
}

type ResolveResult struct {
	User    *domainuser.User
	Session *domainauth.Session
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if err := s.validatePassword(params.Password); err != nil {
		return nil, err
	}
	hash, err := s.Passwords.Hash(params.Password)
	if err != nil {
		return nil, err
	}
	role := domainuser.RoleGuest
	if params.WantToManage {
		role = domainuser.RoleTenant
	}
	created, err := domainuser.NewUser(domainuser.CreateParams{
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}
	if existing, err := s.Users.ByEmail(ctx, created.Email); err == nil && existing != nil {
		return nil, domainuser.ErrEmailAlreadyUsed
	}
	if err := s.Users.Save(ctx, created); err != nil {
		return nil, err
	}
	token, err := s.startSession(ctx, created)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user registered", "user", created.ID, "role", created.Role)
	}
	return &AuthResult{User: created, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	found, err := s.Users.ByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.Passwords.Compare(found.PasswordHash, params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.startSession(ctx, found)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: found, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domainauth.ErrTokenRequired
	}
	return s.Sessions.Delete(ctx, domainauth.Token(token))
}

// ResolveToken maps a bearer token onto its user; expired or unknown
// sessions come back as ErrSessionNotFound.
func (s *Service) ResolveToken(ctx context.Context, token string) (*ResolveResult, error) {
	session, err := s.Sessions.ByToken(ctx, domainauth.Token(strings.TrimSpace(token)))
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, domainauth.ErrSessionNotFound
	}
	found, err := s.Users.ByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return &ResolveResult{User: found, Session: session}, nil
}

func (s *Service) startSession(ctx context.Context, u *domainuser.User) (string, error) {
	raw, err := s.Tokens.NewToken()
	if err != nil {
		return "", err
	}
	session, err := domainauth.NewSession(domainauth.CreateSessionParams{
		Token:  domainauth.Token(raw),
		UserID: u.ID,
		Role:   u.Role,
		TTL:    s.ttl(),
	})
	if err != nil {
		return "", err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return raw, nil
}

func (s *Service) validatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *Service) ttl() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 24 * time.Hour
}
