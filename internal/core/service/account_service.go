package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vince489/Auth/internal/core/domain"
	"github.com/Vince489/Auth/internal/core/ports"
)

// passwordHashCost is the bcrypt work factor applied to every new password.
const passwordHashCost = bcrypt.DefaultCost

// defaultTokenTTL is the session validity window measured from issuance.
const defaultTokenTTL = 3 * 24 * time.Hour

// CodeNameGenerator produces the public display alias assigned at
// registration. No uniqueness guarantee is required of it.
type CodeNameGenerator func() string

// AccountService implements registration, login and session validation.
//
// Sessions are stateless: a token stays valid until its expiry regardless of
// logout, because no server-side session table exists to revoke it.
type AccountService struct {
	repo      ports.UserRepository
	cache     ports.UserCache
	codeName  CodeNameGenerator
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAccountService(repo ports.UserRepository, cache ports.UserCache, codeName CodeNameGenerator, jwtSecret string, tokenTTL time.Duration) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if codeName == nil {
		codeName = GenerateCodeName
	}
	return &AccountService{
		repo:      repo,
		cache:     cache,
		codeName:  codeName,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// TokenTTL reports the configured session validity window.
func (s *AccountService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Register creates a new account and returns its generated codeName. The
// userName pre-check is advisory; the repository's unique constraint is what
// actually closes the race between concurrent registrations.
func (s *AccountService) Register(ctx context.Context, userName, password string) (string, error) {
	if _, err := s.repo.FindByUserName(ctx, userName); err == nil {
		return "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		UserName:     userName,
		CodeName:     s.codeName(),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", err
	}
	return created.CodeName, nil
}

// Login verifies the submitted credentials and issues a signed session token.
func (s *AccountService) Login(ctx context.Context, userName, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidUserName
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidPassword
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, user, nil
}

// ValidateSession verifies a token's signature and expiry, then resolves the
// id claim back to the owning record.
func (s *AccountService) ValidateSession(ctx context.Context, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	id, _ := claims["user_id"].(string)
	if id == "" {
		return nil, domain.ErrInvalidToken
	}

	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, id); ok {
			return user, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, user)
	}
	return user, nil
}

// GetUserByID resolves a record by its opaque identifier.
func (s *AccountService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// ListUsers returns the public projection of every record. No pagination: the
// endpoint serves the full set.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *AccountService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"user_name": user.UserName,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
