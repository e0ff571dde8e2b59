package ports

import (
	"context"
	"time"

	"github.com/Vince489/Auth/internal/core/domain"
)

type AccountService interface {
	Register(ctx context.Context, userName, password string) (string, error)
	Login(ctx context.Context, userName, password string) (string, *domain.User, error)
	ValidateSession(ctx context.Context, token string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.PublicUser, error)
	TokenTTL() time.Duration
}
