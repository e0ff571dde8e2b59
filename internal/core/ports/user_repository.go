package ports

import (
	"context"

	"github.com/Vince489/Auth/internal/core/domain"
)

// UserRepository defines the interface for user-record persistence.
// Implementations must enforce userName uniqueness at the storage layer and
// surface duplicate writes as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUserName(ctx context.Context, userName string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
