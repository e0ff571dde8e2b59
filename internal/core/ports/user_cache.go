package ports

import (
	"context"

	"github.com/Vince489/Auth/internal/core/domain"
)

// UserCache sits in front of UserRepository.FindByID on the session path.
// A miss or a cache failure falls through to the repository; Set is
// best-effort.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User)
}
