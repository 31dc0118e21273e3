package repository

import (
	"context"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// UserRepository porta de persistência de operadores.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
