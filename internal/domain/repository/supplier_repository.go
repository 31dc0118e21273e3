package repository

import (
	"context"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// SupplierRepository porta de persistência de fornecedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Supplier, error)
}
