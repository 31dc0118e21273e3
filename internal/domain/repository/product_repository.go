package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// ProductRepository porta de persistência de insumos.
// UnitCost e StockOnHand só mudam via UpdateCostAndStock, chamado pelo livro
// de movimentos dentro da transação que gravou o movimento.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloqueia a fila do produto (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	UpdateCostAndStock(ctx context.Context, id string, unitCost, stockOnHand decimal.Decimal) error
	UpdateStockMin(ctx context.Context, id string, stockMin decimal.Decimal) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error)
	// ListBelowMinimum retorna os produtos com stock_on_hand < stock_min.
	ListBelowMinimum(ctx context.Context) ([]*entity.Product, error)
	Deactivate(ctx context.Context, id string) error
}
