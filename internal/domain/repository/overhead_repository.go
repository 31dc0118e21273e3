package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// OverheadRepository porta de persistência de custos fixos mensais.
type OverheadRepository interface {
	Create(ctx context.Context, c *entity.OverheadCost) error
	GetByID(ctx context.Context, id string) (*entity.OverheadCost, error)
	Delete(ctx context.Context, id string) error
	ListByMonth(ctx context.Context, month time.Time) ([]*entity.OverheadCost, error)
	// SumBetween soma os custos com mês de referência dentro de [start, end].
	SumBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}
