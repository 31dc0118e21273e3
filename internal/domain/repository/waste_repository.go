package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// WasteScope filtra eventos por categoria, produto ou receita. Campos vazios
// não filtram.
type WasteScope struct {
	CategoryID string
	ProductID  string
	RecipeID   string
}

// WasteRepository porta de persistência de desperdício (categorias, eventos, metas).
type WasteRepository interface {
	CreateCategory(ctx context.Context, c *entity.WasteCategory) error
	ListCategories(ctx context.Context, activeOnly bool) ([]*entity.WasteCategory, error)

	CreateEvent(ctx context.Context, e *entity.WasteEvent) error
	ListEvents(ctx context.Context, start, end time.Time, scope WasteScope, limit, offset int) ([]*entity.WasteEvent, error)
	// SumLossBetween soma estimated_loss dos eventos na janela, após o filtro de escopo.
	SumLossBetween(ctx context.Context, start, end time.Time, scope WasteScope) (decimal.Decimal, error)

	CreateGoal(ctx context.Context, g *entity.WasteGoal) error
	GetGoal(ctx context.Context, id string) (*entity.WasteGoal, error)
	UpdateGoal(ctx context.Context, g *entity.WasteGoal) error
	ListGoals(ctx context.Context, activeOnly bool) ([]*entity.WasteGoal, error)
}
