package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// RecipeRepository porta de persistência de pratos e fichas técnicas.
type RecipeRepository interface {
	Create(ctx context.Context, r *entity.Recipe) error
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	GetByName(ctx context.Context, name string) (*entity.Recipe, error)
	Update(ctx context.Context, r *entity.Recipe) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Recipe, error)

	// Ficha técnica: no máximo uma linha por (receita, produto).
	UpsertIngredient(ctx context.Context, line *entity.RecipeIngredient) error
	DeleteIngredient(ctx context.Context, recipeID, productID string) error
	ListIngredients(ctx context.Context, recipeID string) ([]*entity.RecipeIngredient, error)

	// SetIndirectCostForActive grava o rateio mensal em todas as receitas
	// ativas de uma vez (um único UPDATE). Retorna quantas foram atingidas.
	SetIndirectCostForActive(ctx context.Context, perPortion decimal.Decimal) (int64, error)
}
