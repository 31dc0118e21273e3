package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementação de RecipeRepository (pratos + fichas técnicas).
type RecipeRepo struct {
	q Querier
}

func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

const recipeColumns = `id, name, yield_quantity, yield_unit, portion_count, prep_time_minutes,
	margin_percent, indirect_cost_per_portion, active, created_at, updated_at`

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.YieldQuantity, &rec.YieldUnit, &rec.PortionCount,
		&rec.PrepTimeMinutes, &rec.MarginPercent, &rec.IndirectCostPerPortion,
		&rec.Active, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepo) Create(ctx context.Context, rec *entity.Recipe) error {
	query := `
		INSERT INTO recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.Name, rec.YieldQuantity, rec.YieldUnit, rec.PortionCount,
		rec.PrepTimeMinutes, rec.MarginPercent, rec.IndirectCostPerPortion,
		rec.Active, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	rec, err := scanRecipe(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

func (r *RecipeRepo) GetByName(ctx context.Context, name string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE name = $1`
	rec, err := scanRecipe(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe by name: %w", err)
	}
	return rec, nil
}

func (r *RecipeRepo) Update(ctx context.Context, rec *entity.Recipe) error {
	query := `
		UPDATE recipes
		SET name = $2, yield_quantity = $3, yield_unit = $4, portion_count = $5,
		    prep_time_minutes = $6, margin_percent = $7, active = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		rec.ID, rec.Name, rec.YieldQuantity, rec.YieldUnit, rec.PortionCount,
		rec.PrepTimeMinutes, rec.MarginPercent, rec.Active, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecipeRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpsertIngredient insere ou substitui a linha da ficha técnica; a UNIQUE
// (recipe_id, product_id) garante no máximo uma linha por produto.
func (r *RecipeRepo) UpsertIngredient(ctx context.Context, line *entity.RecipeIngredient) error {
	query := `
		INSERT INTO recipe_ingredients (id, recipe_id, product_id, quantity, sort_index, mandatory)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (recipe_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, sort_index = EXCLUDED.sort_index,
			mandatory = EXCLUDED.mandatory`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.RecipeID, line.ProductID, line.Quantity, line.SortIndex, line.Mandatory,
	)
	if err != nil {
		return fmt.Errorf("upsert recipe ingredient: %w", err)
	}
	return nil
}

func (r *RecipeRepo) DeleteIngredient(ctx context.Context, recipeID, productID string) error {
	query := `DELETE FROM recipe_ingredients WHERE recipe_id = $1 AND product_id = $2`
	cmd, err := r.q.Exec(ctx, query, recipeID, productID)
	if err != nil {
		return fmt.Errorf("delete recipe ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecipeRepo) ListIngredients(ctx context.Context, recipeID string) ([]*entity.RecipeIngredient, error) {
	query := `
		SELECT id, recipe_id, product_id, quantity, sort_index, mandatory
		FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY sort_index, id`
	rows, err := r.q.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()

	var out []*entity.RecipeIngredient
	for rows.Next() {
		var line entity.RecipeIngredient
		if err := rows.Scan(
			&line.ID, &line.RecipeID, &line.ProductID, &line.Quantity,
			&line.SortIndex, &line.Mandatory,
		); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		out = append(out, &line)
	}
	return out, rows.Err()
}

// SetIndirectCostForActive grava o rateio mensal em todas as receitas ativas
// com um único UPDATE, dentro da transação do lote.
func (r *RecipeRepo) SetIndirectCostForActive(ctx context.Context, perPortion decimal.Decimal) (int64, error) {
	query := `UPDATE recipes SET indirect_cost_per_portion = $1, updated_at = $2 WHERE active`
	cmd, err := r.q.Exec(ctx, query, perPortion, time.Now())
	if err != nil {
		return 0, fmt.Errorf("set indirect cost: %w", err)
	}
	return cmd.RowsAffected(), nil
}
