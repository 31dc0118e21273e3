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

var _ repository.WasteRepository = (*WasteRepo)(nil)

// WasteRepo implementação de WasteRepository (categorias, eventos, metas).
type WasteRepo struct {
	q Querier
}

func NewWasteRepository(q Querier) *WasteRepo {
	return &WasteRepo{q: q}
}

func (r *WasteRepo) CreateCategory(ctx context.Context, c *entity.WasteCategory) error {
	query := `INSERT INTO waste_categories (id, name, color, active) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Color, c.Active); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert waste category: %w", err)
	}
	return nil
}

func (r *WasteRepo) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.WasteCategory, error) {
	query := `SELECT id, name, color, active FROM waste_categories`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list waste categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.WasteCategory
	for rows.Next() {
		var c entity.WasteCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Active); err != nil {
			return nil, fmt.Errorf("scan waste category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *WasteRepo) CreateEvent(ctx context.Context, e *entity.WasteEvent) error {
	query := `
		INSERT INTO waste_events
			(id, category_id, date, quantity, unit, estimated_loss, product_id, recipe_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CategoryID, e.Date, e.Quantity, e.Unit, e.EstimatedLoss,
		nullIfEmpty(e.ProductID), nullIfEmpty(e.RecipeID), e.Note, e.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert waste event: %w", err)
	}
	return nil
}

// scopeClause monta as condições de escopo a partir do próximo índice livre
// de argumento posicional.
func scopeClause(scope repository.WasteScope, next int, args []any) (string, []any) {
	clause := ""
	if scope.CategoryID != "" {
		clause += fmt.Sprintf(" AND category_id = $%d", next)
		args = append(args, scope.CategoryID)
		next++
	}
	if scope.ProductID != "" {
		clause += fmt.Sprintf(" AND product_id = $%d", next)
		args = append(args, scope.ProductID)
		next++
	}
	if scope.RecipeID != "" {
		clause += fmt.Sprintf(" AND recipe_id = $%d", next)
		args = append(args, scope.RecipeID)
	}
	return clause, args
}

func (r *WasteRepo) ListEvents(ctx context.Context, start, end time.Time, scope repository.WasteScope, limit, offset int) ([]*entity.WasteEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	args := []any{start, end}
	clause, args := scopeClause(scope, 3, args)

	query := `
		SELECT id, category_id, date, quantity, unit, estimated_loss, product_id, recipe_id, note, created_at
		FROM waste_events
		WHERE date >= $1 AND date <= $2` + clause +
		fmt.Sprintf(" ORDER BY date DESC, id LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list waste events: %w", err)
	}
	defer rows.Close()

	var out []*entity.WasteEvent
	for rows.Next() {
		var (
			e                  entity.WasteEvent
			productID, recipID *string
		)
		if err := rows.Scan(
			&e.ID, &e.CategoryID, &e.Date, &e.Quantity, &e.Unit, &e.EstimatedLoss,
			&productID, &recipID, &e.Note, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan waste event: %w", err)
		}
		if productID != nil {
			e.ProductID = *productID
		}
		if recipID != nil {
			e.RecipeID = *recipID
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *WasteRepo) SumLossBetween(ctx context.Context, start, end time.Time, scope repository.WasteScope) (decimal.Decimal, error) {
	args := []any{start, end}
	clause, args := scopeClause(scope, 3, args)

	query := `
		SELECT COALESCE(SUM(estimated_loss), 0)
		FROM waste_events
		WHERE date >= $1 AND date <= $2` + clause

	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum waste loss: %w", err)
	}
	return sum, nil
}

const wasteGoalColumns = `id, description, start_date, end_date, category_id, product_id, recipe_id,
	baseline_value, target_value, target_reduction_pct, active, created_at`

func (r *WasteRepo) CreateGoal(ctx context.Context, g *entity.WasteGoal) error {
	query := `
		INSERT INTO waste_goals (` + wasteGoalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		g.ID, g.Description, g.StartDate, g.EndDate,
		nullIfEmpty(g.CategoryID), nullIfEmpty(g.ProductID), nullIfEmpty(g.RecipeID),
		g.BaselineValue, g.TargetValue, g.TargetReductionPct, g.Active, g.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert waste goal: %w", err)
	}
	return nil
}

func (r *WasteRepo) GetGoal(ctx context.Context, id string) (*entity.WasteGoal, error) {
	query := `SELECT ` + wasteGoalColumns + ` FROM waste_goals WHERE id = $1`
	g, err := scanGoal(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get waste goal: %w", err)
	}
	return g, nil
}

func (r *WasteRepo) UpdateGoal(ctx context.Context, g *entity.WasteGoal) error {
	query := `
		UPDATE waste_goals
		SET description = $2, start_date = $3, end_date = $4,
			baseline_value = $5, target_value = $6, target_reduction_pct = $7, active = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		g.ID, g.Description, g.StartDate, g.EndDate,
		g.BaselineValue, g.TargetValue, g.TargetReductionPct, g.Active,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update waste goal: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WasteRepo) ListGoals(ctx context.Context, activeOnly bool) ([]*entity.WasteGoal, error) {
	query := `SELECT ` + wasteGoalColumns + ` FROM waste_goals`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY start_date DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list waste goals: %w", err)
	}
	defer rows.Close()

	var out []*entity.WasteGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan waste goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanGoal(row pgx.Row) (*entity.WasteGoal, error) {
	var (
		g                            entity.WasteGoal
		categoryID, productID, recID *string
	)
	err := row.Scan(
		&g.ID, &g.Description, &g.StartDate, &g.EndDate, &categoryID, &productID, &recID,
		&g.BaselineValue, &g.TargetValue, &g.TargetReductionPct, &g.Active, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		g.CategoryID = *categoryID
	}
	if productID != nil {
		g.ProductID = *productID
	}
	if recID != nil {
		g.RecipeID = *recID
	}
	return &g, nil
}
