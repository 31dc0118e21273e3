package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo implementação de SalesRepository. O feed é append-only: cada
// registro enviado vira uma linha nova, sem deduplicação.
type SalesRepo struct {
	q Querier
}

func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

const salesColumns = `id, date, menu_item_id, recipe_id, quantity, unit_price, line_total,
	period_of_day, day_of_week, week_of_month, month, holiday, event, weather, created_at`

func (r *SalesRepo) Create(ctx context.Context, s *entity.SalesRecord) error {
	query := `
		INSERT INTO sales_records (` + salesColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, nullIfEmpty(s.MenuItemID), nullIfEmpty(s.RecipeID),
		s.Quantity, s.UnitPrice, s.LineTotal,
		s.PeriodOfDay, s.DayOfWeek, s.WeekOfMonth, s.Month, s.Holiday, s.Event, s.Weather,
		s.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert sales record: %w", err)
	}
	return nil
}

func (r *SalesRepo) ListBetween(ctx context.Context, start, end time.Time, limit, offset int) ([]*entity.SalesRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + salesColumns + `
		FROM sales_records
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC, id
		LIMIT $3 OFFSET $4`

	rows, err := r.q.Query(ctx, query, start, end, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales records: %w", err)
	}
	defer rows.Close()

	var out []*entity.SalesRecord
	for rows.Next() {
		var (
			s                    entity.SalesRecord
			menuItemID, recipeID *string
		)
		if err := rows.Scan(
			&s.ID, &s.Date, &menuItemID, &recipeID,
			&s.Quantity, &s.UnitPrice, &s.LineTotal,
			&s.PeriodOfDay, &s.DayOfWeek, &s.WeekOfMonth, &s.Month, &s.Holiday, &s.Event, &s.Weather,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sales record: %w", err)
		}
		if menuItemID != nil {
			s.MenuItemID = *menuItemID
		}
		if recipeID != nil {
			s.RecipeID = *recipeID
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
