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

var _ repository.OverheadRepository = (*OverheadRepo)(nil)

// OverheadRepo implementação de OverheadRepository (custos fixos mensais).
type OverheadRepo struct {
	q Querier
}

func NewOverheadRepository(q Querier) *OverheadRepo {
	return &OverheadRepo{q: q}
}

const overheadColumns = `id, description, amount, month, category, recurring, created_at`

func (r *OverheadRepo) Create(ctx context.Context, c *entity.OverheadCost) error {
	query := `
		INSERT INTO overhead_costs (` + overheadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Description, c.Amount, c.Month, c.Category, c.Recurring, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert overhead cost: %w", err)
	}
	return nil
}

func (r *OverheadRepo) GetByID(ctx context.Context, id string) (*entity.OverheadCost, error) {
	query := `SELECT ` + overheadColumns + ` FROM overhead_costs WHERE id = $1`
	var c entity.OverheadCost
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Description, &c.Amount, &c.Month, &c.Category, &c.Recurring, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get overhead cost: %w", err)
	}
	return &c, nil
}

func (r *OverheadRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM overhead_costs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete overhead cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OverheadRepo) ListByMonth(ctx context.Context, month time.Time) ([]*entity.OverheadCost, error) {
	query := `SELECT ` + overheadColumns + ` FROM overhead_costs WHERE month = $1 ORDER BY description`
	rows, err := r.q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("list overhead costs: %w", err)
	}
	defer rows.Close()

	var out []*entity.OverheadCost
	for rows.Next() {
		var c entity.OverheadCost
		if err := rows.Scan(
			&c.ID, &c.Description, &c.Amount, &c.Month, &c.Category, &c.Recurring, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan overhead cost: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// SumBetween soma os custos com mês de referência dentro de [start, end].
// COALESCE devolve zero para períodos sem lançamentos.
func (r *OverheadRepo) SumBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM overhead_costs WHERE month BETWEEN $1 AND $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum overhead costs: %w", err)
	}
	return sum, nil
}
