package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementação do livro de movimentos. Append-only: só INSERT e
// SELECT, nunca UPDATE ou DELETE.
type LedgerRepo struct {
	q Querier
}

func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const movementColumns = `id, product_id, kind, quantity, unit_cost, reference, ref_id, note, date, created_at`

// Create acrescenta um movimento ao livro.
func (r *LedgerRepo) Create(ctx context.Context, m *entity.LedgerMovement) error {
	query := `
		INSERT INTO ledger_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.UnitCost, m.Reference,
		nullIfEmpty(m.RefID), m.Note, m.Date, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger movement: %w", err)
	}
	return nil
}

// ListByProduct retorna os movimentos do produto na ordem canônica
// (date, id) ascendente, que testemunha a sequência de custos médios.
func (r *LedgerRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM ledger_movements WHERE product_id = $1`
	args := []any{productID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY date, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func (r *LedgerRepo) ListBetween(ctx context.Context, start, end time.Time, limit, offset int) ([]*entity.LedgerMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM ledger_movements
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, start, end, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.LedgerMovement, error) {
	var out []*entity.LedgerMovement
	for rows.Next() {
		var m entity.LedgerMovement
		var refID *string
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.UnitCost, &m.Reference,
			&refID, &m.Note, &m.Date, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger movement: %w", err)
		}
		if refID != nil {
			m.RefID = *refID
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
