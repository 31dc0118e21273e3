package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de leitura para rentabilidade e demanda. Trabalha
// direto sobre o pool: nenhuma consulta aqui participa de transação.
type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// resolvedSales normaliza o feed: cada venda aponta para uma receita, seja
// direto ou via item de cardápio. recipeDirectCost calcula o custo direto
// por porção a partir da ficha técnica vigente.
const (
	resolvedSales = `
	resolved_sales AS (
	    SELECT s.id, s.date, s.quantity, s.line_total, s.period_of_day, s.day_of_week,
	           COALESCE(s.recipe_id, mi.recipe_id) AS recipe_id,
	           mi.section_id
	    FROM sales_records s
	    LEFT JOIN menu_items mi ON mi.id = s.menu_item_id
	)`

	recipeDirectCost = `
	recipe_direct_cost AS (
	    SELECT r.id AS recipe_id,
	           COALESCE(SUM(ri.quantity * p.unit_cost), 0) / r.portion_count AS cost_per_portion
	    FROM recipes r
	    LEFT JOIN recipe_ingredients ri ON ri.recipe_id = r.id
	    LEFT JOIN products p ON p.id = ri.product_id
	    GROUP BY r.id, r.portion_count
	)`
)

func (r *ReportRepo) ReceiptsBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(line_total), 0)
	FROM sales_records
	WHERE date >= $1 AND date <= $2`

	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("report.ReceiptsBetween: %w", err)
	}
	return sum, nil
}

func (r *ReportRepo) DirectCostOfSales(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
	WITH` + resolvedSales + `,` + recipeDirectCost + `
	SELECT COALESCE(SUM(rs.quantity * rdc.cost_per_portion), 0)
	FROM resolved_sales rs
	JOIN recipe_direct_cost rdc ON rdc.recipe_id = rs.recipe_id
	WHERE rs.date >= $1 AND rs.date <= $2`

	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("report.DirectCostOfSales: %w", err)
	}
	return sum, nil
}

func (r *ReportRepo) TopRecipes(ctx context.Context, start, end time.Time, limit int) ([]repository.TopRecipeResult, error) {
	query := `
	WITH` + resolvedSales + `,` + recipeDirectCost + `
	SELECT rec.id,
	       rec.name,
	       SUM(rs.quantity)                                            AS units_sold,
	       SUM(rs.line_total)                                          AS gross_revenue,
	       SUM(rs.quantity * rdc.cost_per_portion)                     AS direct_cost,
	       SUM(rs.line_total - rs.quantity * rdc.cost_per_portion)     AS gross_profit
	FROM resolved_sales rs
	JOIN recipes rec            ON rec.id         = rs.recipe_id
	JOIN recipe_direct_cost rdc ON rdc.recipe_id  = rs.recipe_id
	WHERE rs.date >= $1 AND rs.date <= $2
	GROUP BY rec.id, rec.name
	ORDER BY gross_revenue DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("report.TopRecipes: %w", err)
	}
	defer rows.Close()

	var results []repository.TopRecipeResult
	for rows.Next() {
		var row repository.TopRecipeResult
		if err := rows.Scan(
			&row.RecipeID,
			&row.RecipeName,
			&row.UnitsSold,
			&row.GrossRevenue,
			&row.DirectCost,
			&row.GrossProfit,
		); err != nil {
			return nil, fmt.Errorf("report.TopRecipes scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *ReportRepo) SalesBySection(ctx context.Context, start, end time.Time) ([]repository.SectionSalesResult, error) {
	// Vendas lançadas direto por receita (sem item de cardápio) caem no
	// grupo "Avulso".
	query := `
	WITH` + resolvedSales + `
	SELECT COALESCE(ms.id::TEXT, 'none')  AS section_id,
	       COALESCE(ms.name, 'Avulso')    AS section_name,
	       SUM(rs.quantity)               AS units_sold,
	       SUM(rs.line_total)             AS gross_revenue
	FROM resolved_sales rs
	LEFT JOIN menu_sections ms ON ms.id = rs.section_id
	WHERE rs.date >= $1 AND rs.date <= $2
	GROUP BY ms.id, ms.name
	ORDER BY gross_revenue DESC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("report.SalesBySection: %w", err)
	}
	defer rows.Close()

	var results []repository.SectionSalesResult
	for rows.Next() {
		var row repository.SectionSalesResult
		if err := rows.Scan(&row.SectionID, &row.SectionName, &row.UnitsSold, &row.GrossRevenue); err != nil {
			return nil, fmt.Errorf("report.SalesBySection scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *ReportRepo) MonthlyTrend(ctx context.Context, months int) ([]repository.MonthTrendResult, error) {
	query := `
	WITH` + resolvedSales + `,` + recipeDirectCost + `,
	sales_by_month AS (
	    SELECT date_trunc('month', rs.date)                    AS month,
	           SUM(rs.line_total)                              AS gross_revenue,
	           SUM(rs.quantity * rdc.cost_per_portion)         AS direct_cost
	    FROM resolved_sales rs
	    JOIN recipe_direct_cost rdc ON rdc.recipe_id = rs.recipe_id
	    WHERE rs.date >= date_trunc('month', now()) - ($1 - 1) * INTERVAL '1 month'
	    GROUP BY 1
	),
	overhead_by_month AS (
	    SELECT date_trunc('month', month::TIMESTAMPTZ) AS month,
	           SUM(amount)                             AS indirect_cost
	    FROM overhead_costs
	    WHERE month >= (date_trunc('month', now()) - ($1 - 1) * INTERVAL '1 month')::DATE
	    GROUP BY 1
	)
	SELECT COALESCE(s.month, o.month)          AS month,
	       COALESCE(s.gross_revenue, 0)        AS gross_revenue,
	       COALESCE(s.direct_cost, 0)          AS direct_cost,
	       COALESCE(o.indirect_cost, 0)        AS indirect_cost
	FROM sales_by_month s
	FULL OUTER JOIN overhead_by_month o ON o.month = s.month
	ORDER BY month`

	rows, err := r.pool.Query(ctx, query, months)
	if err != nil {
		return nil, fmt.Errorf("report.MonthlyTrend: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthTrendResult
	for rows.Next() {
		var row repository.MonthTrendResult
		if err := rows.Scan(&row.Month, &row.GrossRevenue, &row.DirectCost, &row.IndirectCost); err != nil {
			return nil, fmt.Errorf("report.MonthlyTrend scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *ReportRepo) DemandByWeekday(ctx context.Context, start, end time.Time) ([]repository.DemandPoint, error) {
	const query = `
	SELECT day_of_week::TEXT,
	       SUM(quantity)                                    AS units_sold,
	       SUM(quantity) / COUNT(DISTINCT date::DATE)       AS avg_units
	FROM sales_records
	WHERE date >= $1 AND date <= $2
	GROUP BY day_of_week
	ORDER BY day_of_week`

	return r.demandPoints(ctx, query, start, end, "report.DemandByWeekday")
}

func (r *ReportRepo) DemandByPeriod(ctx context.Context, start, end time.Time) ([]repository.DemandPoint, error) {
	const query = `
	SELECT period_of_day,
	       SUM(quantity)                                    AS units_sold,
	       SUM(quantity) / COUNT(DISTINCT date::DATE)       AS avg_units
	FROM sales_records
	WHERE date >= $1 AND date <= $2 AND period_of_day <> ''
	GROUP BY period_of_day
	ORDER BY units_sold DESC`

	return r.demandPoints(ctx, query, start, end, "report.DemandByPeriod")
}

func (r *ReportRepo) demandPoints(ctx context.Context, query string, start, end time.Time, op string) ([]repository.DemandPoint, error) {
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var results []repository.DemandPoint
	for rows.Next() {
		var row repository.DemandPoint
		if err := rows.Scan(&row.Dimension, &row.UnitsSold, &row.AvgUnits); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
