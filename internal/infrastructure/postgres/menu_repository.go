package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implementação de MenuRepository (cardápios, seções, itens).
type MenuRepo struct {
	q Querier
}

func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

func (r *MenuRepo) CreateMenu(ctx context.Context, m *entity.Menu) error {
	query := `
		INSERT INTO menus (id, name, start_date, end_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.StartDate, m.EndDate, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert menu: %w", err)
	}
	return nil
}

func (r *MenuRepo) GetMenu(ctx context.Context, id string) (*entity.Menu, error) {
	query := `
		SELECT id, name, start_date, end_date, active, created_at, updated_at
		FROM menus WHERE id = $1`
	var m entity.Menu
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.StartDate, &m.EndDate, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return &m, nil
}

func (r *MenuRepo) UpdateMenu(ctx context.Context, m *entity.Menu) error {
	query := `
		UPDATE menus SET name = $2, start_date = $3, end_date = $4, active = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, m.ID, m.Name, m.StartDate, m.EndDate, m.Active, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MenuRepo) ListMenus(ctx context.Context, activeOnly bool) ([]*entity.Menu, error) {
	query := `SELECT id, name, start_date, end_date, active, created_at, updated_at FROM menus`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY start_date DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	var out []*entity.Menu
	for rows.Next() {
		var m entity.Menu
		if err := rows.Scan(
			&m.ID, &m.Name, &m.StartDate, &m.EndDate, &m.Active, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *MenuRepo) CreateSection(ctx context.Context, s *entity.MenuSection) error {
	query := `INSERT INTO menu_sections (id, menu_id, name, sort_index) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.MenuID, s.Name, s.SortIndex); err != nil {
		return fmt.Errorf("insert menu section: %w", err)
	}
	return nil
}

func (r *MenuRepo) ListSections(ctx context.Context, menuID string) ([]*entity.MenuSection, error) {
	query := `
		SELECT id, menu_id, name, sort_index
		FROM menu_sections WHERE menu_id = $1 ORDER BY sort_index, name`
	rows, err := r.q.Query(ctx, query, menuID)
	if err != nil {
		return nil, fmt.Errorf("list menu sections: %w", err)
	}
	defer rows.Close()

	var out []*entity.MenuSection
	for rows.Next() {
		var s entity.MenuSection
		if err := rows.Scan(&s.ID, &s.MenuID, &s.Name, &s.SortIndex); err != nil {
			return nil, fmt.Errorf("scan menu section: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

const menuItemColumns = `id, section_id, recipe_id, price_override, featured, available, sort_index`

func (r *MenuRepo) CreateItem(ctx context.Context, it *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (` + menuItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.SectionID, it.RecipeID, it.PriceOverride, it.Featured, it.Available, it.SortIndex,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func (r *MenuRepo) UpdateItem(ctx context.Context, it *entity.MenuItem) error {
	query := `
		UPDATE menu_items
		SET price_override = $2, featured = $3, available = $4, sort_index = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, it.ID, it.PriceOverride, it.Featured, it.Available, it.SortIndex)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MenuRepo) GetItem(ctx context.Context, id string) (*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	var it entity.MenuItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.SectionID, &it.RecipeID, &it.PriceOverride, &it.Featured, &it.Available, &it.SortIndex,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &it, nil
}

func (r *MenuRepo) ListItemsBySection(ctx context.Context, sectionID string) ([]*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE section_id = $1 ORDER BY sort_index, id`
	rows, err := r.q.Query(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	return collectMenuItems(rows)
}

func (r *MenuRepo) ListItemsByMenu(ctx context.Context, menuID string) ([]*entity.MenuItem, error) {
	query := `
		SELECT it.id, it.section_id, it.recipe_id, it.price_override, it.featured, it.available, it.sort_index
		FROM menu_items it
		JOIN menu_sections s ON s.id = it.section_id
		WHERE s.menu_id = $1
		ORDER BY s.sort_index, it.sort_index`
	rows, err := r.q.Query(ctx, query, menuID)
	if err != nil {
		return nil, fmt.Errorf("list menu items by menu: %w", err)
	}
	defer rows.Close()
	return collectMenuItems(rows)
}

func collectMenuItems(rows pgx.Rows) ([]*entity.MenuItem, error) {
	var out []*entity.MenuItem
	for rows.Next() {
		var it entity.MenuItem
		if err := rows.Scan(
			&it.ID, &it.SectionID, &it.RecipeID, &it.PriceOverride, &it.Featured, &it.Available, &it.SortIndex,
		); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}
