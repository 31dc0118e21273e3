package repository

import (
	"context"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// MenuRepository porta de persistência de cardápios, seções e itens.
type MenuRepository interface {
	CreateMenu(ctx context.Context, m *entity.Menu) error
	GetMenu(ctx context.Context, id string) (*entity.Menu, error)
	UpdateMenu(ctx context.Context, m *entity.Menu) error
	ListMenus(ctx context.Context, activeOnly bool) ([]*entity.Menu, error)

	CreateSection(ctx context.Context, s *entity.MenuSection) error
	ListSections(ctx context.Context, menuID string) ([]*entity.MenuSection, error)

	CreateItem(ctx context.Context, it *entity.MenuItem) error
	UpdateItem(ctx context.Context, it *entity.MenuItem) error
	GetItem(ctx context.Context, id string) (*entity.MenuItem, error)
	ListItemsBySection(ctx context.Context, sectionID string) ([]*entity.MenuItem, error)
	ListItemsByMenu(ctx context.Context, menuID string) ([]*entity.MenuItem, error)
}
