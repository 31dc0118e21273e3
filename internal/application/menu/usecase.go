package menu

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/application/recipe"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/costing"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// RecipeCoster resolve o custeio de um prato na leitura.
type RecipeCoster interface {
	Costing(ctx context.Context, recipeID string) (*recipe.CostingView, error)
}

// UseCase compõe cardápios e deriva a precificação dos itens. Preço efetivo,
// ticket médio e margem ponderada são visões calculadas na leitura, nunca
// colunas.
type UseCase struct {
	menuRepo   repository.MenuRepository
	recipeRepo repository.RecipeRepository
	coster     RecipeCoster
}

func NewUseCase(menuRepo repository.MenuRepository, recipeRepo repository.RecipeRepository, coster RecipeCoster) *UseCase {
	return &UseCase{menuRepo: menuRepo, recipeRepo: recipeRepo, coster: coster}
}

// ── Cardápios ─────────────────────────────────────────────────────────────────

// MenuInput entrada de criação/edição de cardápio.
type MenuInput struct {
	Name      string
	StartDate time.Time
	EndDate   *time.Time
}

func (in MenuInput) validate() error {
	if in.Name == "" || in.StartDate.IsZero() {
		return domain.ErrInvalidInput
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateMenu cria um cardápio com janela de vigência própria.
func (uc *UseCase) CreateMenu(ctx context.Context, in MenuInput) (*entity.Menu, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Menu{
		ID:        uuid.New().String(),
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.menuRepo.CreateMenu(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMenu edita nome, vigência e flag de ativo. Cardápios históricos nunca
// são apagados, apenas desativados.
func (uc *UseCase) UpdateMenu(ctx context.Context, id string, in MenuInput, active bool) (*entity.Menu, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	m, err := uc.menuRepo.GetMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.Name = in.Name
	m.StartDate = in.StartDate
	m.EndDate = in.EndDate
	m.Active = active
	m.UpdatedAt = time.Now()
	if err := uc.menuRepo.UpdateMenu(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetMenu busca um cardápio por id.
func (uc *UseCase) GetMenu(ctx context.Context, id string) (*entity.Menu, error) {
	m, err := uc.menuRepo.GetMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// ListMenus lista cardápios, opcionalmente só os ativos.
func (uc *UseCase) ListMenus(ctx context.Context, activeOnly bool) ([]*entity.Menu, error) {
	return uc.menuRepo.ListMenus(ctx, activeOnly)
}

// AddSection acrescenta uma seção ordenada ao cardápio.
func (uc *UseCase) AddSection(ctx context.Context, menuID, name string, sortIndex int) (*entity.MenuSection, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.menuRepo.GetMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	s := &entity.MenuSection{
		ID:        uuid.New().String(),
		MenuID:    menuID,
		Name:      name,
		SortIndex: sortIndex,
	}
	if err := uc.menuRepo.CreateSection(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ── Itens ─────────────────────────────────────────────────────────────────────

// ItemInput entrada de item de cardápio.
type ItemInput struct {
	RecipeID      string
	PriceOverride *decimal.Decimal
	Featured      bool
	Available     bool
	SortIndex     int
}

func (in ItemInput) validate() error {
	if in.RecipeID == "" {
		return domain.ErrInvalidInput
	}
	if in.PriceOverride != nil && in.PriceOverride.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// AddItem vincula um prato a uma seção. No máximo um item por (seção, prato).
func (uc *UseCase) AddItem(ctx context.Context, sectionID string, in ItemInput) (*entity.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	r, err := uc.recipeRepo.GetByID(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	siblings, err := uc.menuRepo.ListItemsBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	for _, sib := range siblings {
		if sib.RecipeID == in.RecipeID {
			return nil, domain.ErrDuplicate
		}
	}
	it := &entity.MenuItem{
		ID:            uuid.New().String(),
		SectionID:     sectionID,
		RecipeID:      in.RecipeID,
		PriceOverride: in.PriceOverride,
		Featured:      in.Featured,
		Available:     in.Available,
		SortIndex:     in.SortIndex,
	}
	if err := uc.menuRepo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// UpdateItem edita override de preço, destaque, disponibilidade e ordem.
func (uc *UseCase) UpdateItem(ctx context.Context, id string, in ItemInput) (*entity.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	it, err := uc.menuRepo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	it.PriceOverride = in.PriceOverride
	it.Featured = in.Featured
	it.Available = in.Available
	it.SortIndex = in.SortIndex
	if err := uc.menuRepo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// ── Precificação ──────────────────────────────────────────────────────────────

// PricedItem item com o preço efetivo resolvido: override quando presente,
// senão o preço sugerido do prato.
type PricedItem struct {
	ItemID         string
	RecipeID       string
	RecipeName     string
	EffectivePrice decimal.Decimal
	CostPerPortion decimal.Decimal
	MarginPercent  decimal.Decimal
	Overridden     bool
	Featured       bool
	Available      bool
	SortIndex      int
}

// PricedSection seção com seus itens precificados.
type PricedSection struct {
	SectionID string
	Name      string
	SortIndex int
	Items     []PricedItem
}

// PricedMenu visão de precificação do cardápio inteiro, com ticket médio e
// margem ponderada sobre os itens com preço conhecido.
type PricedMenu struct {
	MenuID                string
	Name                  string
	Sections              []PricedSection
	TicketAverage         decimal.Decimal
	WeightedMarginPercent decimal.Decimal
}

// Price monta a visão precificada do cardápio. Itens sem preço conhecido
// (sugerido zero e sem override) ficam fora do ticket médio e da margem
// ponderada.
func (uc *UseCase) Price(ctx context.Context, menuID string) (*PricedMenu, error) {
	m, err := uc.menuRepo.GetMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	sections, err := uc.menuRepo.ListSections(ctx, menuID)
	if err != nil {
		return nil, err
	}

	view := &PricedMenu{MenuID: m.ID, Name: m.Name}
	priceSum := decimal.Zero
	costSum := decimal.Zero
	priced := 0

	for _, s := range sections {
		sec := PricedSection{SectionID: s.ID, Name: s.Name, SortIndex: s.SortIndex}
		items, err := uc.menuRepo.ListItemsBySection(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			cv, err := uc.coster.Costing(ctx, it.RecipeID)
			if err != nil {
				return nil, err
			}
			pi := PricedItem{
				ItemID:         it.ID,
				RecipeID:       it.RecipeID,
				RecipeName:     cv.RecipeName,
				CostPerPortion: cv.TotalCostPerPortion,
				Featured:       it.Featured,
				Available:      it.Available,
				SortIndex:      it.SortIndex,
			}
			if it.PriceOverride != nil {
				pi.EffectivePrice = *it.PriceOverride
				pi.Overridden = true
			} else {
				pi.EffectivePrice = cv.SuggestedPrice
			}
			pi.MarginPercent = costing.MarginPercent(pi.EffectivePrice, pi.CostPerPortion)
			sec.Items = append(sec.Items, pi)

			if pi.EffectivePrice.GreaterThan(decimal.Zero) {
				priceSum = priceSum.Add(pi.EffectivePrice)
				costSum = costSum.Add(pi.CostPerPortion)
				priced++
			}
		}
		view.Sections = append(view.Sections, sec)
	}

	if priced > 0 {
		view.TicketAverage = priceSum.Div(decimal.NewFromInt(int64(priced))).RoundBank(costing.TotalPlaces)
		view.WeightedMarginPercent = costing.MarginPercent(priceSum, costSum)
	}
	return view, nil
}
