package recipe

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/costing"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// UseCase cuida dos pratos: ficha técnica, custeio reativo e rateio mensal de
// custos fixos. Edições de ficha técnica nunca movem estoque; estoque só muda
// pelo livro de movimentos.
type UseCase struct {
	txRunner     TxRunner
	recipeRepo   repository.RecipeRepository
	productRepo  repository.ProductRepository
	overheadRepo repository.OverheadRepository
}

// NewUseCase constrói o caso de uso de pratos e custos fixos.
func NewUseCase(
	txRunner TxRunner,
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	overheadRepo repository.OverheadRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		recipeRepo:   recipeRepo,
		productRepo:  productRepo,
		overheadRepo: overheadRepo,
	}
}

// ── Pratos ────────────────────────────────────────────────────────────────────

// RecipeInput entrada de criação/edição de prato.
type RecipeInput struct {
	Name            string
	YieldQuantity   decimal.Decimal
	YieldUnit       string
	PortionCount    int
	PrepTimeMinutes int
	MarginPercent   decimal.Decimal
}

func (in RecipeInput) validate() error {
	if in.Name == "" || !in.YieldQuantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.PortionCount <= 0 || in.MarginPercent.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateRecipe cria um prato. Nome é chave natural única.
func (uc *UseCase) CreateRecipe(ctx context.Context, in RecipeInput) (*entity.Recipe, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := uc.recipeRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	r := &entity.Recipe{
		ID:              uuid.New().String(),
		Name:            in.Name,
		YieldQuantity:   in.YieldQuantity,
		YieldUnit:       in.YieldUnit,
		PortionCount:    in.PortionCount,
		PrepTimeMinutes: in.PrepTimeMinutes,
		MarginPercent:   in.MarginPercent,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.recipeRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateRecipe edita o prato e marca updated_at. O rateio em cache
// (IndirectCostPerPortion) não é tocado aqui.
func (uc *UseCase) UpdateRecipe(ctx context.Context, id string, in RecipeInput, active bool) (*entity.Recipe, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	r, err := uc.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	r.Name = in.Name
	r.YieldQuantity = in.YieldQuantity
	r.YieldUnit = in.YieldUnit
	r.PortionCount = in.PortionCount
	r.PrepTimeMinutes = in.PrepTimeMinutes
	r.MarginPercent = in.MarginPercent
	r.Active = active
	r.UpdatedAt = time.Now()
	if err := uc.recipeRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetRecipe busca um prato por id.
func (uc *UseCase) GetRecipe(ctx context.Context, id string) (*entity.Recipe, error) {
	r, err := uc.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// ListRecipes lista pratos, opcionalmente só os ativos.
func (uc *UseCase) ListRecipes(ctx context.Context, activeOnly bool) ([]*entity.Recipe, error) {
	return uc.recipeRepo.List(ctx, activeOnly)
}

// ── Ficha técnica ─────────────────────────────────────────────────────────────

// IngredientInput linha da ficha técnica.
type IngredientInput struct {
	ProductID string
	Quantity  decimal.Decimal
	SortIndex int
	Mandatory bool
}

// SetIngredient insere ou atualiza a linha do insumo no prato (no máximo uma
// linha por produto). Marca updated_at do prato.
func (uc *UseCase) SetIngredient(ctx context.Context, recipeID string, in IngredientInput) error {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	r, err := uc.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	line := &entity.RecipeIngredient{
		ID:        uuid.New().String(),
		RecipeID:  recipeID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		SortIndex: in.SortIndex,
		Mandatory: in.Mandatory,
	}
	if err := uc.recipeRepo.UpsertIngredient(ctx, line); err != nil {
		return err
	}
	r.UpdatedAt = time.Now()
	return uc.recipeRepo.Update(ctx, r)
}

// RemoveIngredient remove a linha do insumo.
func (uc *UseCase) RemoveIngredient(ctx context.Context, recipeID, productID string) error {
	r, err := uc.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if err := uc.recipeRepo.DeleteIngredient(ctx, recipeID, productID); err != nil {
		return err
	}
	r.UpdatedAt = time.Now()
	return uc.recipeRepo.Update(ctx, r)
}

// ── Custeio ───────────────────────────────────────────────────────────────────

// CostingView é o custeio derivado de um prato: valores calculados na leitura,
// nunca armazenados (exceto o rateio, que é cache do lote mensal).
type CostingView struct {
	RecipeID               string
	RecipeName             string
	DirectCostTotal        decimal.Decimal
	MandatoryCostTotal     decimal.Decimal
	OptionalCostTotal      decimal.Decimal
	DirectCostPerPortion   decimal.Decimal
	IndirectCostPerPortion decimal.Decimal
	TotalCostPerPortion    decimal.Decimal
	SuggestedPrice         decimal.Decimal
	Lines                  []CostingLine
}

// CostingLine linha da ficha técnica com o custo resolvido.
type CostingLine struct {
	ProductID   string
	ProductName string
	Unit        string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	LineCost    decimal.Decimal
	Mandatory   bool
}

// Costing explode a ficha técnica contra os custos médios atuais dos insumos
// e devolve o custeio completo do prato. Insumo com custo zero não quebra o
// cálculo: a linha soma zero.
func (uc *UseCase) Costing(ctx context.Context, recipeID string) (*CostingView, error) {
	r, err := uc.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	ingredients, err := uc.recipeRepo.ListIngredients(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	view := &CostingView{
		RecipeID:               r.ID,
		RecipeName:             r.Name,
		IndirectCostPerPortion: r.IndirectCostPerPortion,
	}
	bom := make([]costing.BOMLine, 0, len(ingredients))
	for _, ing := range ingredients {
		product, err := uc.productRepo.GetByID(ctx, ing.ProductID)
		if err != nil {
			return nil, err
		}
		line := CostingLine{
			ProductID: ing.ProductID,
			Quantity:  ing.Quantity,
			Mandatory: ing.Mandatory,
		}
		if product != nil {
			line.ProductName = product.Name
			line.Unit = product.Unit
			line.UnitCost = product.UnitCost
		}
		line.LineCost = line.Quantity.Mul(line.UnitCost).RoundBank(costing.TotalPlaces)
		view.Lines = append(view.Lines, line)
		bom = append(bom, costing.BOMLine{Quantity: line.Quantity, UnitCost: line.UnitCost, Mandatory: ing.Mandatory})
	}

	view.DirectCostTotal, view.MandatoryCostTotal, view.OptionalCostTotal = costing.RecipeDirectCost(bom)
	view.DirectCostPerPortion = costing.CostPerPortion(view.DirectCostTotal, r.PortionCount)
	view.TotalCostPerPortion = view.DirectCostPerPortion.Add(r.IndirectCostPerPortion)
	view.SuggestedPrice = costing.SuggestedPrice(view.TotalCostPerPortion, r.MarginPercent)
	return view, nil
}

// TotalCostPerPortion atalho usado por desperdício e relatórios.
func (uc *UseCase) TotalCostPerPortion(ctx context.Context, recipeID string) (decimal.Decimal, error) {
	view, err := uc.Costing(ctx, recipeID)
	if err != nil {
		return decimal.Zero, err
	}
	return view.TotalCostPerPortion, nil
}

// ── Custos fixos e rateio ─────────────────────────────────────────────────────

// OverheadInput entrada de custo fixo.
type OverheadInput struct {
	Description string
	Amount      decimal.Decimal
	Month       time.Time
	Category    string
	Recurring   bool
}

// CreateOverhead registra um custo fixo no mês de referência (normalizado ao
// primeiro dia do mês).
func (uc *UseCase) CreateOverhead(ctx context.Context, in OverheadInput) (*entity.OverheadCost, error) {
	if in.Description == "" || in.Amount.LessThan(decimal.Zero) || in.Month.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.OverheadCost{
		ID:          uuid.New().String(),
		Description: in.Description,
		Amount:      in.Amount,
		Month:       firstOfMonth(in.Month),
		Category:    in.Category,
		Recurring:   in.Recurring,
		CreatedAt:   time.Now(),
	}
	if err := uc.overheadRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListOverheadByMonth lista os custos fixos do mês.
func (uc *UseCase) ListOverheadByMonth(ctx context.Context, month time.Time) ([]*entity.OverheadCost, error) {
	return uc.overheadRepo.ListByMonth(ctx, firstOfMonth(month))
}

// DeleteOverhead remove um custo fixo.
func (uc *UseCase) DeleteOverhead(ctx context.Context, id string) error {
	c, err := uc.overheadRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.overheadRepo.Delete(ctx, id)
}

// ApportionResult resultado do rateio mensal.
type ApportionResult struct {
	Month            time.Time
	TotalOverhead    decimal.Decimal
	ExpectedPortions decimal.Decimal
	PerPortion       decimal.Decimal
	RecipesUpdated   int64
}

// ApportionOverhead soma os custos fixos do mês, divide pelas porções
// esperadas e grava o rateio em todas as receitas ativas, tudo em uma única
// transação. O preço sugerido é derivado na leitura e acompanha o novo rateio
// automaticamente.
func (uc *UseCase) ApportionOverhead(ctx context.Context, month time.Time, expectedPortions decimal.Decimal) (*ApportionResult, error) {
	if month.IsZero() || !expectedPortions.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	start := firstOfMonth(month)
	end := lastOfMonth(start)

	result := &ApportionResult{Month: start, ExpectedPortions: expectedPortions}
	err := uc.txRunner.RunRecipes(ctx, func(recipeRepo repository.RecipeRepository, overheadRepo repository.OverheadRepository) error {
		total, err := overheadRepo.SumBetween(ctx, start, end)
		if err != nil {
			return err
		}
		perPortion := total.Div(expectedPortions).RoundBank(costing.UnitCostPlaces)
		updated, err := recipeRepo.SetIndirectCostForActive(ctx, perPortion)
		if err != nil {
			return err
		}
		result.TotalOverhead = total
		result.PerPortion = perPortion
		result.RecipesUpdated = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func lastOfMonth(first time.Time) time.Time {
	days := costing.DaysInMonth(first.Year(), first.Month())
	return time.Date(first.Year(), first.Month(), days, 23, 59, 59, 0, first.Location())
}
