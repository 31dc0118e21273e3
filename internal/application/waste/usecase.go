package waste

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

// RecipeCoster resolve o custo total por porção de um prato.
type RecipeCoster interface {
	TotalCostPerPortion(ctx context.Context, recipeID string) (decimal.Decimal, error)
}

// UseCase registra desperdício e deriva o progresso das metas de redução.
// A valoração padrão da perda vem do custo médio do insumo ou do custo por
// porção do prato; o operador pode sobrepor com um valor explícito.
type UseCase struct {
	wasteRepo   repository.WasteRepository
	productRepo repository.ProductRepository
	coster      RecipeCoster
}

func NewUseCase(wasteRepo repository.WasteRepository, productRepo repository.ProductRepository, coster RecipeCoster) *UseCase {
	return &UseCase{wasteRepo: wasteRepo, productRepo: productRepo, coster: coster}
}

// ── Categorias ────────────────────────────────────────────────────────────────

// CreateCategory cria uma categoria de desperdício. Nome é chave natural.
func (uc *UseCase) CreateCategory(ctx context.Context, name, color string) (*entity.WasteCategory, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.WasteCategory{
		ID:     uuid.New().String(),
		Name:   name,
		Color:  color,
		Active: true,
	}
	if err := uc.wasteRepo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories lista categorias, opcionalmente só as ativas.
func (uc *UseCase) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.WasteCategory, error) {
	return uc.wasteRepo.ListCategories(ctx, activeOnly)
}

// ── Eventos ───────────────────────────────────────────────────────────────────

// EventInput entrada de registro de perda. Exatamente um entre ProductID e
// RecipeID. EstimatedLoss nil pede a valoração padrão.
type EventInput struct {
	CategoryID    string
	Date          time.Time
	Quantity      decimal.Decimal
	Unit          string
	EstimatedLoss *decimal.Decimal
	ProductID     string
	RecipeID      string
	Note          string
}

func (in EventInput) validate() error {
	if in.CategoryID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	// XOR: perda amarrada a insumo ou a prato, nunca aos dois nem a nenhum
	if (in.ProductID == "") == (in.RecipeID == "") {
		return domain.ErrInvalidInput
	}
	if in.EstimatedLoss != nil && in.EstimatedLoss.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// RecordEvent registra a perda. Sem valor explícito, a valoração padrão é
// quantidade · custo médio do insumo, ou quantidade · custo por porção do
// prato. Registrar desperdício não move estoque.
func (uc *UseCase) RecordEvent(ctx context.Context, in EventInput) (*entity.WasteEvent, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	loss, err := uc.resolveLoss(ctx, in)
	if err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	e := &entity.WasteEvent{
		ID:            uuid.New().String(),
		CategoryID:    in.CategoryID,
		Date:          date,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		EstimatedLoss: loss,
		ProductID:     in.ProductID,
		RecipeID:      in.RecipeID,
		Note:          in.Note,
		CreatedAt:     time.Now(),
	}
	if err := uc.wasteRepo.CreateEvent(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (uc *UseCase) resolveLoss(ctx context.Context, in EventInput) (decimal.Decimal, error) {
	if in.EstimatedLoss != nil {
		return *in.EstimatedLoss, nil
	}
	if in.ProductID != "" {
		p, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		if p == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return in.Quantity.Mul(p.UnitCost).RoundBank(costing.TotalPlaces), nil
	}
	perPortion, err := uc.coster.TotalCostPerPortion(ctx, in.RecipeID)
	if err != nil {
		return decimal.Zero, err
	}
	return in.Quantity.Mul(perPortion).RoundBank(costing.TotalPlaces), nil
}

// ListEvents lista perdas na janela, com filtro opcional de escopo.
func (uc *UseCase) ListEvents(ctx context.Context, start, end time.Time, scope repository.WasteScope, limit, offset int) ([]*entity.WasteEvent, error) {
	return uc.wasteRepo.ListEvents(ctx, start, end, scope, limit, offset)
}

// ── Metas ─────────────────────────────────────────────────────────────────────

// GoalInput entrada de meta de redução.
type GoalInput struct {
	Description        string
	StartDate          time.Time
	EndDate            time.Time
	CategoryID         string
	ProductID          string
	RecipeID           string
	BaselineValue      decimal.Decimal
	TargetValue        decimal.Decimal
	TargetReductionPct decimal.Decimal
}

func (in GoalInput) validate() error {
	if in.Description == "" || in.StartDate.IsZero() || !in.EndDate.After(in.StartDate) {
		return domain.ErrInvalidInput
	}
	if !in.BaselineValue.GreaterThan(decimal.Zero) || in.TargetValue.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.TargetReductionPct.LessThan(decimal.Zero) || in.TargetReductionPct.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateGoal cria uma meta de redução na janela [start, end].
func (uc *UseCase) CreateGoal(ctx context.Context, in GoalInput) (*entity.WasteGoal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	g := &entity.WasteGoal{
		ID:                 uuid.New().String(),
		Description:        in.Description,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		CategoryID:         in.CategoryID,
		ProductID:          in.ProductID,
		RecipeID:           in.RecipeID,
		BaselineValue:      in.BaselineValue,
		TargetValue:        in.TargetValue,
		TargetReductionPct: in.TargetReductionPct,
		Active:             true,
		CreatedAt:          time.Now(),
	}
	if err := uc.wasteRepo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// CancelGoal desativa a meta; o status derivado passa a CANCELLED.
func (uc *UseCase) CancelGoal(ctx context.Context, id string) error {
	g, err := uc.wasteRepo.GetGoal(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return domain.ErrNotFound
	}
	g.Active = false
	return uc.wasteRepo.UpdateGoal(ctx, g)
}

// ListGoals lista as metas cadastradas.
func (uc *UseCase) ListGoals(ctx context.Context, activeOnly bool) ([]*entity.WasteGoal, error) {
	return uc.wasteRepo.ListGoals(ctx, activeOnly)
}

// GoalProgress é o progresso derivado de uma meta. Nada disso é armazenado.
type GoalProgress struct {
	GoalID           string
	CurrentLoss      decimal.Decimal
	PercentReduction decimal.Decimal
	ProgressPct      decimal.Decimal // 0-100
	Status           string
}

// Progress deriva o progresso da meta na leitura:
// perda corrente = Σ estimated_loss dos eventos na janela e no escopo;
// redução = (baseline - perda corrente) / baseline · 100;
// progresso = redução / meta · 100, limitado a [0, 100].
func (uc *UseCase) Progress(ctx context.Context, goalID string, now time.Time) (*GoalProgress, error) {
	g, err := uc.wasteRepo.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	scope := repository.WasteScope{CategoryID: g.CategoryID, ProductID: g.ProductID, RecipeID: g.RecipeID}
	currentLoss, err := uc.wasteRepo.SumLossBetween(ctx, g.StartDate, g.EndDate, scope)
	if err != nil {
		return nil, err
	}

	p := &GoalProgress{GoalID: g.ID, CurrentLoss: currentLoss}
	hundred := decimal.NewFromInt(100)
	p.PercentReduction = g.BaselineValue.Sub(currentLoss).Div(g.BaselineValue).Mul(hundred).RoundBank(costing.TotalPlaces)
	if g.TargetReductionPct.GreaterThan(decimal.Zero) {
		p.ProgressPct = clamp(p.PercentReduction.Div(g.TargetReductionPct).Mul(hundred).RoundBank(costing.TotalPlaces), hundred)
	}
	p.Status = deriveStatus(g, currentLoss, now)
	return p, nil
}

func clamp(v, max decimal.Decimal) decimal.Decimal {
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if v.GreaterThan(max) {
		return max
	}
	return v
}

func deriveStatus(g *entity.WasteGoal, currentLoss decimal.Decimal, now time.Time) string {
	if !g.Active {
		return entity.WasteGoalCancelled
	}
	if now.Before(g.StartDate) {
		return entity.WasteGoalNotStarted
	}
	// a perda só acumula: estourar o teto no meio da janela já perde a meta
	overTarget := currentLoss.GreaterThan(g.TargetValue)
	if overTarget {
		return entity.WasteGoalMissed
	}
	if now.After(g.EndDate) {
		return entity.WasteGoalCompleted
	}
	return entity.WasteGoalInProgress
}
