package waste_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozinhapro/backoffice-api/internal/application/waste"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeWasteRepo struct {
	categories map[string]*entity.WasteCategory
	events     []*entity.WasteEvent
	goals      map[string]*entity.WasteGoal
}

func newFakeWasteRepo() *fakeWasteRepo {
	return &fakeWasteRepo{
		categories: map[string]*entity.WasteCategory{},
		goals:      map[string]*entity.WasteGoal{},
	}
}

func (r *fakeWasteRepo) CreateCategory(_ context.Context, c *entity.WasteCategory) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeWasteRepo) ListCategories(_ context.Context, activeOnly bool) ([]*entity.WasteCategory, error) {
	var out []*entity.WasteCategory
	for _, c := range r.categories {
		if activeOnly && !c.Active {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeWasteRepo) CreateEvent(_ context.Context, e *entity.WasteEvent) error {
	cp := *e
	r.events = append(r.events, &cp)
	return nil
}

func matches(e *entity.WasteEvent, scope repository.WasteScope) bool {
	if scope.CategoryID != "" && e.CategoryID != scope.CategoryID {
		return false
	}
	if scope.ProductID != "" && e.ProductID != scope.ProductID {
		return false
	}
	if scope.RecipeID != "" && e.RecipeID != scope.RecipeID {
		return false
	}
	return true
}

func (r *fakeWasteRepo) ListEvents(_ context.Context, start, end time.Time, scope repository.WasteScope, _, _ int) ([]*entity.WasteEvent, error) {
	var out []*entity.WasteEvent
	for _, e := range r.events {
		if e.Date.Before(start) || e.Date.After(end) || !matches(e, scope) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeWasteRepo) SumLossBetween(ctx context.Context, start, end time.Time, scope repository.WasteScope) (decimal.Decimal, error) {
	events, _ := r.ListEvents(ctx, start, end, scope, 0, 0)
	sum := decimal.Zero
	for _, e := range events {
		sum = sum.Add(e.EstimatedLoss)
	}
	return sum, nil
}

func (r *fakeWasteRepo) CreateGoal(_ context.Context, g *entity.WasteGoal) error {
	cp := *g
	r.goals[g.ID] = &cp
	return nil
}

func (r *fakeWasteRepo) GetGoal(_ context.Context, id string) (*entity.WasteGoal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *fakeWasteRepo) UpdateGoal(_ context.Context, g *entity.WasteGoal) error {
	cp := *g
	r.goals[g.ID] = &cp
	return nil
}

func (r *fakeWasteRepo) ListGoals(_ context.Context, activeOnly bool) ([]*entity.WasteGoal, error) {
	var out []*entity.WasteGoal
	for _, g := range r.goals {
		if activeOnly && !g.Active {
			continue
		}
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }

func (r *fakeProductRepo) UpdateCostAndStock(_ context.Context, _ string, _, _ decimal.Decimal) error {
	return nil
}

func (r *fakeProductRepo) UpdateStockMin(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ bool, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListBelowMinimum(_ context.Context) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, _ string) error { return nil }

type fakeCoster struct {
	perPortion map[string]decimal.Decimal
}

func (c *fakeCoster) TotalCostPerPortion(_ context.Context, recipeID string) (decimal.Decimal, error) {
	v, ok := c.perPortion[recipeID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	return v, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func newUC(repo *fakeWasteRepo) *waste.UseCase {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"rice": {ID: "rice", Code: "ARZ", Name: "Arroz", Unit: "kg", UnitCost: dec("10.0000"), Active: true},
	}}
	coster := &fakeCoster{perPortion: map[string]decimal.Decimal{"plate": dec("2.50")}}
	return waste.NewUseCase(repo, products, coster)
}

// ── Eventos ───────────────────────────────────────────────────────────────────

func TestRecordEvent_XOR(t *testing.T) {
	uc := newUC(newFakeWasteRepo())
	ctx := context.Background()
	base := waste.EventInput{CategoryID: "cat", Quantity: dec("1")}

	both := base
	both.ProductID, both.RecipeID = "rice", "plate"
	_, err := uc.RecordEvent(ctx, both)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "insumo e prato juntos devem ser rejeitados")

	neither := base
	_, err = uc.RecordEvent(ctx, neither)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "perda sem alvo deve ser rejeitada")
}

// Sem valor explícito, perda de insumo vale quantidade · custo médio.
func TestRecordEvent_ValoracaoPadraoDoInsumo(t *testing.T) {
	repo := newFakeWasteRepo()
	uc := newUC(repo)

	e, err := uc.RecordEvent(context.Background(), waste.EventInput{
		CategoryID: "cat", Date: day(2025, 7, 10), Quantity: dec("1.5"), Unit: "kg", ProductID: "rice",
	})
	require.NoError(t, err)
	assert.True(t, dec("15.00").Equal(e.EstimatedLoss), "perda esperada 15.00, veio %s", e.EstimatedLoss)
}

// Perda de prato vale quantidade · custo total por porção.
func TestRecordEvent_ValoracaoPadraoDoPrato(t *testing.T) {
	uc := newUC(newFakeWasteRepo())

	e, err := uc.RecordEvent(context.Background(), waste.EventInput{
		CategoryID: "cat", Date: day(2025, 7, 10), Quantity: dec("4"), Unit: "porção", RecipeID: "plate",
	})
	require.NoError(t, err)
	assert.True(t, dec("10.00").Equal(e.EstimatedLoss))
}

// Valor explícito do operador prevalece sobre a valoração padrão.
func TestRecordEvent_ValorExplicitoPrevalece(t *testing.T) {
	uc := newUC(newFakeWasteRepo())
	explicit := dec("7.77")

	e, err := uc.RecordEvent(context.Background(), waste.EventInput{
		CategoryID: "cat", Date: day(2025, 7, 10), Quantity: dec("1.5"), ProductID: "rice",
		EstimatedLoss: &explicit,
	})
	require.NoError(t, err)
	assert.True(t, explicit.Equal(e.EstimatedLoss))
}

// ── Metas ─────────────────────────────────────────────────────────────────────

func seedGoal(t *testing.T, uc *waste.UseCase) *entity.WasteGoal {
	t.Helper()
	g, err := uc.CreateGoal(context.Background(), waste.GoalInput{
		Description:        "Reduzir sobra de arroz",
		StartDate:          day(2025, 7, 1),
		EndDate:            day(2025, 7, 31),
		ProductID:          "rice",
		BaselineValue:      dec("100"),
		TargetValue:        dec("50"),
		TargetReductionPct: dec("50"),
	})
	require.NoError(t, err)
	return g
}

func recordLoss(t *testing.T, uc *waste.UseCase, d time.Time, loss string) {
	t.Helper()
	v := dec(loss)
	_, err := uc.RecordEvent(context.Background(), waste.EventInput{
		CategoryID: "cat", Date: d, Quantity: dec("1"), ProductID: "rice", EstimatedLoss: &v,
	})
	require.NoError(t, err)
}

func TestGoalProgress_Derivacao(t *testing.T) {
	repo := newFakeWasteRepo()
	uc := newUC(repo)
	g := seedGoal(t, uc)
	ctx := context.Background()

	recordLoss(t, uc, day(2025, 7, 5), "20")
	recordLoss(t, uc, day(2025, 7, 12), "10")
	// fora da janela, não conta
	recordLoss(t, uc, day(2025, 8, 2), "99")

	p, err := uc.Progress(ctx, g.ID, day(2025, 7, 15))
	require.NoError(t, err)

	assert.True(t, dec("30").Equal(p.CurrentLoss), "perda corrente esperada 30, veio %s", p.CurrentLoss)
	// (100 - 30) / 100 · 100 = 70; 70 / 50 · 100 = 140 → limitado a 100
	assert.True(t, dec("70").Equal(p.PercentReduction))
	assert.True(t, dec("100").Equal(p.ProgressPct), "progresso limitado a 100")
	assert.Equal(t, entity.WasteGoalInProgress, p.Status)
}

// Progresso nunca sobe quando a perda acumulada cresce.
func TestGoalProgress_MonotonicoComPerda(t *testing.T) {
	repo := newFakeWasteRepo()
	uc := newUC(repo)
	g := seedGoal(t, uc)
	ctx := context.Background()
	now := day(2025, 7, 20)

	prev := dec("101")
	for i, loss := range []string{"30", "30", "30", "30"} {
		recordLoss(t, uc, day(2025, 7, 2+i), loss)
		p, err := uc.Progress(ctx, g.ID, now)
		require.NoError(t, err)
		assert.True(t, p.ProgressPct.LessThanOrEqual(prev), "progresso não pode subir com mais perda")
		assert.True(t, p.ProgressPct.GreaterThanOrEqual(decimal.Zero), "progresso nunca é negativo")
		prev = p.ProgressPct
	}

	// baseline estourado: redução negativa, progresso travado em zero
	p, err := uc.Progress(ctx, g.ID, now)
	require.NoError(t, err)
	assert.True(t, p.PercentReduction.LessThan(decimal.Zero))
	assert.True(t, p.ProgressPct.IsZero())
}

// Tabela de status: janela, perda vs teto e flag de ativo.
func TestGoalProgress_TabelaDeStatus(t *testing.T) {
	cases := []struct {
		name   string
		loss   string
		now    time.Time
		cancel bool
		want   string
	}{
		{"antes da janela", "0", day(2025, 6, 15), false, entity.WasteGoalNotStarted},
		{"na janela abaixo do teto", "40", day(2025, 7, 15), false, entity.WasteGoalInProgress},
		{"na janela acima do teto", "60", day(2025, 7, 15), false, entity.WasteGoalMissed},
		{"após a janela abaixo do teto", "40", day(2025, 8, 10), false, entity.WasteGoalCompleted},
		{"após a janela acima do teto", "60", day(2025, 8, 10), false, entity.WasteGoalMissed},
		{"cancelada", "0", day(2025, 7, 15), true, entity.WasteGoalCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeWasteRepo()
			uc := newUC(repo)
			g := seedGoal(t, uc)
			if tc.loss != "0" {
				recordLoss(t, uc, day(2025, 7, 10), tc.loss)
			}
			if tc.cancel {
				require.NoError(t, uc.CancelGoal(context.Background(), g.ID))
			}
			p, err := uc.Progress(context.Background(), g.ID, tc.now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Status)
		})
	}
}

func TestCreateGoal_Validacao(t *testing.T) {
	uc := newUC(newFakeWasteRepo())
	ctx := context.Background()

	_, err := uc.CreateGoal(ctx, waste.GoalInput{
		Description: "janela invertida",
		StartDate:   day(2025, 7, 31), EndDate: day(2025, 7, 1),
		BaselineValue: dec("100"), TargetReductionPct: dec("50"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateGoal(ctx, waste.GoalInput{
		Description: "meta acima de 100%",
		StartDate:   day(2025, 7, 1), EndDate: day(2025, 7, 31),
		BaselineValue: dec("100"), TargetReductionPct: dec("120"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
