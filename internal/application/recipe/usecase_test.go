package recipe_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozinhapro/backoffice-api/internal/application/recipe"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeStore struct {
	recipes     map[string]*entity.Recipe
	ingredients map[string][]*entity.RecipeIngredient // por receita
	products    map[string]*entity.Product
	overheads   []*entity.OverheadCost

	failSetIndirect error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		recipes:     map[string]*entity.Recipe{},
		ingredients: map[string][]*entity.RecipeIngredient{},
		products:    map[string]*entity.Product{},
	}
}

type fakeRecipeRepo struct{ st *fakeStore }

func (r *fakeRecipeRepo) Create(_ context.Context, rec *entity.Recipe) error {
	cp := *rec
	r.st.recipes[rec.ID] = &cp
	return nil
}

func (r *fakeRecipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	rec, ok := r.st.recipes[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecipeRepo) GetByName(_ context.Context, name string) (*entity.Recipe, error) {
	for _, rec := range r.st.recipes {
		if rec.Name == name {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRecipeRepo) Update(_ context.Context, rec *entity.Recipe) error {
	if _, ok := r.st.recipes[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *rec
	r.st.recipes[rec.ID] = &cp
	return nil
}

func (r *fakeRecipeRepo) List(_ context.Context, activeOnly bool) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, rec := range r.st.recipes {
		if activeOnly && !rec.Active {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRecipeRepo) UpsertIngredient(_ context.Context, line *entity.RecipeIngredient) error {
	lines := r.st.ingredients[line.RecipeID]
	for i, l := range lines {
		if l.ProductID == line.ProductID {
			cp := *line
			lines[i] = &cp
			return nil
		}
	}
	cp := *line
	r.st.ingredients[line.RecipeID] = append(lines, &cp)
	return nil
}

func (r *fakeRecipeRepo) DeleteIngredient(_ context.Context, recipeID, productID string) error {
	lines := r.st.ingredients[recipeID]
	for i, l := range lines {
		if l.ProductID == productID {
			r.st.ingredients[recipeID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRecipeRepo) ListIngredients(_ context.Context, recipeID string) ([]*entity.RecipeIngredient, error) {
	return r.st.ingredients[recipeID], nil
}

func (r *fakeRecipeRepo) SetIndirectCostForActive(_ context.Context, perPortion decimal.Decimal) (int64, error) {
	if r.st.failSetIndirect != nil {
		return 0, r.st.failSetIndirect
	}
	var n int64
	for _, rec := range r.st.recipes {
		if rec.Active {
			rec.IndirectCostPerPortion = perPortion
			n++
		}
	}
	return n, nil
}

type fakeProductRepo struct{ st *fakeStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.st.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
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

type fakeOverheadRepo struct{ st *fakeStore }

func (r *fakeOverheadRepo) Create(_ context.Context, c *entity.OverheadCost) error {
	cp := *c
	r.st.overheads = append(r.st.overheads, &cp)
	return nil
}

func (r *fakeOverheadRepo) GetByID(_ context.Context, id string) (*entity.OverheadCost, error) {
	for _, c := range r.st.overheads {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOverheadRepo) Delete(_ context.Context, id string) error {
	for i, c := range r.st.overheads {
		if c.ID == id {
			r.st.overheads = append(r.st.overheads[:i], r.st.overheads[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOverheadRepo) ListByMonth(_ context.Context, month time.Time) ([]*entity.OverheadCost, error) {
	var out []*entity.OverheadCost
	for _, c := range r.st.overheads {
		if c.Month.Equal(month) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeOverheadRepo) SumBetween(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.st.overheads {
		if !c.Month.Before(start) && !c.Month.After(end) {
			sum = sum.Add(c.Amount)
		}
	}
	return sum, nil
}

type fakeTxRunner struct{ st *fakeStore }

func (t *fakeTxRunner) RunRecipes(_ context.Context, fn func(repository.RecipeRepository, repository.OverheadRepository) error) error {
	// snapshot do rateio para simular rollback
	before := map[string]decimal.Decimal{}
	for id, rec := range t.st.recipes {
		before[id] = rec.IndirectCostPerPortion
	}
	if err := fn(&fakeRecipeRepo{st: t.st}, &fakeOverheadRepo{st: t.st}); err != nil {
		for id, v := range before {
			t.st.recipes[id].IndirectCostPerPortion = v
		}
		return err
	}
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newUC(st *fakeStore) *recipe.UseCase {
	return recipe.NewUseCase(&fakeTxRunner{st: st}, &fakeRecipeRepo{st: st}, &fakeProductRepo{st: st}, &fakeOverheadRepo{st: st})
}

func seedRiceAndPlate(st *fakeStore) {
	st.products["rice"] = &entity.Product{ID: "rice", Code: "ARZ", Name: "Arroz", Unit: "kg", UnitCost: dec("10.0000"), Active: true}
	st.recipes["plate"] = &entity.Recipe{
		ID: "plate", Name: "Prato de Arroz", YieldQuantity: dec("1"), YieldUnit: "kg",
		PortionCount: 2, MarginPercent: dec("30"), Active: true,
	}
	st.ingredients["plate"] = []*entity.RecipeIngredient{
		{ID: "l1", RecipeID: "plate", ProductID: "rice", Quantity: dec("0.5"), Mandatory: true},
	}
}

// ── Custeio ───────────────────────────────────────────────────────────────────

// Prato com 0.5 kg de arroz a 10.0000, 2 porções e margem 30:
// custo direto 5.00, por porção 2.50, preço sugerido 3.2500.
func TestCosting_PratoDeArroz(t *testing.T) {
	st := newFakeStore()
	seedRiceAndPlate(st)
	uc := newUC(st)

	view, err := uc.Costing(context.Background(), "plate")
	require.NoError(t, err)

	assert.True(t, dec("5").Equal(view.DirectCostTotal), "custo direto esperado 5, veio %s", view.DirectCostTotal)
	assert.True(t, dec("2.5").Equal(view.DirectCostPerPortion))
	assert.True(t, view.IndirectCostPerPortion.IsZero())
	assert.True(t, dec("2.5").Equal(view.TotalCostPerPortion))
	assert.True(t, dec("3.2500").Equal(view.SuggestedPrice), "preço sugerido esperado 3.2500, veio %s", view.SuggestedPrice)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Arroz", view.Lines[0].ProductName)
}

// Insumo de custo zero não quebra; total >= direto >= 0 sempre.
func TestCosting_InsumoComCustoZero(t *testing.T) {
	st := newFakeStore()
	seedRiceAndPlate(st)
	st.products["salt"] = &entity.Product{ID: "salt", Code: "SAL", Name: "Sal", Unit: "kg", UnitCost: decimal.Zero, Active: true}
	st.ingredients["plate"] = append(st.ingredients["plate"],
		&entity.RecipeIngredient{ID: "l2", RecipeID: "plate", ProductID: "salt", Quantity: dec("0.01"), Mandatory: false})
	st.recipes["plate"].IndirectCostPerPortion = dec("1.2000")
	uc := newUC(st)

	view, err := uc.Costing(context.Background(), "plate")
	require.NoError(t, err)

	assert.True(t, dec("5").Equal(view.DirectCostTotal), "linha de custo zero soma zero")
	assert.True(t, view.DirectCostPerPortion.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, view.TotalCostPerPortion.GreaterThanOrEqual(view.DirectCostPerPortion),
		"total por porção >= direto por porção")
	assert.True(t, dec("3.7").Equal(view.TotalCostPerPortion))
}

func TestCosting_ReceitaInexistente(t *testing.T) {
	uc := newUC(newFakeStore())
	_, err := uc.Costing(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Ficha técnica ─────────────────────────────────────────────────────────────

func TestSetIngredient_UnicaLinhaPorProduto(t *testing.T) {
	st := newFakeStore()
	seedRiceAndPlate(st)
	uc := newUC(st)
	ctx := context.Background()

	// mesma linha de novo com quantidade diferente: substitui, não duplica
	err := uc.SetIngredient(ctx, "plate", recipe.IngredientInput{ProductID: "rice", Quantity: dec("0.75"), Mandatory: true})
	require.NoError(t, err)

	require.Len(t, st.ingredients["plate"], 1)
	assert.True(t, dec("0.75").Equal(st.ingredients["plate"][0].Quantity))
}

func TestSetIngredient_Validacao(t *testing.T) {
	st := newFakeStore()
	seedRiceAndPlate(st)
	uc := newUC(st)
	ctx := context.Background()

	err := uc.SetIngredient(ctx, "plate", recipe.IngredientInput{ProductID: "rice", Quantity: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantidade deve ser positiva")

	err = uc.SetIngredient(ctx, "plate", recipe.IngredientInput{ProductID: "nada", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound, "insumo precisa existir")

	err = uc.SetIngredient(ctx, "nada", recipe.IngredientInput{ProductID: "rice", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveIngredient(t *testing.T) {
	st := newFakeStore()
	seedRiceAndPlate(st)
	uc := newUC(st)

	require.NoError(t, uc.RemoveIngredient(context.Background(), "plate", "rice"))
	assert.Empty(t, st.ingredients["plate"])
}

func TestCreateRecipe_NomeDuplicado(t *testing.T) {
	st := newFakeStore()
	seedRiceAndPlate(st)
	uc := newUC(st)

	_, err := uc.CreateRecipe(context.Background(), recipe.RecipeInput{
		Name: "Prato de Arroz", YieldQuantity: dec("1"), PortionCount: 2,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ── Rateio mensal ─────────────────────────────────────────────────────────────

// Mês com 600 + 400 de custo fixo e 1000 porções esperadas: todas as receitas
// ativas ficam com rateio 1.0000; as inativas não são tocadas.
func TestApportionOverhead_RateiaParaReceitasAtivas(t *testing.T) {
	st := newFakeStore()
	seedRiceAndPlate(st)
	st.recipes["feijoada"] = &entity.Recipe{ID: "feijoada", Name: "Feijoada", YieldQuantity: dec("5"), PortionCount: 10, Active: true}
	st.recipes["extinto"] = &entity.Recipe{ID: "extinto", Name: "Prato Extinto", YieldQuantity: dec("1"), PortionCount: 1, Active: false,
		IndirectCostPerPortion: dec("0.5000")}

	month := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	st.overheads = []*entity.OverheadCost{
		{ID: "o1", Description: "Aluguel", Amount: dec("600"), Month: month},
		{ID: "o2", Description: "Energia", Amount: dec("400"), Month: month},
	}
	uc := newUC(st)

	res, err := uc.ApportionOverhead(context.Background(), month, dec("1000"))
	require.NoError(t, err)

	assert.True(t, dec("1000").Equal(res.TotalOverhead))
	assert.True(t, dec("1.0000").Equal(res.PerPortion), "rateio esperado 1.0000, veio %s", res.PerPortion)
	assert.Equal(t, int64(2), res.RecipesUpdated)

	assert.True(t, dec("1.0000").Equal(st.recipes["plate"].IndirectCostPerPortion))
	assert.True(t, dec("1.0000").Equal(st.recipes["feijoada"].IndirectCostPerPortion))
	assert.True(t, dec("0.5000").Equal(st.recipes["extinto"].IndirectCostPerPortion), "receita inativa preserva o rateio antigo")
}

// Falha no meio do lote deixa todas as receitas com os valores pré-lote.
func TestApportionOverhead_RollbackPreservaValores(t *testing.T) {
	st := newFakeStore()
	seedRiceAndPlate(st)
	st.recipes["plate"].IndirectCostPerPortion = dec("0.7000")
	st.failSetIndirect = errors.New("deadlock")
	uc := newUC(st)

	month := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	st.overheads = []*entity.OverheadCost{{ID: "o1", Description: "Aluguel", Amount: dec("600"), Month: month}}

	_, err := uc.ApportionOverhead(context.Background(), month, dec("100"))
	require.Error(t, err)
	assert.True(t, dec("0.7000").Equal(st.recipes["plate"].IndirectCostPerPortion), "valores pré-lote preservados")
}

func TestApportionOverhead_Validacao(t *testing.T) {
	uc := newUC(newFakeStore())
	month := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.ApportionOverhead(context.Background(), month, dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "porções esperadas devem ser positivas")

	_, err = uc.ApportionOverhead(context.Background(), time.Time{}, dec("100"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOverhead_NormalizaMesDeReferencia(t *testing.T) {
	st := newFakeStore()
	uc := newUC(st)

	c, err := uc.CreateOverhead(context.Background(), recipe.OverheadInput{
		Description: "Aluguel",
		Amount:      dec("2500.00"),
		Month:       time.Date(2025, 7, 19, 15, 4, 5, 0, time.UTC),
		Category:    "ocupacao",
		Recurring:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), c.Month, "mês normalizado ao primeiro dia")
}
