package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozinhapro/backoffice-api/internal/application/ledger"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/costing"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// ── Fakes em memória ──────────────────────────────────────────────────────────
// Simulam o comportamento transacional do Postgres: o fakeTxRunner tira um
// snapshot do estado antes de rodar fn e restaura no rollback.

type fakeState struct {
	products  map[string]*entity.Product
	movements []*entity.LedgerMovement
}

func newFakeState() *fakeState {
	return &fakeState{products: map[string]*entity.Product{}}
}

func (s *fakeState) snapshot() *fakeState {
	cp := newFakeState()
	for id, p := range s.products {
		pc := *p
		cp.products[id] = &pc
	}
	cp.movements = append([]*entity.LedgerMovement(nil), s.movements...)
	return cp
}

func (s *fakeState) restore(from *fakeState) {
	s.products = from.products
	s.movements = from.movements
}

type fakeProductRepo struct{ st *fakeState }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.st.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
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

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cur, ok := r.st.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.UnitCost = cur.UnitCost
	cp.StockOnHand = cur.StockOnHand
	r.st.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateCostAndStock(_ context.Context, id string, unitCost, stockOnHand decimal.Decimal) error {
	p, ok := r.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.UnitCost = unitCost
	p.StockOnHand = stockOnHand
	return nil
}

func (r *fakeProductRepo) UpdateStockMin(_ context.Context, id string, stockMin decimal.Decimal) error {
	p, ok := r.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockMin = stockMin
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ bool, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListBelowMinimum(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.st.products {
		if p.StockOnHand.LessThan(p.StockMin) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id string) error {
	p, ok := r.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

type fakeLedgerRepo struct{ st *fakeState }

func (r *fakeLedgerRepo) Create(_ context.Context, m *entity.LedgerMovement) error {
	cp := *m
	r.st.movements = append(r.st.movements, &cp)
	return nil
}

func (r *fakeLedgerRepo) ListByProduct(_ context.Context, productID string, _, _ *time.Time, _, _ int) ([]*entity.LedgerMovement, error) {
	var out []*entity.LedgerMovement
	for _, m := range r.st.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListBetween(_ context.Context, _, _ time.Time, _, _ int) ([]*entity.LedgerMovement, error) {
	return r.st.movements, nil
}

type fakeTxRunner struct{ st *fakeState }

func (t *fakeTxRunner) Run(_ context.Context, fn func(repository.LedgerRepository, repository.ProductRepository) error) error {
	snap := t.st.snapshot()
	if err := fn(&fakeLedgerRepo{st: t.st}, &fakeProductRepo{st: t.st}); err != nil {
		t.st.restore(snap)
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

func seedProduct(st *fakeState, id, code string, stock, cost, min string) {
	st.products[id] = &entity.Product{
		ID: id, Code: code, Name: code, Unit: "kg",
		StockOnHand: dec(stock), UnitCost: dec(cost), StockMin: dec(min), Active: true,
	}
}

func newUseCase(st *fakeState) *ledger.UseCase {
	return ledger.NewUseCase(&fakeTxRunner{st: st}, &fakeProductRepo{st: st})
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// ── Entradas ──────────────────────────────────────────────────────────────────

// Primeira compra: produto zerado recebe 10 un a 5.00.
func TestRecordIn_PrimeiraCompra(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "ARROZ", "0", "0", "0")
	uc := newUseCase(st)

	mov, err := uc.RecordIn(context.Background(), ledger.MovementInput{
		ProductID: "p1", Quantity: dec("10"), UnitCost: ptr(dec("5.00")),
		Reference: "NF-e 123/1",
	})
	require.NoError(t, err)

	p := st.products["p1"]
	assert.True(t, dec("10").Equal(p.StockOnHand), "estoque esperado 10, veio %s", p.StockOnHand)
	assert.True(t, dec("5.0000").Equal(p.UnitCost), "custo esperado 5.0000, veio %s", p.UnitCost)
	require.Len(t, st.movements, 1)
	assert.Equal(t, entity.MovementKindIN, mov.Kind)
	assert.True(t, dec("5.0000").Equal(mov.UnitCost), "movimento IN registra o custo da entrada")
}

// Segunda compra a 15.00 leva o custo médio a 10.0000.
func TestRecordIn_AtualizaCustoMedio(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "ARROZ", "0", "0", "0")
	uc := newUseCase(st)
	ctx := context.Background()

	_, err := uc.RecordIn(ctx, ledger.MovementInput{ProductID: "p1", Quantity: dec("10"), UnitCost: ptr(dec("5.00"))})
	require.NoError(t, err)
	_, err = uc.RecordIn(ctx, ledger.MovementInput{ProductID: "p1", Quantity: dec("10"), UnitCost: ptr(dec("15.00"))})
	require.NoError(t, err)

	p := st.products["p1"]
	assert.True(t, dec("20").Equal(p.StockOnHand))
	assert.True(t, dec("10.0000").Equal(p.UnitCost), "custo médio esperado 10.0000, veio %s", p.UnitCost)
	require.Len(t, st.movements, 2, "duas entradas em ordem")
	assert.True(t, dec("5.0000").Equal(st.movements[0].UnitCost))
	assert.True(t, dec("15.0000").Equal(st.movements[1].UnitCost))
}

func TestRecordIn_ValidaEntrada(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "ARROZ", "0", "0", "0")
	uc := newUseCase(st)
	ctx := context.Background()

	_, err := uc.RecordIn(ctx, ledger.MovementInput{ProductID: "p1", Quantity: dec("0"), UnitCost: ptr(dec("5"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantidade zero é inválida")

	_, err = uc.RecordIn(ctx, ledger.MovementInput{ProductID: "p1", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada exige custo unitário")

	_, err = uc.RecordIn(ctx, ledger.MovementInput{ProductID: "p1", Quantity: dec("1"), UnitCost: ptr(dec("-1"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordIn(ctx, ledger.MovementInput{ProductID: "nao-existe", Quantity: dec("1"), UnitCost: ptr(dec("1"))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, st.movements, "nenhum movimento persistido após falhas")
}

// ── Saídas ────────────────────────────────────────────────────────────────────

// Estoque 3, saída de 5: falha sem mudar nada.
func TestRecordOut_EstoqueInsuficiente(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "SAL", "3", "2.0000", "0")
	uc := newUseCase(st)

	_, err := uc.RecordOut(context.Background(), ledger.MovementInput{
		ProductID: "p1", Quantity: dec("5"), Reference: "ajuste",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p := st.products["p1"]
	assert.True(t, dec("3").Equal(p.StockOnHand), "estoque permanece 3")
	assert.Empty(t, st.movements, "nenhum movimento persistido")
}

func TestRecordOut_SaidaAoCustoMedioVigente(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "ARROZ", "20", "10.0000", "0")
	uc := newUseCase(st)

	mov, err := uc.RecordOut(context.Background(), ledger.MovementInput{
		ProductID: "p1", Quantity: dec("4.5"), Reference: "produção",
	})
	require.NoError(t, err)

	p := st.products["p1"]
	assert.True(t, dec("15.5").Equal(p.StockOnHand))
	assert.True(t, dec("10.0000").Equal(p.UnitCost), "saída não altera o custo médio")
	assert.Equal(t, entity.MovementKindOUT, mov.Kind)
	assert.True(t, dec("10.0000").Equal(mov.UnitCost), "saída sai ao custo médio vigente")
}

// ── Propriedade de replay ─────────────────────────────────────────────────────

// Reaplicar as entradas na ordem do livro, a partir de (0, 0), reproduz
// exatamente o custo e o estoque do produto.
func TestLedger_ReplayReproduzCustoEEstoque(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "FARINHA", "0", "0", "0")
	uc := newUseCase(st)
	ctx := context.Background()

	entries := []struct{ qty, cost string }{
		{"10", "5.00"}, {"2.5", "7.80"}, {"40", "4.95"}, {"0.33", "55.10"}, {"7", "6.00"},
	}
	for _, e := range entries {
		_, err := uc.RecordIn(ctx, ledger.MovementInput{ProductID: "p1", Quantity: dec(e.qty), UnitCost: ptr(dec(e.cost))})
		require.NoError(t, err)
	}

	stock, cost := decimal.Zero, decimal.Zero
	for _, m := range st.movements {
		require.Equal(t, entity.MovementKindIN, m.Kind)
		cost = costing.WeightedAverageCost(stock, cost, m.Quantity, m.UnitCost)
		stock = stock.Add(m.Quantity)
	}

	p := st.products["p1"]
	assert.True(t, stock.Equal(p.StockOnHand), "replay do estoque: %s != %s", stock, p.StockOnHand)
	assert.True(t, cost.Equal(p.UnitCost), "replay do custo: %s != %s", cost, p.UnitCost)
}

// ── Estoque mínimo ────────────────────────────────────────────────────────────

func TestProductsBelowMinimum(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "ARROZ", "2", "5.0000", "10")
	seedProduct(st, "p2", "SAL", "50", "1.0000", "10")
	uc := newUseCase(st)

	below, err := uc.ProductsBelowMinimum(context.Background())
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, "p1", below[0].ID)
}

func TestRecommendStockMin_Persistente(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "ARROZ", "2", "5.0000", "0")
	uc := newUseCase(st)

	got, err := uc.RecommendStockMin(context.Background(), "p1", ledger.MinStockInput{
		DailyConsumption: dec("2"), LeadTimeDays: dec("3"), SafetyFactor: dec("0.5"), Persist: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "9", got.String())
	assert.True(t, dec("9").Equal(st.products["p1"].StockMin), "mínimo gravado no produto")

	_, err = uc.RecommendStockMin(context.Background(), "nada", ledger.MinStockInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Falha injetada dentro da transação restaura o estado anterior.
func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "ARROZ", "10", "5.0000", "0")
	runner := &fakeTxRunner{st: st}
	boom := errors.New("boom")

	err := runner.Run(context.Background(), func(lr repository.LedgerRepository, pr repository.ProductRepository) error {
		require.NoError(t, pr.UpdateCostAndStock(context.Background(), "p1", dec("99"), dec("99")))
		require.NoError(t, lr.Create(context.Background(), &entity.LedgerMovement{ID: "m1", ProductID: "p1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p := st.products["p1"]
	assert.True(t, dec("10").Equal(p.StockOnHand))
	assert.True(t, dec("5.0000").Equal(p.UnitCost))
	assert.Empty(t, st.movements)
}
