package ingest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozinhapro/backoffice-api/internal/application/ingest"
	"github.com/cozinhapro/backoffice-api/internal/application/ledger"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// ── Fakes em memória com semântica transacional ───────────────────────────────

type fakeDB struct {
	suppliers map[string]*entity.Supplier // por CNPJ
	products  map[string]*entity.Product  // por código
	invoices  map[string]*entity.Invoice  // por chave de acesso
	items     []*entity.InvoiceItem
	movements []*entity.LedgerMovement

	failInvoiceCreate error // injeta falha no meio do lote
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		suppliers: map[string]*entity.Supplier{},
		products:  map[string]*entity.Product{},
		invoices:  map[string]*entity.Invoice{},
	}
}

func (db *fakeDB) snapshot() *fakeDB {
	cp := newFakeDB()
	for k, v := range db.suppliers {
		s := *v
		cp.suppliers[k] = &s
	}
	for k, v := range db.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range db.invoices {
		i := *v
		cp.invoices[k] = &i
	}
	cp.items = append([]*entity.InvoiceItem(nil), db.items...)
	cp.movements = append([]*entity.LedgerMovement(nil), db.movements...)
	return cp
}

func (db *fakeDB) restore(from *fakeDB) {
	db.suppliers, db.products = from.suppliers, from.products
	db.invoices, db.items, db.movements = from.invoices, from.items, from.movements
}

type fakeSupplierRepo struct{ db *fakeDB }

func (r *fakeSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	if _, ok := r.db.suppliers[s.CNPJ]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	r.db.suppliers[s.CNPJ] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	for _, s := range r.db.suppliers {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSupplierRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Supplier, error) {
	s, ok := r.db.suppliers[cnpj]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) Update(_ context.Context, s *entity.Supplier) error { return nil }

func (r *fakeSupplierRepo) List(_ context.Context, _ bool) ([]*entity.Supplier, error) {
	return nil, nil
}

type fakeProductRepo struct{ db *fakeDB }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.db.products[p.Code]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.db.products[p.Code] = &cp
	return nil
}

func (r *fakeProductRepo) byID(id string) *entity.Product {
	for _, p := range r.db.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p := r.byID(id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	p, ok := r.db.products[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }

func (r *fakeProductRepo) UpdateCostAndStock(_ context.Context, id string, unitCost, stockOnHand decimal.Decimal) error {
	p := r.byID(id)
	if p == nil {
		return domain.ErrNotFound
	}
	p.UnitCost = unitCost
	p.StockOnHand = stockOnHand
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

type fakeInvoiceRepo struct{ db *fakeDB }

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error {
	if r.db.failInvoiceCreate != nil {
		return r.db.failInvoiceCreate
	}
	if _, ok := r.db.invoices[inv.AccessKey]; ok {
		return domain.ErrDuplicateInvoice
	}
	cp := *inv
	r.db.invoices[inv.AccessKey] = &cp
	for _, it := range items {
		c := *it
		r.db.items = append(r.db.items, &c)
	}
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	for _, inv := range r.db.invoices {
		if inv.ID == id {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetByAccessKey(_ context.Context, key string) (*entity.Invoice, error) {
	inv, ok := r.db.invoices[key]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) ListItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, it := range r.db.items {
		if it.InvoiceID == invoiceID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListBetween(_ context.Context, _, _ time.Time, _, _ int) ([]*entity.Invoice, error) {
	return nil, nil
}

type fakeLedgerRepo struct{ db *fakeDB }

func (r *fakeLedgerRepo) Create(_ context.Context, m *entity.LedgerMovement) error {
	cp := *m
	r.db.movements = append(r.db.movements, &cp)
	return nil
}

func (r *fakeLedgerRepo) ListByProduct(_ context.Context, _ string, _, _ *time.Time, _, _ int) ([]*entity.LedgerMovement, error) {
	return r.db.movements, nil
}

func (r *fakeLedgerRepo) ListBetween(_ context.Context, _, _ time.Time, _, _ int) ([]*entity.LedgerMovement, error) {
	return r.db.movements, nil
}

type fakeTxRunner struct{ db *fakeDB }

func (t *fakeTxRunner) RunIngest(_ context.Context, fn func(
	repository.SupplierRepository,
	repository.ProductRepository,
	repository.InvoiceRepository,
	repository.LedgerRepository,
) error) error {
	snap := t.db.snapshot()
	err := fn(&fakeSupplierRepo{db: t.db}, &fakeProductRepo{db: t.db}, &fakeInvoiceRepo{db: t.db}, &fakeLedgerRepo{db: t.db})
	if err != nil {
		t.db.restore(snap)
		return err
	}
	return nil
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.LedgerRepository,
	repository.ProductRepository,
) error) error {
	snap := t.db.snapshot()
	if err := fn(&fakeLedgerRepo{db: t.db}, &fakeProductRepo{db: t.db}); err != nil {
		t.db.restore(snap)
		return err
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

const accessKey = "35200714200166000187550010000000046550000046"

func riceRecord(qty, price, lineTotal string) *ingest.NFeRecord {
	return &ingest.NFeRecord{
		AccessKey: accessKey,
		Number:    "4655",
		Series:    "1",
		EmittedAt: time.Date(2025, 7, 10, 9, 30, 0, 0, time.UTC),
		Supplier: ingest.NFeSupplier{
			CNPJ:      "14200166000187",
			LegalName: "Distribuidora de Alimentos Ltda",
		},
		Totals: ingest.NFeTotals{
			Products: dec(lineTotal),
			Grand:    dec(lineTotal),
		},
		Items: []ingest.NFeItem{{
			Code:        "ARZ-001",
			Description: "Arroz tipo 1",
			Unit:        "kg",
			Quantity:    dec(qty),
			UnitPrice:   dec(price),
			LineTotal:   dec(lineTotal),
		}},
		RawXML: "<NFe/>",
	}
}

func newIngestUC(db *fakeDB) *ingest.UseCase {
	runner := &fakeTxRunner{db: db}
	ledgerUC := ledger.NewUseCase(runner, &fakeProductRepo{db: db})
	return ingest.NewUseCase(runner, ledgerUC, &fakeInvoiceRepo{db: db})
}

// ── Cenários ──────────────────────────────────────────────────────────────────

// Primeira compra: nota com 10 kg a 5.00 cria fornecedor, produto e entrada.
func TestIngestNFe_PrimeiraCompra(t *testing.T) {
	db := newFakeDB()
	uc := newIngestUC(db)

	inv, err := uc.IngestNFe(context.Background(), riceRecord("10", "5.00", "50.00"))
	require.NoError(t, err)
	require.NotNil(t, inv)

	require.Len(t, db.suppliers, 1)
	assert.True(t, db.suppliers["14200166000187"].Active, "fornecedor novo nasce ativo")

	require.Len(t, db.products, 1)
	p := db.products["ARZ-001"]
	assert.Equal(t, "kg", p.Unit, "produto novo herda a unidade da linha")
	assert.True(t, dec("10").Equal(p.StockOnHand))
	assert.True(t, dec("5.0000").Equal(p.UnitCost))

	require.Len(t, db.movements, 1)
	assert.Equal(t, entity.MovementKindIN, db.movements[0].Kind)
	assert.Equal(t, "NF-e 4655/1", db.movements[0].Reference)
	assert.True(t, dec("5.0000").Equal(db.movements[0].UnitCost))

	assert.Equal(t, "<NFe/>", db.invoices[accessKey].RawXML, "XML original retido na nota")
}

// Segunda nota do mesmo produto a 15.00: custo médio vai a 10.0000.
func TestIngestNFe_SegundaCompraAtualizaCustoMedio(t *testing.T) {
	db := newFakeDB()
	uc := newIngestUC(db)
	ctx := context.Background()

	_, err := uc.IngestNFe(ctx, riceRecord("10", "5.00", "50.00"))
	require.NoError(t, err)

	second := riceRecord("10", "15.00", "150.00")
	second.AccessKey = "35200714200166000187550010000000047550000047"
	second.Number = "4656"
	_, err = uc.IngestNFe(ctx, second)
	require.NoError(t, err)

	p := db.products["ARZ-001"]
	assert.True(t, dec("20").Equal(p.StockOnHand))
	assert.True(t, dec("10.0000").Equal(p.UnitCost))
	assert.Len(t, db.movements, 2, "duas entradas em ordem")
	assert.Len(t, db.suppliers, 1, "fornecedor não é duplicado")
}

// Mesma chave duas vezes: uma nota só, estado intacto, ErrDuplicateInvoice
// com referência à nota existente.
func TestIngestNFe_ChaveDuplicada(t *testing.T) {
	db := newFakeDB()
	uc := newIngestUC(db)
	ctx := context.Background()

	first, err := uc.IngestNFe(ctx, riceRecord("10", "5.00", "50.00"))
	require.NoError(t, err)

	again, err := uc.IngestNFe(ctx, riceRecord("10", "5.00", "50.00"))
	require.ErrorIs(t, err, domain.ErrDuplicateInvoice)
	require.NotNil(t, again, "retorna a nota existente")
	assert.Equal(t, first.ID, again.ID)

	assert.Len(t, db.invoices, 1)
	assert.Len(t, db.movements, 1, "estoque e custo refletem uma única aplicação")
	assert.True(t, dec("10").Equal(db.products["ARZ-001"].StockOnHand))
	assert.True(t, dec("5.0000").Equal(db.products["ARZ-001"].UnitCost))
}

func TestIngestNFe_TotaisInconsistentes(t *testing.T) {
	db := newFakeDB()
	uc := newIngestUC(db)

	rec := riceRecord("10", "5.00", "50.00")
	rec.Totals.Grand = dec("60.00") // fora da tolerância de 0.02
	_, err := uc.IngestNFe(context.Background(), rec)
	require.ErrorIs(t, err, domain.ErrInvoiceTotalsInconsistent)
	assert.Empty(t, db.invoices)
	assert.Empty(t, db.movements)
}

func TestIngestNFe_ToleranciaDeArredondamento(t *testing.T) {
	db := newFakeDB()
	uc := newIngestUC(db)

	rec := riceRecord("10", "5.00", "50.00")
	rec.Totals.Grand = dec("50.02") // dentro da tolerância
	_, err := uc.IngestNFe(context.Background(), rec)
	assert.NoError(t, err)
}

func TestIngestNFe_NotaCanceladaRejeitada(t *testing.T) {
	db := newFakeDB()
	uc := newIngestUC(db)

	rec := riceRecord("10", "5.00", "50.00")
	rec.Cancelled = true
	_, err := uc.IngestNFe(context.Background(), rec)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, db.invoices)
}

func TestIngestNFe_ValidacaoDeRegistro(t *testing.T) {
	db := newFakeDB()
	uc := newIngestUC(db)
	ctx := context.Background()

	rec := riceRecord("10", "5.00", "50.00")
	rec.AccessKey = "123" // chave curta
	_, err := uc.IngestNFe(ctx, rec)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rec = riceRecord("10", "5.00", "50.00")
	rec.Supplier.CNPJ = "99" // CNPJ inválido
	_, err = uc.IngestNFe(ctx, rec)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rec = riceRecord("0", "5.00", "50.00") // quantidade zero
	_, err = uc.IngestNFe(ctx, rec)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rec = riceRecord("10", "5.00", "50.00")
	rec.Items = nil // sem linhas
	_, err = uc.IngestNFe(ctx, rec)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Falha no meio do lote desfaz fornecedor, produtos, nota e movimentos.
func TestIngestNFe_FalhaNoMeioDoLoteDesfazTudo(t *testing.T) {
	db := newFakeDB()
	uc := newIngestUC(db)
	boom := errors.New("disco cheio")
	db.failInvoiceCreate = boom

	_, err := uc.IngestNFe(context.Background(), riceRecord("10", "5.00", "50.00"))
	require.ErrorIs(t, err, boom)

	assert.Empty(t, db.suppliers, "upsert de fornecedor desfeito")
	assert.Empty(t, db.products, "upsert de produto desfeito")
	assert.Empty(t, db.invoices)
	assert.Empty(t, db.movements)
}
