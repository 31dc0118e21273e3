package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// UseCase consultas e cadastro do catálogo: insumos, fornecedores, notas
// importadas e o extrato do livro de movimentos. Custo e estoque nunca são
// alterados por aqui; isso é exclusivo do livro.
type UseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	invoiceRepo  repository.InvoiceRepository
	ledgerRepo   repository.LedgerRepository
}

func NewUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	invoiceRepo repository.InvoiceRepository,
	ledgerRepo repository.LedgerRepository,
) *UseCase {
	return &UseCase{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		invoiceRepo:  invoiceRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// ProductInput cadastro manual de insumo. Custo e estoque nascem zerados;
// o primeiro valor vem da primeira entrada no livro.
type ProductInput struct {
	Code       string
	Name       string
	Unit       string
	StockMin   decimal.Decimal
	SupplierID string
}

func (in ProductInput) validate() error {
	if in.Code == "" || in.Name == "" || in.Unit == "" {
		return domain.ErrInvalidInput
	}
	if in.StockMin.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateProduct cadastra um insumo manualmente (fora do fluxo de nota fiscal).
func (uc *UseCase) CreateProduct(ctx context.Context, in ProductInput) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Unit:        in.Unit,
		UnitCost:    decimal.Zero,
		StockOnHand: decimal.Zero,
		StockMin:    in.StockMin,
		SupplierID:  in.SupplierID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct atualiza os campos cadastrais de um insumo.
func (uc *UseCase) UpdateProduct(ctx context.Context, id string, in ProductInput, active bool) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Code = in.Code
	p.Name = in.Name
	p.Unit = in.Unit
	p.StockMin = in.StockMin
	p.SupplierID = in.SupplierID
	p.Active = active
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *UseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *UseCase) ListProducts(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, activeOnly, limit, offset)
}

func (uc *UseCase) GetSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *UseCase) ListSuppliers(ctx context.Context, activeOnly bool) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(ctx, activeOnly)
}

// InvoiceView nota importada com suas linhas.
type InvoiceView struct {
	Invoice *entity.Invoice
	Items   []*entity.InvoiceItem
}

func (uc *UseCase) GetInvoice(ctx context.Context, id string) (*InvoiceView, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &InvoiceView{Invoice: inv, Items: items}, nil
}

func (uc *UseCase) ListInvoices(ctx context.Context, start, end time.Time, limit, offset int) ([]*entity.Invoice, error) {
	return uc.invoiceRepo.ListBetween(ctx, start, end, limit, offset)
}

// Movements extrato do produto na ordem canônica (date, id).
func (uc *UseCase) Movements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.ledgerRepo.ListByProduct(ctx, productID, from, to, limit, offset)
}
