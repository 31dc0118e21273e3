package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// CreateProductRequest cadastro manual de insumo (custo e estoque nascem zerados).
type CreateProductRequest struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	StockMin   decimal.Decimal `json:"stock_min"`
	SupplierID string          `json:"supplier_id"`
}

// UpdateProductRequest atualização cadastral (sem custo nem estoque).
type UpdateProductRequest struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	StockMin   decimal.Decimal `json:"stock_min"`
	SupplierID string          `json:"supplier_id"`
	Active     bool            `json:"active"`
}

// ProductResponse saída de um insumo.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	StockOnHand decimal.Decimal `json:"stock_on_hand"`
	StockMin    decimal.Decimal `json:"stock_min"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ProductResponseFrom(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Unit:        p.Unit,
		UnitCost:    p.UnitCost,
		StockOnHand: p.StockOnHand,
		StockMin:    p.StockMin,
		SupplierID:  p.SupplierID,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ProductListFrom(products []*entity.Product, page PageRequest) ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ProductResponseFrom(p))
	}
	return ProductListResponse{Items: items, Page: PageResponse{Limit: page.Limit, Offset: page.Offset}}
}

// ProductListResponse lista paginada de insumos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SupplierResponse saída de um fornecedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	CNPJ      string    `json:"cnpj"`
	LegalName string    `json:"legal_name"`
	TradeName string    `json:"trade_name,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func SupplierResponseFrom(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		CNPJ:      s.CNPJ,
		LegalName: s.LegalName,
		TradeName: s.TradeName,
		Address:   s.Address,
		City:      s.City,
		State:     s.State,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}

// InvoiceResponse cabeçalho de uma nota importada.
type InvoiceResponse struct {
	ID             string          `json:"id"`
	AccessKey      string          `json:"access_key"`
	Number         string          `json:"number"`
	Series         string          `json:"series"`
	SupplierID     string          `json:"supplier_id"`
	EmittedAt      time.Time       `json:"emitted_at"`
	ProductsTotal  decimal.Decimal `json:"products_total"`
	FreightTotal   decimal.Decimal `json:"freight_total"`
	InsuranceTotal decimal.Decimal `json:"insurance_total"`
	DiscountTotal  decimal.Decimal `json:"discount_total"`
	TaxTotal       decimal.Decimal `json:"tax_total"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	CreatedAt      time.Time       `json:"created_at"`
}

func InvoiceResponseFrom(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:             inv.ID,
		AccessKey:      inv.AccessKey,
		Number:         inv.Number,
		Series:         inv.Series,
		SupplierID:     inv.SupplierID,
		EmittedAt:      inv.EmittedAt,
		ProductsTotal:  inv.ProductsTotal,
		FreightTotal:   inv.FreightTotal,
		InsuranceTotal: inv.InsuranceTotal,
		DiscountTotal:  inv.DiscountTotal,
		TaxTotal:       inv.TaxTotal,
		GrandTotal:     inv.GrandTotal,
		CreatedAt:      inv.CreatedAt,
	}
}

// InvoiceItemResponse linha de uma nota importada.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Sequence    int             `json:"sequence"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Unit        string          `json:"unit"`
	NCM         string          `json:"ncm,omitempty"`
	CFOP        string          `json:"cfop,omitempty"`
	ICMSValue   decimal.Decimal `json:"icms_value"`
}

// InvoiceDetailResponse nota com suas linhas.
type InvoiceDetailResponse struct {
	Invoice InvoiceResponse       `json:"invoice"`
	Items   []InvoiceItemResponse `json:"items"`
}

func InvoiceDetailFrom(inv *entity.Invoice, items []*entity.InvoiceItem) InvoiceDetailResponse {
	out := InvoiceDetailResponse{Invoice: InvoiceResponseFrom(inv)}
	for _, it := range items {
		out.Items = append(out.Items, InvoiceItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Sequence:    it.Sequence,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
			Unit:        it.Unit,
			NCM:         it.NCM,
			CFOP:        it.CFOP,
			ICMSValue:   it.ICMSValue,
		})
	}
	return out
}
