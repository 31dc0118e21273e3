package entity

import "time"

// Supplier representa um fornecedor identificado pelo CNPJ (14 dígitos).
// O CNPJ é imutável depois que o fornecedor aparece em alguma nota fiscal.
type Supplier struct {
	ID        string
	CNPJ      string // chave natural, 14 dígitos
	LegalName string // razão social
	TradeName string // nome fantasia (opcional)
	Address   string
	City      string
	State     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
