package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe representa um prato com sua ficha técnica (lista de insumos).
// IndirectCostPerPortion é o rateio mensal de custos fixos, gravado em lote
// pelo serviço de rateio; os demais custos são derivados na leitura.
type Recipe struct {
	ID                     string
	Name                   string // única
	YieldQuantity          decimal.Decimal
	YieldUnit              string
	PortionCount           int // > 0
	PrepTimeMinutes        int
	MarginPercent          decimal.Decimal // margem alvo sobre o custo total
	IndirectCostPerPortion decimal.Decimal
	Active                 bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// RecipeIngredient é uma linha da ficha técnica: quantidade de um insumo
// por rendimento da receita. No máximo uma linha por (receita, produto).
type RecipeIngredient struct {
	ID        string
	RecipeID  string
	ProductID string
	Quantity  decimal.Decimal // > 0, na unidade do produto
	SortIndex int
	Mandatory bool
}
