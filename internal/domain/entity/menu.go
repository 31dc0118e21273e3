package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu é um cardápio com janela de vigência própria; cardápios históricos
// são mantidos. EndDate nil = vigência aberta.
type Menu struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   *time.Time // quando presente, EndDate >= StartDate
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuSection é uma seção ordenada dentro de um cardápio.
type MenuSection struct {
	ID        string
	MenuID    string
	Name      string
	SortIndex int
}

// MenuItem vincula uma receita a uma seção. PriceOverride, quando presente,
// prevalece sobre o preço sugerido da receita. Única por (seção, receita).
type MenuItem struct {
	ID            string
	SectionID     string
	RecipeID      string
	PriceOverride *decimal.Decimal
	Featured      bool
	Available     bool
	SortIndex     int
}
