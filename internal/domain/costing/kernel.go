// Package costing reúne as funções puras de custeio: custo médio ponderado,
// explosão de ficha técnica, custo por porção, preço sugerido e rateio.
// Todas são determinísticas, nunca bloqueiam e nunca retornam erro para os
// casos-limite numéricos documentados (divisão por zero, pesos vazios):
// devolvem o valor seguro. Arredondamento bancário nas casas documentadas:
// 4 para custos unitários, 2 para totais.
package costing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Casas decimais padrão.
const (
	UnitCostPlaces = 4
	TotalPlaces    = 2
)

var hundred = decimal.NewFromInt(100)

// WeightedAverageCost calcula o novo custo médio ponderado após uma entrada.
// NovoCusto = ((Estoque * CustoAtual) + (QtdEntrada * CustoEntrada)) / (Estoque + QtdEntrada)
// Se o denominador for <= 0 o resultado é zero.
func WeightedAverageCost(stock, cost, qtyIn, costIn decimal.Decimal) decimal.Decimal {
	sum := stock.Add(qtyIn)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(cost).Add(qtyIn.Mul(costIn))
	return num.Div(sum).RoundBank(UnitCostPlaces)
}

// BOMLine é uma linha da ficha técnica já resolvida contra o produto.
type BOMLine struct {
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Mandatory bool
}

// RecipeDirectCost explode a ficha técnica: retorna o custo direto total e os
// subtotais dos insumos obrigatórios e opcionais. Campos zerados somam zero.
func RecipeDirectCost(lines []BOMLine) (total, mandatory, optional decimal.Decimal) {
	for _, l := range lines {
		lineCost := l.Quantity.Mul(l.UnitCost)
		total = total.Add(lineCost)
		if l.Mandatory {
			mandatory = mandatory.Add(lineCost)
		} else {
			optional = optional.Add(lineCost)
		}
	}
	return total, mandatory, optional
}

// CostPerPortion divide o custo total pelo número de porções.
// portions <= 0 retorna zero.
func CostPerPortion(total decimal.Decimal, portions int) decimal.Decimal {
	if portions <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(portions))).RoundBank(UnitCostPlaces)
}

// SuggestedPrice aplica a margem alvo sobre o custo total por porção.
// Custo zero retorna preço zero.
func SuggestedPrice(costPerPortion, marginPct decimal.Decimal) decimal.Decimal {
	if costPerPortion.IsZero() {
		return decimal.Zero
	}
	factor := decimal.NewFromInt(1).Add(marginPct.Div(hundred))
	return costPerPortion.Mul(factor).RoundBank(UnitCostPlaces)
}

// MarginPercent inverte a fórmula do preço: (preço - custo) / custo * 100.
// Qualquer operando não positivo retorna zero.
func MarginPercent(price, cost decimal.Decimal) decimal.Decimal {
	if !price.GreaterThan(decimal.Zero) || !cost.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return price.Sub(cost).Div(cost).Mul(hundred).RoundBank(TotalPlaces)
}

// Share é a fatia de um rateio pro-rata.
type Share struct {
	Amount   decimal.Decimal // T * w / Σw
	Fraction decimal.Decimal // w / Σw
}

// Apportion distribui o total proporcionalmente aos pesos.
// Soma de pesos <= 0 retorna vazio.
func Apportion(total decimal.Decimal, weights []decimal.Decimal) []Share {
	var sum decimal.Decimal
	for _, w := range weights {
		sum = sum.Add(w)
	}
	if sum.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	shares := make([]Share, len(weights))
	for i, w := range weights {
		frac := w.Div(sum)
		shares[i] = Share{
			Amount:   total.Mul(frac).RoundBank(TotalPlaces),
			Fraction: frac.RoundBank(UnitCostPlaces),
		}
	}
	return shares
}

// RecommendedMinStock sugere estoque mínimo a partir do consumo médio diário,
// lead time do fornecedor e fator de segurança. Entradas não positivas em
// consumo ou lead time retornam zero.
func RecommendedMinStock(dailyConsumption, leadTimeDays, safetyFactor decimal.Decimal) decimal.Decimal {
	if !dailyConsumption.GreaterThan(decimal.Zero) || !leadTimeDays.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	if safetyFactor.LessThan(decimal.Zero) {
		safetyFactor = decimal.Zero
	}
	factor := decimal.NewFromInt(1).Add(safetyFactor)
	return dailyConsumption.Mul(leadTimeDays).Mul(factor).RoundBank(UnitCostPlaces)
}

// DaysInMonth retorna os dias do mês no calendário gregoriano.
func DaysInMonth(year int, month time.Month) int {
	// dia zero do mês seguinte = último dia do mês
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
