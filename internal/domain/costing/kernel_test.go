package costing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozinhapro/backoffice-api/internal/domain/costing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ── Custo médio ponderado ─────────────────────────────────────────────────────

// Primeira compra: estoque zerado assume o custo da entrada.
func TestWeightedAverageCost_PrimeiraCompra(t *testing.T) {
	got := costing.WeightedAverageCost(dec("0"), dec("0"), dec("10"), dec("5.00"))
	assert.True(t, dec("5.0000").Equal(got), "custo esperado 5.0000, veio %s", got)
}

// Segunda compra a preço maior puxa a média para cima.
func TestWeightedAverageCost_MediaPonderada(t *testing.T) {
	// 10 un a 5.00 em estoque + 10 un a 15.00 = média 10.0000
	got := costing.WeightedAverageCost(dec("10"), dec("5.0000"), dec("10"), dec("15.00"))
	assert.True(t, dec("10.0000").Equal(got), "custo esperado 10.0000, veio %s", got)
}

func TestWeightedAverageCost_DenominadorNaoPositivo(t *testing.T) {
	got := costing.WeightedAverageCost(dec("-5"), dec("3"), dec("5"), dec("7"))
	assert.True(t, got.IsZero(), "denominador <= 0 deve retornar zero")
}

func TestWeightedAverageCost_ArredondamentoQuatroCasas(t *testing.T) {
	// (3 * 1.0000 + 1 * 2.0000) / 4 = 1.25
	got := costing.WeightedAverageCost(dec("3"), dec("1"), dec("1"), dec("2"))
	assert.Equal(t, "1.25", got.String())
	// dízima: (1 * 1 + 2 * 2) / 3 = 1.6667 (4 casas)
	got = costing.WeightedAverageCost(dec("1"), dec("1"), dec("2"), dec("2"))
	assert.Equal(t, "1.6667", got.String())
}

// Repetir a história de entradas a partir de (0, 0) reproduz o custo final.
func TestWeightedAverageCost_ReplayDeterministico(t *testing.T) {
	entries := []struct{ qty, cost string }{
		{"10", "5.00"}, {"10", "15.00"}, {"3.5", "8.30"}, {"0.25", "120.00"},
	}
	run := func() (decimal.Decimal, decimal.Decimal) {
		stock, cost := decimal.Zero, decimal.Zero
		for _, e := range entries {
			cost = costing.WeightedAverageCost(stock, cost, dec(e.qty), dec(e.cost))
			stock = stock.Add(dec(e.qty))
		}
		return stock, cost
	}
	s1, c1 := run()
	s2, c2 := run()
	assert.True(t, s1.Equal(s2))
	assert.True(t, c1.Equal(c2), "replay deve ser determinístico")
}

// ── Custeio de receita ────────────────────────────────────────────────────────

func TestRecipeDirectCost_FichaTecnica(t *testing.T) {
	lines := []costing.BOMLine{
		{Quantity: dec("0.5"), UnitCost: dec("10.0000"), Mandatory: true},
		{Quantity: dec("0.1"), UnitCost: dec("20.0000"), Mandatory: false},
	}
	total, mandatory, optional := costing.RecipeDirectCost(lines)
	assert.True(t, dec("7").Equal(total))
	assert.True(t, dec("5").Equal(mandatory))
	assert.True(t, dec("2").Equal(optional))
}

func TestRecipeDirectCost_LinhasZeradasNaoQuebram(t *testing.T) {
	total, mandatory, optional := costing.RecipeDirectCost([]costing.BOMLine{{}})
	assert.True(t, total.IsZero())
	assert.True(t, mandatory.IsZero())
	assert.True(t, optional.IsZero())
}

func TestCostPerPortion(t *testing.T) {
	assert.Equal(t, "2.5", costing.CostPerPortion(dec("5.00"), 2).String())
	assert.True(t, costing.CostPerPortion(dec("5.00"), 0).IsZero(), "porções <= 0 retorna zero")
	assert.True(t, costing.CostPerPortion(dec("5.00"), -1).IsZero())
}

// Cenário completo do prato: 0.5 kg de arroz a 10.0000, 2 porções, margem 30.
func TestCusteioDoPrato_CenarioCompleto(t *testing.T) {
	total, _, _ := costing.RecipeDirectCost([]costing.BOMLine{
		{Quantity: dec("0.5"), UnitCost: dec("10.0000"), Mandatory: true},
	})
	require.True(t, dec("5").Equal(total))

	perPortion := costing.CostPerPortion(total, 2)
	require.Equal(t, "2.5", perPortion.String())

	price := costing.SuggestedPrice(perPortion, dec("30"))
	assert.True(t, dec("3.2500").Equal(price), "preço sugerido esperado 3.2500, veio %s", price)
}

func TestSuggestedPrice_CustoZeroRetornaZero(t *testing.T) {
	assert.True(t, costing.SuggestedPrice(decimal.Zero, dec("30")).IsZero())
}

func TestMarginPercent(t *testing.T) {
	assert.Equal(t, "30", costing.MarginPercent(dec("3.25"), dec("2.50")).String())
	assert.True(t, costing.MarginPercent(dec("0"), dec("2.50")).IsZero())
	assert.True(t, costing.MarginPercent(dec("3.25"), dec("0")).IsZero())
	assert.True(t, costing.MarginPercent(dec("-1"), dec("-1")).IsZero())
}

// ── Rateio pro-rata ───────────────────────────────────────────────────────────

func TestApportion_SomaDasFatiasFechaComTotal(t *testing.T) {
	total := dec("1000.00")
	shares := costing.Apportion(total, []decimal.Decimal{dec("600"), dec("400")})
	require.Len(t, shares, 2)
	assert.Equal(t, "600", shares[0].Amount.String())
	assert.Equal(t, "400", shares[1].Amount.String())

	var sum decimal.Decimal
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	diff := sum.Sub(total).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.02")), "Σ fatias deve fechar com o total (tolerância de arredondamento)")
}

func TestApportion_PesosIguaisFatiasIguais(t *testing.T) {
	shares := costing.Apportion(dec("99.99"), []decimal.Decimal{dec("7"), dec("7"), dec("7")})
	require.Len(t, shares, 3)
	assert.True(t, shares[0].Amount.Equal(shares[1].Amount))
	assert.True(t, shares[1].Amount.Equal(shares[2].Amount))
	assert.Equal(t, "0.3333", shares[0].Fraction.String())
}

func TestApportion_PesosNaoPositivosRetornaVazio(t *testing.T) {
	assert.Nil(t, costing.Apportion(dec("100"), nil))
	assert.Nil(t, costing.Apportion(dec("100"), []decimal.Decimal{dec("0"), dec("0")}))
	assert.Nil(t, costing.Apportion(dec("100"), []decimal.Decimal{dec("-1"), dec("1")}))
}

// Rateio do mês: 600 + 400 de custo fixo sobre 1000 porções = 1.0000/porção.
func TestApportion_RateioMensalPorPorcao(t *testing.T) {
	totalOverhead := dec("600").Add(dec("400"))
	perPortion := totalOverhead.Div(dec("1000")).RoundBank(costing.UnitCostPlaces)
	assert.True(t, dec("1.0000").Equal(perPortion))
}

// ── Estoque mínimo e calendário ───────────────────────────────────────────────

func TestRecommendedMinStock(t *testing.T) {
	// 2/dia * 3 dias * 1.5 = 9
	got := costing.RecommendedMinStock(dec("2"), dec("3"), dec("0.5"))
	assert.Equal(t, "9", got.String())

	assert.True(t, costing.RecommendedMinStock(dec("0"), dec("3"), dec("0.5")).IsZero())
	assert.True(t, costing.RecommendedMinStock(dec("2"), dec("0"), dec("0.5")).IsZero())
	// fator de segurança negativo é tratado como zero
	assert.Equal(t, "6", costing.RecommendedMinStock(dec("2"), dec("3"), dec("-1")).String())
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, costing.DaysInMonth(2025, time.January))
	assert.Equal(t, 28, costing.DaysInMonth(2025, time.February))
	assert.Equal(t, 29, costing.DaysInMonth(2024, time.February), "2024 é bissexto")
	assert.Equal(t, 28, costing.DaysInMonth(1900, time.February), "1900 não é bissexto")
	assert.Equal(t, 29, costing.DaysInMonth(2000, time.February), "2000 é bissexto")
	assert.Equal(t, 30, costing.DaysInMonth(2025, time.April))
	assert.Equal(t, 31, costing.DaysInMonth(2025, time.December))
}
