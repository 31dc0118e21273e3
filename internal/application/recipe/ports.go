package recipe

import (
	"context"

	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// TxRunner executa o lote de rateio mensal em uma transação: soma dos custos
// fixos e gravação do rateio em todas as receitas ativas. Um rateio parcial é
// pior que nenhum; leitores veem o valor anterior ou o novo, nunca uma mistura.
type TxRunner interface {
	RunRecipes(ctx context.Context, fn func(
		recipeRepo repository.RecipeRepository,
		overheadRepo repository.OverheadRepository,
	) error) error
}
