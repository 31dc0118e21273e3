package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound                  = errors.New("recurso não encontrado")
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrDuplicate                 = errors.New("recurso duplicado")
	ErrDuplicateInvoice          = errors.New("nota fiscal já importada")
	ErrInvoiceTotalsInconsistent = errors.New("totais da nota fiscal inconsistentes")
	ErrInsufficientStock         = errors.New("estoque insuficiente")
	ErrConcurrency               = errors.New("falha de serialização, tente novamente")
	ErrUnauthorized              = errors.New("não autorizado")
	ErrUserNotFound              = errors.New("usuário não encontrado")
)
