package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
// Os específicos de validação embrulham ErrInvalidInput para que o chamador
// possa tratar a categoria inteira com errors.Is(err, ErrInvalidInput).
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrUserNotFound = errors.New("usuário não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("não autorizado")
	ErrForbidden    = errors.New("acesso negado")

	// Validações do motor de transferência.
	ErrEmptyItems          = wrap("nenhum item informado")
	ErrSameDeposit         = wrap("depósito de origem e destino idênticos")
	ErrNonPositiveQuantity = wrap("quantidade deve ser maior que zero")
	ErrInsufficientStock   = wrap("quantidade superior ao estoque disponível")

	// Validações do motor de notas fiscais.
	ErrUnboundItems = wrap("itens da nota sem produto vinculado")
	ErrNoCostCenter = wrap("nenhum centro de custo selecionado")

	// Transição de estado inválida (nota fiscal já processada é terminal).
	ErrAlreadyProcessed = errors.New("nota fiscal já processada")
)

func wrap(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidInput)
}
