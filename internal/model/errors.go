package model

import "errors"

var (
	// ErrUnknownField indica um campo que não existe no item/tarefa
	ErrUnknownField = errors.New("campo desconhecido")

	// ErrReadOnlyField indica um campo derivado ou identificador
	ErrReadOnlyField = errors.New("campo somente leitura")

	// ErrInvalidDate indica data fora do formato YYYY-MM-DD
	ErrInvalidDate = errors.New("data inválida, use o formato YYYY-MM-DD")

	// ErrInvalidDirection indica direção de navegação semanal desconhecida
	ErrInvalidDirection = errors.New("direção inválida, use previous, next ou current")

	// ErrInvalidPage indica página desconhecida
	ErrInvalidPage = errors.New("página inválida, use estimator ou kpis")

	// ErrConfirmationRequired indica reset sem confirmação explícita
	ErrConfirmationRequired = errors.New("confirmação obrigatória para limpar os dados")
)
