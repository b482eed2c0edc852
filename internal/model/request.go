package model

// FieldUpdateRequest representa a edição de um único campo.
// Value aceita qualquer JSON (número, string, booleano); a coerção fica no serviço.
type FieldUpdateRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

// TitleRequest altera o título do documento/relatório
type TitleRequest struct {
	Title string `json:"title"`
}

// PageRequest altera a página ativa
type PageRequest struct {
	Page string `json:"page" binding:"required"`
}

// ResetRequest exige confirmação explícita do usuário
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// WeekNavigateRequest navega entre semanas
type WeekNavigateRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// WeekSelectRequest seleciona a semana que contém a data informada
type WeekSelectRequest struct {
	Date string `json:"date" binding:"required"`
}

// Response representa a resposta padrão da API
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// ErrorResponse representa uma resposta de erro
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
