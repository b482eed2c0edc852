package model

// EstimateLineItem representa uma página/tarefa da estimativa com faixas de horas
type EstimateLineItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	DesktopMin float64 `json:"desktopMin"`
	DesktopMax float64 `json:"desktopMax"`
	MobileMin  float64 `json:"mobileMin"`
	MobileMax  float64 `json:"mobileMax"`
}

// EstimateTotals contém as somas por coluna e os totais combinados (desktop + mobile)
type EstimateTotals struct {
	DesktopMin float64 `json:"desktopMin"`
	DesktopMax float64 `json:"desktopMax"`
	MobileMin  float64 `json:"mobileMin"`
	MobileMax  float64 `json:"mobileMax"`
	TotalMin   float64 `json:"totalMin"`
	TotalMax   float64 `json:"totalMax"`
}

// EstimateDocument é a visão completa da estimativa (totais sempre recalculados)
type EstimateDocument struct {
	Title  string             `json:"title"`
	Items  []EstimateLineItem `json:"items"`
	Totals EstimateTotals     `json:"totals"`
}

// Campos editáveis de um item da estimativa
const (
	EstimateFieldID         = "id"
	EstimateFieldName       = "name"
	EstimateFieldDesktopMin = "desktopMin"
	EstimateFieldDesktopMax = "desktopMax"
	EstimateFieldMobileMin  = "mobileMin"
	EstimateFieldMobileMax  = "mobileMax"
)
