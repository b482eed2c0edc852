package service

import (
	"fmt"
	"math"
	"strconv"
)

func isSubHour(h float64) bool {
	return h > 0 && h < 1
}

// formatNumber usa até duas casas decimais, sem zeros à direita
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// FormatHours formata um valor de horas: "30 min" abaixo de uma hora, senão "<n> hr"
func FormatHours(h float64) string {
	if isSubHour(h) {
		return fmt.Sprintf("%d min", int(math.Round(h*60)))
	}
	return formatNumber(h) + " hr"
}

// FormatHourRange formata uma faixa min..max.
// Quando algum limite é menor que uma hora cada um leva sua própria unidade.
func FormatHourRange(min, max float64) string {
	if min == max {
		return FormatHours(min)
	}
	if !isSubHour(min) && !isSubHour(max) {
		return fmt.Sprintf("%s- %s hr", formatNumber(min), formatNumber(max))
	}
	return FormatHours(min) + "- " + FormatHours(max)
}
