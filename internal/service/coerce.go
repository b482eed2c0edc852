package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// coerceHours converte a entrada em horas; vazio, texto, NaN, Inf e negativos viram 0
func coerceHours(value interface{}) float64 {
	var f float64

	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// coerceBool aceita booleanos, strings parseáveis e números; o resto é false
func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return false
	}
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// coerceDate aceita "" (limpa o campo) ou uma data ISO válida
func coerceDate(value interface{}) (string, error) {
	s := strings.TrimSpace(coerceString(value))
	if s == "" {
		return "", nil
	}
	if _, err := ParseISODate(s); err != nil {
		return "", err
	}
	return s, nil
}
