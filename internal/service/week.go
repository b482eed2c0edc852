package service

import (
	"fmt"
	"time"

	"github.com/cleberrangel/project-estimator-api/internal/model"
)

const isoDateLayout = "2006-01-02"

// ParseISODate interpreta uma data YYYY-MM-DD (UTC)
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", model.ErrInvalidDate, s)
	}
	return t, nil
}

// MondayOf retorna a segunda-feira da semana de date.
// Domingo conta como o sétimo dia da semana anterior.
func MondayOf(date string) (string, error) {
	t, err := ParseISODate(date)
	if err != nil {
		return "", err
	}

	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, 1-weekday).Format(isoDateLayout), nil
}

// NewWeekWindow monta a janela segunda..domingo que contém start
func NewWeekWindow(start string) (model.WeekWindow, error) {
	monday, err := MondayOf(start)
	if err != nil {
		return model.WeekWindow{}, err
	}

	t, _ := ParseISODate(monday)
	return model.WeekWindow{
		Start: monday,
		End:   t.AddDate(0, 0, 6).Format(isoDateLayout),
	}, nil
}

// ShiftWeek desloca start em weeks semanas (negativo volta)
func ShiftWeek(start string, weeks int) (string, error) {
	t, err := ParseISODate(start)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 7*weeks).Format(isoDateLayout), nil
}
