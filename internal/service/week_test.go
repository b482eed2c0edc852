package service

import (
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/cleberrangel/project-estimator-api/internal/model"
)

func TestMondayOf(t *testing.T) {
	cases := map[string]string{
		"2024-06-03": "2024-06-03", // segunda
		"2024-06-05": "2024-06-03",
		"2024-06-08": "2024-06-03",
		"2024-06-09": "2024-06-03", // domingo pertence à semana anterior
		"2024-06-10": "2024-06-10",
		"2024-01-01": "2024-01-01",
		"2023-01-01": "2022-12-26", // domingo na virada de ano
		"2024-03-02": "2024-02-26", // ano bissexto
	}
	for date, want := range cases {
		got, err := MondayOf(date)
		if err != nil {
			t.Fatalf("MondayOf(%s): %v", date, err)
		}
		if got != want {
			t.Errorf("MondayOf(%s) = %s, want %s", date, got, want)
		}
	}
}

func TestMondayOf_InvalidDate(t *testing.T) {
	for _, date := range []string{"", "2024-13-01", "06/05/2024", "2024-6-5"} {
		if _, err := MondayOf(date); !errors.Is(err, model.ErrInvalidDate) {
			t.Errorf("MondayOf(%q) err = %v, want ErrInvalidDate", date, err)
		}
	}
}

func TestNewWeekWindow(t *testing.T) {
	w, err := NewWeekWindow("2024-06-03")
	if err != nil {
		t.Fatal(err)
	}
	if w.Start != "2024-06-03" || w.End != "2024-06-09" {
		t.Errorf("janela inesperada: %+v", w)
	}

	w, _ = NewWeekWindow("2024-12-30")
	if w.End != "2025-01-05" {
		t.Errorf("fim da semana na virada de ano = %s", w.End)
	}
}

func TestShiftWeek(t *testing.T) {
	next, _ := ShiftWeek("2024-06-03", 1)
	prev, _ := ShiftWeek("2024-06-03", -1)
	if next != "2024-06-10" {
		t.Errorf("next = %s", next)
	}
	if prev != "2024-05-27" {
		t.Errorf("previous = %s", prev)
	}
}

func genISODate() gopter.Gen {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return gen.IntRange(0, 3650).Map(func(days int) string {
		return base.AddDate(0, 0, days).Format(isoDateLayout)
	})
}

func TestWeekNormalizationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("MondayOf always returns a Monday", prop.ForAll(
		func(date string) bool {
			monday, err := MondayOf(date)
			if err != nil {
				return false
			}
			t, _ := ParseISODate(monday)
			return t.Weekday() == time.Monday
		},
		genISODate(),
	))

	properties.Property("selected date falls inside its window", prop.ForAll(
		func(date string) bool {
			w, err := NewWeekWindow(date)
			if err != nil {
				return false
			}
			return w.Start <= date && date <= w.End
		},
		genISODate(),
	))

	properties.Property("normalization is idempotent", prop.ForAll(
		func(date string) bool {
			once, _ := MondayOf(date)
			twice, _ := MondayOf(once)
			return once == twice
		},
		genISODate(),
	))

	properties.Property("next then previous returns to the same week", prop.ForAll(
		func(date string) bool {
			monday, _ := MondayOf(date)
			next, _ := ShiftWeek(monday, 1)
			back, _ := ShiftWeek(next, -1)
			return back == monday
		},
		genISODate(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
