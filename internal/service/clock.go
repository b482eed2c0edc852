package service

import "time"

// Clock fornece a data de hoje (YYYY-MM-DD, calendário local)
type Clock interface {
	Today() string
}

// SystemClock usa o relógio do sistema
type SystemClock struct{}

func (SystemClock) Today() string {
	return time.Now().Format(isoDateLayout)
}

// FixedClock retorna sempre a mesma data; usado em testes e no CLI
type FixedClock string

func (c FixedClock) Today() string {
	return string(c)
}
