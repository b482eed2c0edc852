package middleware

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeConfig contains configuration for input sanitization
type SanitizeConfig struct {
	MaxStringLength int // Maximum allowed length in characters
}

// DefaultSanitizeConfig returns default sanitization configuration
func DefaultSanitizeConfig() SanitizeConfig {
	return SanitizeConfig{
		MaxStringLength: 10000,
	}
}

// SanitizeString remove null bytes e caracteres de controle, apara espaços e corta no limite.
// HTML não é escapado: os valores vão para JSON e planilhas, não para páginas.
func SanitizeString(input string, config SanitizeConfig) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = removeControlChars(input)
	input = strings.TrimSpace(input)

	if config.MaxStringLength > 0 && utf8.RuneCountInString(input) > config.MaxStringLength {
		input = string([]rune(input)[:config.MaxStringLength])
	}

	return input
}

// SanitizeText remove apenas null bytes e corta no limite; espaços e quebras de linha ficam
func SanitizeText(input string, config SanitizeConfig) string {
	input = strings.ReplaceAll(input, "\x00", "")

	if config.MaxStringLength > 0 && utf8.RuneCountInString(input) > config.MaxStringLength {
		input = string([]rune(input)[:config.MaxStringLength])
	}

	return input
}

// SanitizeTitle sanitizes a title/name string
func SanitizeTitle(title string) string {
	config := DefaultSanitizeConfig()
	config.MaxStringLength = 255

	return SanitizeString(title, config)
}

// SanitizeFilename prepara um nome de arquivo para o header Content-Disposition:
// separadores viram "-", aspas e caracteres de controle saem
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\x00", "")
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.NewReplacer("/", "-", "\\", "-", `"`, "", ";", "").Replace(filename)
	filename = removeControlChars(filename)
	filename = strings.TrimSpace(filename)

	if filename == "" || filename == ".xlsx" {
		return "export.xlsx"
	}

	return filename
}

// SanitizeID sanitizes an ID path parameter
func SanitizeID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.ReplaceAll(id, "\x00", "")

	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || (r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			return r
		}
		return -1
	}, id)
}

// removeControlChars removes control characters from a string
func removeControlChars(s string) string {
	var result strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
