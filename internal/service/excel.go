package service

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/cleberrangel/project-estimator-api/internal/metrics"
)

const (
	// DefaultExportAuthor é gravado como autor do documento
	DefaultExportAuthor = "Project Estimator"

	baseFontFamily = "Arial"
	baseFontSize   = 11

	// limite do formato xlsx para nomes de planilha
	maxSheetNameLen  = 31
	defaultSheetName = "Sheet1"
)

var (
	forbiddenSheetChars = strings.NewReplacer(":", "-", `\`, "-", "/", "-", "?", "-", "*", "-", "[", "(", "]", ")")
	whitespaceRun       = regexp.MustCompile(`\s+`)
	pathSeparators      = strings.NewReplacer("/", "-", "\\", "-")
)

// ExportColumn é uma coluna da planilha com largura em caracteres
type ExportColumn struct {
	Name  string
	Width float64
}

// ExportRow mapeia nome da coluna para o valor (string ou número)
type ExportRow map[string]interface{}

// CellStyle são os atributos aplicados sobre a fonte base
type CellStyle struct {
	Bold       bool
	Horizontal string
	Vertical   string
}

// ExportSheet descreve uma planilha a exportar.
// Styles é indexado pela coordenada da célula ("A1").
type ExportSheet struct {
	Kind      string
	Title     string
	SheetName string
	Columns   []ExportColumn
	Rows      []ExportRow
	Styles    map[string]CellStyle
}

// ExportResult é o arquivo gerado
type ExportResult struct {
	Kind     string
	Title    string
	FileName string
	Rows     int
	Data     []byte
}

// SpreadsheetExporter gera arquivos .xlsx
type SpreadsheetExporter struct {
	author string
	now    func() time.Time
}

// NewSpreadsheetExporter cria um novo exportador
func NewSpreadsheetExporter(author string) *SpreadsheetExporter {
	if author == "" {
		author = DefaultExportAuthor
	}
	return &SpreadsheetExporter{
		author: author,
		now:    time.Now,
	}
}

// Export escreve a planilha e monta o nome do arquivo com stamp
func (e *SpreadsheetExporter) Export(sheet ExportSheet, stamp string) (*ExportResult, error) {
	data, err := e.write(sheet)
	if err != nil {
		metrics.Get().IncrementExport(false)
		return nil, err
	}

	metrics.Get().IncrementExport(true)
	return &ExportResult{
		Kind:     sheet.Kind,
		Title:    sheet.Title,
		FileName: BuildFileName(sheet.Title, stamp),
		Rows:     len(sheet.Rows),
		Data:     data,
	}, nil
}

func (e *SpreadsheetExporter) write(sheet ExportSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := SanitizeSheetName(sheet.SheetName)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return nil, fmt.Errorf("renomear sheet: %w", err)
	}

	styles := newStyleSet(f)

	// Cabeçalho na linha 1
	for col, column := range sheet.Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := e.setCell(f, styles, name, cell, column.Name, sheet.Styles); err != nil {
			return nil, fmt.Errorf("escrever header: %w", err)
		}
	}

	for r, row := range sheet.Rows {
		for col, column := range sheet.Columns {
			value, ok := row[column.Name]
			if !ok || value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := e.setCell(f, styles, name, cell, value, sheet.Styles); err != nil {
				return nil, fmt.Errorf("escrever linha %d: %w", r+2, err)
			}
		}
	}

	for col, column := range sheet.Columns {
		if column.Width <= 0 {
			continue
		}
		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(name, colName, colName, column.Width); err != nil {
			return nil, fmt.Errorf("ajustar colunas: %w", err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   sheet.Title,
		Creator: e.author,
		Created: e.now().UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("propriedades do documento: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escrever buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *SpreadsheetExporter) setCell(f *excelize.File, styles *styleSet, sheet, cell string, value interface{}, overrides map[string]CellStyle) error {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	styleID, err := styles.id(overrides[cell])
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, styleID)
}

// styleSet reaproveita os estilos já registrados no arquivo
type styleSet struct {
	f   *excelize.File
	ids map[CellStyle]int
}

func newStyleSet(f *excelize.File) *styleSet {
	return &styleSet{f: f, ids: make(map[CellStyle]int)}
}

func (s *styleSet) id(cs CellStyle) (int, error) {
	if id, ok := s.ids[cs]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:   cs.Bold,
			Family: baseFontFamily,
			Size:   baseFontSize,
		},
	}
	if cs.Horizontal != "" || cs.Vertical != "" {
		style.Alignment = &excelize.Alignment{
			Horizontal: cs.Horizontal,
			Vertical:   cs.Vertical,
		}
	}

	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.ids[cs] = id
	return id, nil
}

// SanitizeSheetName troca caracteres proibidos e corta em 31 caracteres
func SanitizeSheetName(name string) string {
	name = forbiddenSheetChars.Replace(strings.TrimSpace(name))
	name = strings.Trim(name, "'")

	if utf8.RuneCountInString(name) > maxSheetNameLen {
		name = string([]rune(name)[:maxSheetNameLen])
	}
	name = strings.Trim(name, "' ")

	if name == "" {
		return defaultSheetName
	}
	return name
}

// BuildFileName monta "<titulo-em-minusculas>-<stamp>.xlsx".
// Separadores de caminho do título viram "-".
func BuildFileName(title, stamp string) string {
	base := whitespaceRun.ReplaceAllString(strings.ToLower(title), "-")
	base = pathSeparators.Replace(base)
	return fmt.Sprintf("%s-%s.xlsx", base, stamp)
}
