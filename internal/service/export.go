package service

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cleberrangel/project-estimator-api/internal/model"
)

// Tipos de exportação
const (
	ExportKindEstimate = "estimate"
	ExportKindKPI      = "kpi"
)

// Título da planilha de KPIs quando o relatório está sem título
const DefaultKPISheetTitle = "Development Report"

// Colunas da estimativa
const (
	colPageName   = "Page Name/Task Name"
	colDesktop    = "Desktop (Hours)"
	colResponsive = "Responsive (Hours)"
	colTotalRange = "Total Range (Hours)"
)

// Colunas do relatório de KPIs
const (
	colTaskName      = "Task Name"
	colHoursLogged   = "Hours Logged"
	colDueDate       = "Due Date"
	colCompletedDate = "Completed Date"
	colStatus        = "Status"
	colOnTime        = "On Time"
)

var estimateColumns = []ExportColumn{
	{Name: colPageName, Width: 40},
	{Name: colDesktop, Width: 18},
	{Name: colResponsive, Width: 20},
	{Name: colTotalRange, Width: 22},
}

var kpiColumns = []ExportColumn{
	{Name: colTaskName, Width: 35},
	{Name: colHoursLogged, Width: 15},
	{Name: colDueDate, Width: 15},
	{Name: colCompletedDate, Width: 18},
	{Name: colStatus, Width: 15},
	{Name: colOnTime, Width: 12},
}

// estilo do cabeçalho e das linhas de resumo
var emphasis = CellStyle{Bold: true, Horizontal: "left", Vertical: "center"}

// BuildEstimateSheet monta as linhas da estimativa: itens, linha em branco e TOTAL HOURS
func BuildEstimateSheet(doc model.EstimateDocument) ExportSheet {
	title := doc.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultEstimateTitle
	}

	rows := make([]ExportRow, 0, len(doc.Items)+2)
	for _, it := range doc.Items {
		rows = append(rows, ExportRow{
			colPageName:   it.Name,
			colDesktop:    FormatHourRange(it.DesktopMin, it.DesktopMax),
			colResponsive: FormatHourRange(it.MobileMin, it.MobileMax),
			colTotalRange: FormatHourRange(it.DesktopMin+it.MobileMin, it.DesktopMax+it.MobileMax),
		})
	}

	rows = append(rows, blankRow(estimateColumns))

	totals := doc.Totals
	rows = append(rows, ExportRow{
		colPageName:   "TOTAL HOURS",
		colDesktop:    FormatHourRange(totals.DesktopMin, totals.DesktopMax),
		colResponsive: FormatHourRange(totals.MobileMin, totals.MobileMax),
		colTotalRange: FormatHourRange(totals.TotalMin, totals.TotalMax),
	})

	styles := make(map[string]CellStyle)
	emphasizeRow(styles, 1, len(estimateColumns))
	emphasizeRow(styles, len(rows)+1, len(estimateColumns))

	return ExportSheet{
		Kind:      ExportKindEstimate,
		Title:     title,
		SheetName: title,
		Columns:   estimateColumns,
		Rows:      rows,
		Styles:    styles,
	}
}

// BuildKPISheet monta as linhas do relatório: tarefas, linha em branco e dois resumos
func BuildKPISheet(report model.KPIReport) ExportSheet {
	title := report.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultKPISheetTitle
	}

	rows := make([]ExportRow, 0, len(report.Tasks)+3)
	for _, t := range report.Tasks {
		completedDate := t.CompletedDate
		if completedDate == "" {
			completedDate = "N/A"
		}

		status := "In Progress"
		onTime := "N/A"
		if t.IsCompleted {
			status = "Completed"
			onTime = "No"
			if t.IsOnTime {
				onTime = "Yes"
			}
		}

		rows = append(rows, ExportRow{
			colTaskName:      t.TaskName,
			colHoursLogged:   t.HoursLogged,
			colDueDate:       t.DueDate,
			colCompletedDate: completedDate,
			colStatus:        status,
			colOnTime:        onTime,
		})
	}

	rows = append(rows, blankRow(kpiColumns))

	summary := report.Summary
	totalRow := blankRow(kpiColumns)
	totalRow[colTaskName] = "TOTAL HOURS LOGGED"
	totalRow[colHoursLogged] = fmt.Sprintf("%.1f", summary.TotalHours)

	rateRow := blankRow(kpiColumns)
	rateRow[colTaskName] = "ON-TIME COMPLETION RATE"
	rateRow[colHoursLogged] = fmt.Sprintf("%.1f%%", summary.OnTimePercentage)
	rateRow[colStatus] = fmt.Sprintf("%d/%d tasks", summary.CompletedTasks, summary.TotalTasks)

	rows = append(rows, totalRow, rateRow)

	styles := make(map[string]CellStyle)
	emphasizeRow(styles, 1, len(kpiColumns))
	emphasizeRow(styles, len(rows), len(kpiColumns))
	emphasizeRow(styles, len(rows)+1, len(kpiColumns))

	return ExportSheet{
		Kind:      ExportKindKPI,
		Title:     title,
		SheetName: title,
		Columns:   kpiColumns,
		Rows:      rows,
		Styles:    styles,
	}
}

func blankRow(columns []ExportColumn) ExportRow {
	row := make(ExportRow, len(columns))
	for _, c := range columns {
		row[c.Name] = ""
	}
	return row
}

// emphasizeRow marca todas as células da linha excelRow (1-based)
func emphasizeRow(styles map[string]CellStyle, excelRow, numCols int) {
	for col := 1; col <= numCols; col++ {
		cell, _ := excelize.CoordinatesToCellName(col, excelRow)
		styles[cell] = emphasis
	}
}
