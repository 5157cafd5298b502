// Package export writes briefings to Excel workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"dailycoach/internal/engine"
	"dailycoach/internal/i18n"
	"dailycoach/internal/notify"
)

// AlertsSheet is the name of the sheet with alert rows
const AlertsSheet = "Alerts"

type row struct {
	section string
	item    string
	value   interface{}
}

func briefingRows(b engine.Briefing, cat *i18n.Catalog, lang i18n.Language) []row {
	t := func(key string) string { return cat.T(key, lang) }
	decision, targets := t("section_decision"), t("section_targets")

	d := b.Decision
	rows := []row{
		{decision, t("item_recommendation"), notify.RecommendationLabel(cat, lang, d.Recommendation)},
		{decision, t("item_reason"), notify.Reason(cat, lang, d)},
		{decision, t("item_readiness"), d.Readiness},
		{decision, t("item_intensity"), d.IntensityModifier},
	}
	if d.SuggestedFocus != "" {
		rows = append(rows, row{decision, t("item_focus"), notify.FocusLabel(cat, lang, d.SuggestedFocus)})
	}
	rows = append(rows,
		row{targets, t("item_calories"), b.Macros.Calories},
		row{targets, t("item_protein"), b.Macros.ProteinGrams},
		row{targets, t("item_carbs"), b.Macros.CarbsGrams},
		row{targets, t("item_fat"), b.Macros.FatGrams},
		row{targets, t("item_water"), b.Hydration.DailyLiters},
	)
	for _, p := range b.Priorities {
		title := fmt.Sprintf("%d. %s", p.Order, p.Title)
		if p.Completed {
			title += " ✓"
		}
		rows = append(rows, row{t("section_priorities"), title, p.Description})
	}
	for _, a := range b.Adjustments {
		rows = append(rows, row{t("section_clamped"), a.Field, fmt.Sprintf("%g → %g", a.From, a.To)})
	}
	return rows
}

// Workbook builds a workbook with the briefing and its alerts
func Workbook(b engine.Briefing, cat *i18n.Catalog, lang i18n.Language) (*excelize.File, error) {
	if cat == nil {
		cat = i18n.Default()
	}

	f := excelize.NewFile()
	sheet := cat.T("sheet_title", lang)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DEEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	// Лист сводки
	headers := []string{cat.T("col_section", lang), cat.T("col_item", lang), cat.T("col_value", lang)}
	widths := []float64{14, 36, 60}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, widths[i])
	}
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetCellValue(sheet, "E1", b.GeneratedAt.Format("02.01.2006 15:04"))

	rows := briefingRows(b, cat, lang)
	for i, r := range rows {
		n := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", n), r.section)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", n), r.item)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", n), r.value)
	}
	if len(rows) > 0 {
		f.SetCellStyle(sheet, "A2", fmt.Sprintf("A%d", len(rows)+1), sectionStyle)
	}

	// Лист алертов
	if _, err := f.NewSheet(AlertsSheet); err != nil {
		return nil, err
	}
	alertHeaders := []string{"col_priority", "col_type", "col_title", "col_description", "col_action", "col_key"}
	for i, h := range alertHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(AlertsSheet, cell, cat.T(h, lang))
	}
	f.SetCellStyle(AlertsSheet, "A1", "F1", headerStyle)
	f.SetColWidth(AlertsSheet, "C", "C", 32)
	f.SetColWidth(AlertsSheet, "D", "D", 70)

	for i, a := range b.Alerts {
		n := i + 2
		values := []interface{}{string(a.Priority), string(a.Type), a.Title, a.Description, a.ActionLabel, a.Key}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, n)
			f.SetCellValue(AlertsSheet, cell, v)
		}
		if color, ok := priorityFill[string(a.Priority)]; ok {
			style, err := f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			})
			if err == nil {
				f.SetCellStyle(AlertsSheet, fmt.Sprintf("A%d", n), fmt.Sprintf("A%d", n), style)
			}
		}
	}

	return f, nil
}

var priorityFill = map[string]string{
	"high":   "#FFC7CE",
	"medium": "#FFEB9C",
	"low":    "#C6EFCE",
}

// SaveBriefing writes the workbook to path
func SaveBriefing(path string, b engine.Briefing, cat *i18n.Catalog, lang i18n.Language) error {
	f, err := Workbook(b, cat, lang)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("ошибка сохранения сводки: %w", err)
	}
	return nil
}
