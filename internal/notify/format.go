package notify

import (
	"fmt"
	"math"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dailycoach/internal/engine"
	"dailycoach/internal/i18n"
	"dailycoach/internal/models"
)

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// RecommendationLabel returns the localized name of a recommendation
func RecommendationLabel(cat *i18n.Catalog, lang i18n.Language, r models.Recommendation) string {
	return cat.T("rec_"+string(r), lang)
}

// Reason returns the localized reason of the rule that fired.
// Decisions without a known rule keep the engine text.
func Reason(cat *i18n.Catalog, lang i18n.Language, d models.TrainingDecision) string {
	if key := "reason_" + d.Rule; d.Rule != "" && cat.Has(key) {
		return cat.T(key, lang)
	}
	return d.Reason
}

// FocusLabel returns the localized suggested focus
func FocusLabel(cat *i18n.Catalog, lang i18n.Language, focus string) string {
	if key := "suggested_focus_" + focus; cat.Has(key) {
		return cat.T(key, lang)
	}
	return focus
}

// FormatBriefing renders a briefing as a Telegram Markdown message
func FormatBriefing(cat *i18n.Catalog, lang i18n.Language, name string, b engine.Briefing) string {
	var sb strings.Builder

	if name != "" {
		sb.WriteString("*" + escape(cat.Tf("briefing_title", lang, name)) + "*\n\n")
	} else {
		sb.WriteString("*" + escape(cat.T("briefing_title_anonymous", lang)) + "*\n\n")
	}

	d := b.Decision
	sb.WriteString("*" + escape(RecommendationLabel(cat, lang, d.Recommendation)) + "*\n")
	sb.WriteString(escape(Reason(cat, lang, d)) + "\n")
	sb.WriteString(escape(cat.Tf("readiness", lang, d.Readiness)) + "\n")
	if d.ShouldTrain {
		sb.WriteString(escape(cat.Tf("intensity", lang, int(math.Round(d.IntensityModifier*100)))) + "\n")
	}
	if d.SuggestedFocus != "" {
		sb.WriteString(escape(cat.Tf("focus", lang, FocusLabel(cat, lang, d.SuggestedFocus))) + "\n")
	}

	sb.WriteString("\n*" + escape(cat.T("targets_title", lang)) + "*\n")
	m := b.Macros
	sb.WriteString(escape(cat.Tf("targets_macros", lang, m.Calories, m.ProteinGrams, m.CarbsGrams, m.FatGrams)) + "\n")
	sb.WriteString(escape(cat.Tf("targets_water", lang, b.Hydration.DailyLiters)) + "\n")

	sb.WriteString("\n*" + escape(cat.T("priorities_title", lang)) + "*\n")
	for _, p := range b.Priorities {
		mark := "▫️"
		if p.Completed {
			mark = "✅"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s\n", mark, p.Order, escape(p.Title)))
	}

	if len(b.Alerts) > 0 {
		sb.WriteString("\n*" + escape(cat.T("alerts_title", lang)) + "*\n")
		for _, a := range b.Alerts {
			sb.WriteString(fmt.Sprintf("%s *%s*\n%s\n", alertMark(a.Priority), escape(a.Title), escape(a.Description)))
		}
	}

	return sb.String()
}

func alertMark(p models.AlertPriority) string {
	switch p {
	case models.PriorityHigh:
		return "🔴"
	case models.PriorityMedium:
		return "🟠"
	default:
		return "🟢"
	}
}
