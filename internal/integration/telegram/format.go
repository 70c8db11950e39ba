package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"

	"github.com/okr-bot/backend/internal/application/usecase/keyresult"
	"github.com/okr-bot/backend/internal/application/usecase/objective"
	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/application/usecase/search"
	"github.com/okr-bot/backend/internal/domain/entity"
)

// shortIDLength is the number of id characters shown in chat output.
const shortIDLength = 8

// ShortID returns the display prefix of an id. Any unique prefix is accepted back as input.
func ShortID(id uuid.UUID) string {
	return id.String()[:shortIDLength]
}

// ProgressEmoji maps a progress percentage to a traffic light.
func ProgressEmoji(progress int) string {
	switch {
	case progress >= 75:
		return "🟢"
	case progress >= 50:
		return "🟡"
	default:
		return "🔴"
	}
}

func recommendationEmoji(t report.RecommendationType) string {
	switch t {
	case report.RecommendationUrgent:
		return "🚨"
	case report.RecommendationWarning:
		return "⚠️"
	case report.RecommendationSuccess:
		return "✅"
	default:
		return "ℹ️"
	}
}

func esc(s string) string {
	return html.EscapeString(s)
}

func formatUsers(users []string) string {
	if len(users) == 0 {
		return "None"
	}
	mentions := make([]string, len(users))
	for i, user := range users {
		mentions[i] = "@" + esc(user)
	}
	return strings.Join(mentions, ", ")
}

func formatObjective(o *entity.Objective, headline string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", headline)
	fmt.Fprintf(&b, "🎯 <b>ID:</b> <code>%s</code>\n", ShortID(o.ID))
	fmt.Fprintf(&b, "📋 <b>Title:</b> %s\n", esc(o.Title))
	if o.Description != "" {
		fmt.Fprintf(&b, "📝 <b>Description:</b> %s\n", esc(o.Description))
	}
	fmt.Fprintf(&b, "👤 <b>Owner:</b> @%s\n", esc(o.Owner))
	fmt.Fprintf(&b, "👥 <b>Assignees:</b> %s\n", formatUsers(o.Assignees))
	fmt.Fprintf(&b, "📅 <b>Due Date:</b> %s\n", entity.FormatDueDate(o.DueDate))
	fmt.Fprintf(&b, "📊 <b>Status:</b> %s | <b>Priority:</b> %s\n", o.Status, o.Priority)
	fmt.Fprintf(&b, "%s <b>Progress:</b> %d%%\n", ProgressEmoji(o.Progress), o.Progress)
	return b.String()
}

func formatObjectiveList(objectives []*entity.Objective) string {
	if len(objectives) == 0 {
		return "📭 No objectives found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>🎯 Objectives (%d)</b>\n\n", len(objectives))
	for _, o := range objectives {
		fmt.Fprintf(&b, "%s <code>%s</code> <b>%s</b> (%d%%)\n", ProgressEmoji(o.Progress), ShortID(o.ID), esc(o.Title), o.Progress)
		fmt.Fprintf(&b, "   👤 @%s | 📅 %s | %s\n", esc(o.Owner), entity.FormatDueDate(o.DueDate), o.Status)
	}
	return b.String()
}

func formatObjectiveStats(stats *objective.GetObjectiveStatsOutput) string {
	var b strings.Builder
	b.WriteString(formatObjective(stats.Objective, "🎯 Objective"))
	fmt.Fprintf(&b, "🔑 <b>Key Results:</b> %d/%d completed\n", stats.CompletedKeyResults, stats.KeyResultsCount)
	switch {
	case stats.IsOverdue:
		b.WriteString("⏰ <b>Overdue</b>\n")
	case stats.DaysUntilDue != nil:
		fmt.Fprintf(&b, "⏳ %d days until due\n", *stats.DaysUntilDue)
	}
	if len(stats.KeyResults) > 0 {
		b.WriteString("\n")
		b.WriteString(formatKeyResultList(stats.KeyResults))
	}
	return b.String()
}

func formatKeyResult(kr *entity.KeyResult, o *entity.Objective, headline string) string {
	progress := kr.Progress()

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", headline)
	fmt.Fprintf(&b, "🔑 <b>ID:</b> <code>%s</code>\n", ShortID(kr.ID))
	if o != nil {
		fmt.Fprintf(&b, "🎯 <b>Objective:</b> %s\n", esc(o.Title))
	}
	fmt.Fprintf(&b, "📋 <b>Title:</b> %s\n", esc(kr.Title))
	if kr.Description != "" {
		fmt.Fprintf(&b, "📝 <b>Description:</b> %s\n", esc(kr.Description))
	}
	fmt.Fprintf(&b, "👤 <b>Owner:</b> @%s\n", esc(kr.Owner))
	fmt.Fprintf(&b, "📈 <b>Progress:</b> %s/%s %s (%d%%) %s\n",
		kr.Current.String(), kr.Target.String(), esc(kr.Unit), progress, ProgressEmoji(progress))
	fmt.Fprintf(&b, "📊 <b>Status:</b> %s\n", kr.Status)
	if next := kr.NextMilestone(); next != nil {
		fmt.Fprintf(&b, "🏁 <b>Next milestone:</b> %s (%s)\n", esc(next.Description), next.Value.String())
	}
	return b.String()
}

func formatKeyResultList(keyResults []*entity.KeyResult) string {
	if len(keyResults) == 0 {
		return "📭 No key results found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>🔑 Key Results (%d)</b>\n\n", len(keyResults))
	for _, kr := range keyResults {
		progress := kr.Progress()
		fmt.Fprintf(&b, "%s <code>%s</code> <b>%s</b> (%d%%)\n", ProgressEmoji(progress), ShortID(kr.ID), esc(kr.Title), progress)
		fmt.Fprintf(&b, "   📈 %s/%s %s | 👤 @%s\n", kr.Current.String(), kr.Target.String(), esc(kr.Unit), esc(kr.Owner))
	}
	return b.String()
}

func formatProgressUpdate(out *keyresult.UpdateProgressOutput) string {
	kr := out.KeyResult
	progress := kr.Progress()
	change := progress - out.PreviousProgress

	arrow := "➡️"
	if change > 0 {
		arrow = "📈"
	} else if change < 0 {
		arrow = "📉"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>Progress Updated!</b>\n", arrow)
	fmt.Fprintf(&b, "🔑 <b>Key Result:</b> %s\n", esc(kr.Title))
	fmt.Fprintf(&b, "📊 <b>Progress:</b> %d%% → %d%% (%+d%%)\n", out.PreviousProgress, progress, change)
	fmt.Fprintf(&b, "📈 <b>Current:</b> %s/%s %s\n", kr.Current.String(), kr.Target.String(), esc(kr.Unit))

	switch kr.ProgressStatus() {
	case entity.ProgressStatusCompleted:
		b.WriteString("🎉 <b>COMPLETED!</b> Target reached!\n")
	case entity.ProgressStatusOnTrack:
		b.WriteString("🟢 <b>On Track</b> - Great progress!\n")
	case entity.ProgressStatusAtRisk:
		b.WriteString("🟡 <b>At Risk</b> - May need attention\n")
	default:
		b.WriteString("🔴 <b>Behind</b> - Needs immediate attention\n")
	}
	if out.Objective != nil {
		fmt.Fprintf(&b, "🎯 <b>Objective progress:</b> %d%%\n", out.Objective.Progress)
	}
	return b.String()
}

// FormatOverallReport renders an overall report as a chat message:
// summary, top five objectives and up to three recommendations.
func FormatOverallReport(r *report.OverallReportOutput) string {
	var b strings.Builder
	b.WriteString("📊 <b>OKR REPORT</b>\n")
	fmt.Fprintf(&b, "📅 Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02"))

	if r.Empty {
		b.WriteString(esc(r.Message))
		return b.String()
	}

	if s := r.Summary; s != nil {
		b.WriteString("📈 <b>SUMMARY:</b>\n")
		fmt.Fprintf(&b, "• Objectives: %d/%d active (%d%% completed)\n", s.ActiveObjectives, s.TotalObjectives, s.ObjectiveCompletionRate)
		fmt.Fprintf(&b, "• Key Results: %d/%d active (%d%% completed)\n", s.ActiveKeyResults, s.TotalKeyResults, s.KeyResultCompletionRate)
		fmt.Fprintf(&b, "• Average Progress: %d%%\n", s.AverageObjectiveProgress)
		fmt.Fprintf(&b, "• Health Score: %d/100\n\n", s.HealthScore)
	}

	if len(r.Details) > 0 {
		b.WriteString("🎯 <b>TOP OBJECTIVES:</b>\n")
		for _, entry := range r.Details[:min(5, len(r.Details))] {
			fmt.Fprintf(&b, "%s %s (%d%%)\n", ProgressEmoji(entry.Objective.Progress), esc(entry.Objective.Title), entry.Objective.Progress)
		}
		b.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("💡 <b>RECOMMENDATIONS:</b>\n")
		for _, rec := range r.Recommendations[:min(3, len(r.Recommendations))] {
			fmt.Fprintf(&b, "%s %s: %s\n", recommendationEmoji(rec.Type), esc(rec.Title), esc(rec.Message))
		}
	}

	return b.String()
}

func formatTeamReport(r *report.TeamReportOutput) string {
	s := r.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "👤 <b>OKR REPORT for @%s</b>\n", esc(r.Owner))
	fmt.Fprintf(&b, "📅 Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "• Objectives: %d/%d active (%d%% completed)\n", s.ActiveObjectives, s.TotalObjectives, s.ObjectiveCompletionRate)
	fmt.Fprintf(&b, "• Key Results: %d/%d active (%d%% completed)\n", s.ActiveKeyResults, s.TotalKeyResults, s.KeyResultCompletionRate)
	fmt.Fprintf(&b, "• Average Progress: %d%%\n", s.AverageObjectiveProgress)
	fmt.Fprintf(&b, "• Health Score: %d/100\n", s.HealthScore)

	if len(r.UpcomingDeadlines) > 0 {
		b.WriteString("\n⏳ <b>UPCOMING DEADLINES:</b>\n")
		for _, o := range r.UpcomingDeadlines {
			fmt.Fprintf(&b, "• %s (%s)\n", esc(o.Title), entity.FormatDueDate(o.DueDate))
		}
	}
	if len(r.AtRiskItems) > 0 {
		b.WriteString("\n⚠️ <b>AT RISK:</b>\n")
		for _, kr := range r.AtRiskItems {
			fmt.Fprintf(&b, "• %s (%d%%)\n", esc(kr.Title), kr.Progress())
		}
	}
	return b.String()
}

func formatSearch(out *search.SearchOutput) string {
	if len(out.Objectives) == 0 && len(out.KeyResults) == 0 {
		return fmt.Sprintf("🔍 No results for \"%s\".", esc(out.Query))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 <b>Results for \"%s\"</b>\n\n", esc(out.Query))
	if out.Scope.IncludesObjectives() && len(out.Objectives) > 0 {
		b.WriteString(formatObjectiveList(out.Objectives))
		b.WriteString("\n")
	}
	if out.Scope.IncludesKeyResults() && len(out.KeyResults) > 0 {
		b.WriteString(formatKeyResultList(out.KeyResults))
	}
	return b.String()
}

const helpText = `<b>🤖 OKR Bot</b>

<b>Objectives</b>
/obj_create "Title" "Description" [@owner] [YYYY-MM-DD]
/obj_new - create with a step by step form
/obj_list [@owner] [status]
/obj_show &lt;id&gt;
/obj_update &lt;id&gt; field="value" ...
/obj_status &lt;id&gt; &lt;status&gt;
/obj_assign &lt;id&gt; @user
/obj_unassign &lt;id&gt; @user
/obj_delete &lt;id&gt;

<b>Key Results</b>
/kr_create &lt;objId&gt; "Title" &lt;target&gt; [unit]
/kr_new &lt;objId&gt; - create with a step by step form
/kr_list &lt;objId&gt;
/kr_update &lt;id&gt; field="value" ...
/kr_progress &lt;id&gt; &lt;value&gt; [absolute|percentage|increment]
/kr_milestone &lt;id&gt; &lt;value&gt; "Description" [YYYY-MM-DD]
/kr_delete &lt;id&gt;

<b>Reports</b>
/okr_report [@owner]
/okr_search &lt;query&gt;

/cancel - abort the current form`
