package telegram

import (
	"context"
	"strings"

	"github.com/okr-bot/backend/internal/application/usecase/report"
	"github.com/okr-bot/backend/internal/application/usecase/search"
)

// /okr_report [@owner]
func (h *Handler) report(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) > 1 {
		return "", usageError("Usage: /okr_report [@owner]")
	}

	if len(args) == 1 {
		out, err := h.services.TeamReport.Execute(ctx, report.TeamReportInput{Owner: args[0]})
		if err != nil {
			return "", err
		}
		return formatTeamReport(out), nil
	}

	out, err := h.services.OverallReport.Execute(ctx, report.OverallReportInput{})
	if err != nil {
		return "", err
	}
	return FormatOverallReport(out), nil
}

// /okr_search <query>
func (h *Handler) search(ctx context.Context, _ Message, args []string) (string, error) {
	if len(args) == 0 {
		return "", usageError("Usage: /okr_search <query>")
	}

	out, err := h.services.Search.Execute(ctx, search.SearchInput{Query: strings.Join(args, " ")})
	if err != nil {
		return "", err
	}
	return formatSearch(out), nil
}
