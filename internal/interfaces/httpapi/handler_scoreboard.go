package httpapi

import "net/http"

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	seasonYear, err := pathInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.scoringService.Scoreboard(ctx, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "scoreboard failed", "season", seasonYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoreboardRowDTO, 0, len(rows))
	for _, row := range rows {
		weekly := make([]weeklyScoreDTO, 0, len(row.Weekly))
		for _, ws := range row.Weekly {
			weekly = append(weekly, weeklyScoreDTO{Week: ws.Week, Points: ws.Points})
		}
		items = append(items, scoreboardRowDTO{
			UserID: row.User.ID,
			Name:   row.User.Name,
			Total:  row.Total,
			Weekly: weekly,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTitleOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTitleOdds")
	defer span.End()

	seasonYear, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := queryInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.oddsService.TitleOdds(ctx, seasonYear, week)
	if err != nil {
		h.logger.WarnContext(ctx, "title odds failed", "season", seasonYear, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	entries := make([]oddsEntryDTO, 0, len(result.Odds))
	for _, e := range result.Odds {
		entries = append(entries, oddsEntryDTO{
			UserID:      e.UserID,
			Name:        e.Name,
			Points:      e.Points,
			Margin:      e.Margin,
			OddsPercent: e.OddsPercent,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, titleOddsDTO{
		Season:          result.Season,
		Week:            result.Week,
		RemainingWeeks:  result.RemainingWeeks,
		AvgPicksPerWeek: result.AvgPicksPerWeek,
		MaxSwing:        result.MaxSwing,
		Odds:            entries,
	})
}
