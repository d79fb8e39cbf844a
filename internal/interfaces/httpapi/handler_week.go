package httpapi

import (
	"net/http"

	"github.com/riskibarqy/weekly-pickem/internal/domain/team"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeek")
	defer span.End()

	current := h.weekService.CurrentWithLock(ctx)
	writeSuccess(ctx, w, http.StatusOK, weekDTO{
		Season:   current.Season,
		Week:     current.Week,
		LockTime: current.LockTime,
		Locked:   current.Locked,
	})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams := team.All()
	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListWeekGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekGames")
	defer span.End()

	seasonYear, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.scheduleService.ListWeek(ctx, seasonYear, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week games failed", "season", seasonYear, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
