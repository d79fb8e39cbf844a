package httpapi

import (
	"net/http"

	"github.com/riskibarqy/weekly-pickem/internal/usecase"
)

func (h *Handler) SetGameResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetGameResult")
	defer span.End()

	gameID, err := pathInt64(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.scheduleService.SetResult(ctx, usecase.SetResultInput{
		GameID:     gameID,
		WinnerTeam: req.WinnerTeam,
		Status:     req.Status,
		Season:     req.Season,
		Week:       req.Week,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set game result failed", "game_id", gameID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, setResultDTO{
		Game:   gameToDTO(out.Game),
		Scores: optionalScoreSummary(out.Scores),
	})
}

func (h *Handler) ImportManualPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportManualPicks")
	defer span.End()

	var req manualPicksRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	overwrite := true
	if req.Overwrite != nil {
		overwrite = *req.Overwrite
	}
	items := make([]usecase.ManualPickItem, 0, len(req.Picks))
	for _, p := range req.Picks {
		items = append(items, p.toItem())
	}

	result, err := h.manualPickService.Import(ctx, usecase.ManualPicksInput{
		Season:    req.Season,
		Week:      req.Week,
		UserName:  req.User,
		Picks:     items,
		Overwrite: overwrite,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "manual picks failed", "user", req.User, "season", req.Season, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	issues := make([]pickIssueDTO, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, pickIssueDTO{
			Team:   issue.Input.Team,
			GameID: issue.Input.GameID,
			Reason: issue.Reason,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, manualPicksResultDTO{
		User:        result.User,
		Season:      result.Season,
		Week:        result.Week,
		Inserted:    result.Inserted,
		Overwritten: result.Overwritten,
		Issues:      issues,
	})
}

func (h *Handler) ResetWeekPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetWeekPicks")
	defer span.End()

	var req seasonWeekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.manualPickService.ResetWeek(ctx, req.Season, req.Week)
	if err != nil {
		h.logger.WarnContext(ctx, "reset week failed", "season", req.Season, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resetWeekDTO{
		Season:        result.Season,
		Week:          result.Week,
		PicksDeleted:  result.PicksDeleted,
		ScoresDeleted: result.ScoresDeleted,
	})
}

func (h *Handler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateWeek")
	defer span.End()

	var req createWeekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	games := make([]usecase.ManualGame, 0, len(req.Games))
	for _, g := range req.Games {
		games = append(games, usecase.ManualGame{
			ID:        g.ID,
			HomeTeam:  g.HomeTeam,
			AwayTeam:  g.AwayTeam,
			StartTime: g.StartTime,
		})
	}

	upserted, err := h.scheduleService.CreateWeek(ctx, usecase.CreateWeekInput{
		Season: req.Season,
		Week:   req.Week,
		Games:  games,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create week failed", "season", req.Season, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, createWeekDTO{Season: req.Season, Week: req.Week, Upserted: upserted})
}

func (h *Handler) FetchWeekSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FetchWeekSchedule")
	defer span.End()

	var req seasonWeekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scheduleService.FetchWeek(ctx, req.Season, req.Week)
	if err != nil {
		h.logger.WarnContext(ctx, "fetch week schedule failed", "season", req.Season, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekFetchToDTO(result))
}

func (h *Handler) FetchSeasonSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FetchSeasonSchedule")
	defer span.End()

	var req seasonWeeksRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scheduleService.FetchSeason(ctx, req.Season, req.Weeks)
	if err != nil {
		h.logger.WarnContext(ctx, "fetch season schedule failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	weeks := make([]weekFetchDTO, 0, len(result.Weeks))
	for _, wk := range result.Weeks {
		weeks = append(weeks, weekFetchToDTO(wk))
	}
	writeSuccess(ctx, w, http.StatusOK, seasonFetchDTO{
		Season:   result.Season,
		Workers:  result.Workers,
		Upserted: result.Upserted,
		Failed:   result.Failed,
		Weeks:    weeks,
	})
}

func (h *Handler) RecalculateScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateScores")
	defer span.End()

	var req seasonWeeksRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summaries, err := h.scoringService.RecalculateSeason(ctx, req.Season, req.Weeks)
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate scores failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoreSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, scoreSummaryToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
