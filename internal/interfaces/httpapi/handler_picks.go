package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	"github.com/riskibarqy/weekly-pickem/internal/usecase"
)

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	seasonYear, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPicksRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selections := make([]pick.Selection, 0, len(req.Picks))
	for _, item := range req.Picks {
		selections = append(selections, pick.Selection{GameID: item.GameID, PickedTeam: item.PickedTeam})
	}

	picks, err := h.pickService.Submit(ctx, usecase.SubmitPicksInput{
		UserID: principal.UserID,
		Season: seasonYear,
		Week:   week,
		Picks:  selections,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "user_id", principal.UserID, "season", seasonYear, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, picksToDTO(picks))
}

func (h *Handler) ListMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	seasonYear, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.pickService.ListMine(ctx, principal.UserID, seasonYear, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list my picks failed", "user_id", principal.UserID, "season", seasonYear, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picksToDTO(picks))
}

func (h *Handler) ListWeekPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	seasonYear, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	grouped, err := h.pickService.ListAll(ctx, principal.UserID, seasonYear, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week picks failed", "user_id", principal.UserID, "season", seasonYear, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]userPicksDTO, 0, len(grouped))
	for _, g := range grouped {
		items = append(items, userPicksDTO{
			UserID: g.User.ID,
			User:   g.User.Name,
			Picks:  picksToDTO(g.Picks),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
