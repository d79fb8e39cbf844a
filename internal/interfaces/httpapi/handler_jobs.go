package httpapi

import "net/http"

func (h *Handler) RunFetchScheduleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFetchScheduleJob")
	defer span.End()

	run, err := h.scheduleService.RefreshUpcoming(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "fetch schedule job failed", "season", run.Season, "week", run.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "fetch schedule job completed",
		"season", run.Season,
		"week", run.Week,
		"games", run.Games,
		"skipped", run.Skipped,
	)
	writeSuccess(ctx, w, http.StatusOK, cronRunToDTO(run))
}

func (h *Handler) RunResolveResultsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResolveResultsJob")
	defer span.End()

	run, err := h.scheduleService.ResolveCurrent(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve results job failed", "season", run.Season, "week", run.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "resolve results job completed",
		"season", run.Season,
		"week", run.Week,
		"games", run.Games,
	)
	writeSuccess(ctx, w, http.StatusOK, cronRunToDTO(run))
}
