package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsPath string, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler == nil {
		return
	}

	mux.Handle("GET "+metricsRoute(metricsPath), metricsHandler)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/week", handler.GetCurrentWeek)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/users", handler.ListRoster)
	mux.HandleFunc("GET /v1/seasons/{season}/weeks/{week}/games", handler.ListWeekGames)
	mux.HandleFunc("GET /v1/odds", handler.GetTitleOdds)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	cookieName := handler.cookie.Name
	sessions := handler.sessions

	mux.HandleFunc("POST /v1/session", handler.CreateSession)
	mux.HandleFunc("DELETE /v1/session", handler.DeleteSession)
	mux.Handle("GET /v1/session", RequireSession(sessions, cookieName, http.HandlerFunc(handler.GetSession)))

	mux.Handle("GET /v1/seasons/{season}/weeks/{week}/picks/me", RequireSession(sessions, cookieName, http.HandlerFunc(handler.ListMyPicks)))
	mux.Handle("POST /v1/seasons/{season}/weeks/{week}/picks", RequireSession(sessions, cookieName, http.HandlerFunc(handler.SubmitPicks)))
	mux.Handle("GET /v1/seasons/{season}/weeks/{week}/picks", RequireSession(sessions, cookieName, http.HandlerFunc(handler.ListWeekPicks)))
	mux.Handle("GET /v1/seasons/{season}/scoreboard", RequireSession(sessions, cookieName, http.HandlerFunc(handler.GetScoreboard)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, passcode string) {
	mux.Handle("POST /v1/admin/games/{gameID}/result", RequireAdmin(passcode, http.HandlerFunc(handler.SetGameResult)))
	mux.Handle("POST /v1/admin/picks/manual", RequireAdmin(passcode, http.HandlerFunc(handler.ImportManualPicks)))
	mux.Handle("POST /v1/admin/picks/reset", RequireAdmin(passcode, http.HandlerFunc(handler.ResetWeekPicks)))
	mux.Handle("POST /v1/admin/weeks", RequireAdmin(passcode, http.HandlerFunc(handler.CreateWeek)))
	mux.Handle("POST /v1/admin/schedule/fetch-week", RequireAdmin(passcode, http.HandlerFunc(handler.FetchWeekSchedule)))
	mux.Handle("POST /v1/admin/schedule/fetch-season", RequireAdmin(passcode, http.HandlerFunc(handler.FetchSeasonSchedule)))
	mux.Handle("POST /v1/admin/scores/recalculate", RequireAdmin(passcode, http.HandlerFunc(handler.RecalculateScores)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, cronSecret string) {
	mux.Handle("POST /v1/internal/jobs/fetch-schedule", RequireCronSecret(cronSecret, http.HandlerFunc(handler.RunFetchScheduleJob)))
	mux.Handle("POST /v1/internal/jobs/resolve-results", RequireCronSecret(cronSecret, http.HandlerFunc(handler.RunResolveResultsJob)))
}
