package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)

	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/upcoming", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/predictions", handler.ListMatchPredictions)
	mux.HandleFunc("GET /v1/matches/{matchID}/settlement", handler.GetMatchSettlement)

	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/stats", handler.GetScorerStats)
	mux.HandleFunc("GET /v1/stats/summary", handler.GetTournamentSummary)
	mux.HandleFunc("GET /v1/overview", handler.GetOverview)
	mux.HandleFunc("GET /v1/fan-favourites", handler.ListFanFavourites)

	mux.HandleFunc("GET /v1/predictions", handler.ListPredictions)
	mux.HandleFunc("POST /v1/predictions", handler.SubmitPrediction)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/{userName}", handler.GetUserStanding)

	mux.HandleFunc("POST /v1/admin/login", handler.AdminLogin)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier AdminVerifier) {
	mux.Handle("PUT /v1/admin/matches/{matchID}/status", RequireAdmin(verifier, http.HandlerFunc(handler.UpdateMatchStatus)))
	mux.Handle("PUT /v1/admin/matches/{matchID}/teams", RequireAdmin(verifier, http.HandlerFunc(handler.AssignMatchTeams)))
	mux.Handle("POST /v1/admin/matches/{matchID}/goals", RequireAdmin(verifier, http.HandlerFunc(handler.AddGoal)))
	mux.Handle("DELETE /v1/admin/matches/{matchID}/goals/last", RequireAdmin(verifier, http.HandlerFunc(handler.RemoveLastGoal)))
	mux.Handle("POST /v1/admin/matches/{matchID}/reset", RequireAdmin(verifier, http.HandlerFunc(handler.ResetMatch)))
	mux.Handle("PUT /v1/admin/matches/{matchID}/man-of-the-match", RequireAdmin(verifier, http.HandlerFunc(handler.PublishManOfTheMatch)))
	mux.Handle("PUT /v1/admin/matches/{matchID}/predictions-lock", RequireAdmin(verifier, http.HandlerFunc(handler.SetPredictionsLock)))

	mux.Handle("DELETE /v1/admin/predictions/{predictionID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeletePrediction)))
	mux.Handle("DELETE /v1/admin/predictions", RequireAdmin(verifier, http.HandlerFunc(handler.DeleteAllPredictions)))

	mux.Handle("POST /v1/admin/leaderboard/refresh", RequireAdmin(verifier, http.HandlerFunc(handler.RefreshLeaderboard)))
	mux.Handle("POST /v1/admin/backups", RequireAdmin(verifier, http.HandlerFunc(handler.CreateBackup)))
}
