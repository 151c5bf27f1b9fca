package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerProjectionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sources", handler.ListSources)
	mux.HandleFunc("GET /v1/projections", handler.ListProjections)
	mux.HandleFunc("GET /v1/projections/top/{position}", handler.TopProjectionsByPosition)
	mux.HandleFunc("GET /v1/projections/availability", handler.ProjectionAvailability)
}

func registerScoringConfigRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.HandleFunc("GET /v1/scoring-configs", handler.ListScoringConfigs)
	mux.HandleFunc("GET /v1/scoring-configs/{name}", handler.GetScoringConfig)
	mux.Handle("PUT /v1/scoring-configs/{name}", guardMutation(internalJobToken, handler.UpsertScoringConfig))
}

func registerImportRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/imports/weekly", guardMutation(internalJobToken, handler.ImportWeekly))
	mux.Handle("POST /v1/imports/season", guardMutation(internalJobToken, handler.ImportSeason))
}

func registerJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.HandleFunc("GET /v1/jobs/status", handler.JobStatus)
	mux.Handle("POST /v1/jobs/trigger", guardMutation(internalJobToken, handler.TriggerJob))
	mux.HandleFunc("GET /v1/jobs/history", handler.JobHistory)
	mux.HandleFunc("GET /v1/jobs/history/{executionID}", handler.JobExecution)
}

// guardMutation requires the internal job token only when one is configured.
func guardMutation(internalJobToken string, fn http.HandlerFunc) http.Handler {
	if internalJobToken == "" {
		return fn
	}
	return RequireInternalJobToken(internalJobToken, fn)
}
