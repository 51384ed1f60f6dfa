package api

import (
	"net/http"

	"visit-planner-service/internal/api/handlers"
	"visit-planner-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// cache and store may be nil; the planner then runs uncached and unaudited.
func NewRouter(repo ports.VisitRepository, cache ports.PlanCache, store ports.PlanStore) http.Handler {
	mux := http.NewServeMux()

	visitHandler := &handlers.VisitHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{
		Repo:  repo,
		Cache: cache,
		Store: store,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/visits", visitHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)

	return loggingMiddleware(mux)
}
