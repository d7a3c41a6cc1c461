package api

import (
	"context"
	"delivery-planner/internal/api/handlers"
	"delivery-planner/internal/metrics"
	"delivery-planner/internal/policy"
	"delivery-planner/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the adapters the API is composed from.
type Dependencies struct {
	Repo     ports.PackageRepository
	Matrix   ports.DistanceMatrixSource
	Plans    ports.PlanStore
	Rules    *policy.RuleSet
	Defaults handlers.PlanDefaults
	// Ping probes the database for /health; nil skips the probe.
	Ping     func(ctx context.Context) error
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Dependencies) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	pkgHandler := &handlers.PackageHandler{Repo: deps.Repo, Rules: deps.Rules}
	planHandler := &handlers.PlanHandler{
		Repo:     deps.Repo,
		Matrix:   deps.Matrix,
		Store:    deps.Plans,
		Rules:    deps.Rules,
		Defaults: deps.Defaults,
	}

	healthHandler := &handlers.HealthHandler{Ping: deps.Ping}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/packages", pkgHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/plans/", planHandler.Get)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
