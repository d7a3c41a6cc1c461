package handlers

import (
	"context"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"delivery-planner/internal/ports"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// statusOf maps domain failures onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ports.ErrPlanNotFound),
		errors.Is(err, domain.ErrPackageNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrConstraintConflict),
		errors.Is(err, domain.ErrTruckNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// outcomeOf is the plan_runs_total label for a planning result.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrConstraintConflict),
		errors.Is(err, domain.ErrTruckNotFound):
		return "constraint_conflict"
	case errors.Is(err, domain.ErrPackageNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// writeServiceError logs err and replies with its mapped status. Messages of
// client errors are passed through; server errors are not.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusOf(err)
	log.Printf("%s failed: req_id=%s status=%d err=%v", op, obs.RequestID(r.Context()), status, err)

	if status >= http.StatusInternalServerError {
		writeError(w, r, status, "internal server error")
		return
	}
	writeError(w, r, status, err.Error())
}
