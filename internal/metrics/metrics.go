package metrics

import (
	"delivery-planner/internal/domain"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// PlanRuns counts planning runs by outcome (ok, capacity_exceeded, constraint_conflict, not_found, error)
	PlanRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plan_runs_total", Help: "Planning runs by outcome."},
		[]string{"outcome"},
	)
	// PackagesLoaded counts packages placed on each truck
	PackagesLoaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "packages_loaded_total", Help: "Packages loaded per truck."},
		[]string{"truck"},
	)
	// TwoOptSwaps counts improving edge swaps applied by the route optimizer
	TwoOptSwaps = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "two_opt_swaps_total", Help: "Improving 2-opt swaps applied."},
	)
	// TwoOptPasses records how many full scans each route needed
	TwoOptPasses = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "two_opt_passes", Help: "2-opt passes per optimized route.", Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 50, 100, 1000}},
	)
	// TwoOptUnconverged counts routes cut off by the pass cap
	TwoOptUnconverged = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "two_opt_unconverged_total", Help: "Routes that hit the 2-opt pass cap."},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(PlanRuns)
		Registry.MustRegister(PackagesLoaded)
		Registry.MustRegister(TwoOptSwaps)
		Registry.MustRegister(TwoOptPasses)
		Registry.MustRegister(TwoOptUnconverged)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

// ObserveTruckPlan records loading and optimizer counters for one truck.
func ObserveTruckPlan(p domain.TruckPlan) {
	PackagesLoaded.WithLabelValues(strconv.Itoa(p.TruckID)).Add(float64(len(p.Manifest)))
	TwoOptSwaps.Add(float64(p.Swaps))
	TwoOptPasses.Observe(float64(p.Passes))
	if !p.Converged {
		TwoOptUnconverged.Inc()
	}
}
