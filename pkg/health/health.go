package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tair/market/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency
type CheckFunc func(ctx context.Context) error

// DependencyHealth is the result of a single probe
type DependencyHealth struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Critical  bool          `json:"critical"`
	Timestamp time.Time     `json:"timestamp"`
}

// Report is the body served on /health
type Report struct {
	OK           bool               `json:"ok"`
	Status       string             `json:"status"`
	Dependencies []DependencyHealth `json:"dependencies"`
	Uptime       float64            `json:"uptime_seconds"`
}

type check struct {
	name     string
	fn       CheckFunc
	critical bool
}

// Checker probes the service's dependencies
type Checker struct {
	checks    []check
	timeout   time.Duration
	startTime time.Time
}

func NewChecker(timeout time.Duration) *Checker {
	return &Checker{timeout: timeout, startTime: time.Now()}
}

// Register adds a probe. A failing critical probe makes the service unhealthy;
// a failing optional one only degrades it.
func (c *Checker) Register(name string, critical bool, fn CheckFunc) {
	c.checks = append(c.checks, check{name: name, fn: fn, critical: critical})
}

// CheckAll runs every probe concurrently
func (c *Checker) CheckAll(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	results := make([]DependencyHealth, 0, len(c.checks))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, chk := range c.checks {
		wg.Add(1)
		go func(chk check) {
			defer wg.Done()
			start := time.Now()
			res := DependencyHealth{
				Name:      chk.name,
				Status:    StatusHealthy,
				Critical:  chk.critical,
				Timestamp: start,
			}
			if err := chk.fn(ctx); err != nil {
				res.Status = StatusUnhealthy
				res.Error = err.Error()
				logger.Warn(ctx).Err(err).Str("dependency", chk.name).Msg("Health check failed")
			}
			res.Latency = time.Since(start)

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(chk)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	status := overallStatus(results)

	return Report{
		OK:           status != StatusUnhealthy,
		Status:       status,
		Dependencies: results,
		Uptime:       time.Since(c.startTime).Seconds(),
	}
}

func overallStatus(results []DependencyHealth) string {
	status := StatusHealthy
	for _, r := range results {
		if r.Status == StatusHealthy {
			continue
		}
		if r.Critical {
			return StatusUnhealthy
		}
		status = StatusDegraded
	}
	return status
}

// Handler serves the report, 503 when unhealthy
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := c.CheckAll(r.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(report)
	}
}
