// internal/common/health/health.go
// Liveness endpoint reporting dependency status

package health

import (
	"context"
	"net/http"
	"time"

	"github.com/imadgeboyega/kiekky-datecards/internal/common/utils"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the body of a health response.
type Status struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
}

// Checker pings each named dependency on every request.
type Checker struct {
	checks  map[string]func(ctx context.Context) error
	started time.Time
	timeout time.Duration
}

func NewChecker() *Checker {
	return &Checker{
		checks:  make(map[string]func(ctx context.Context) error),
		started: time.Now(),
		timeout: 2 * time.Second,
	}
}

// Add registers a dependency. Nil pingers are ignored.
func (c *Checker) Add(name string, p Pinger) *Checker {
	if p != nil {
		c.checks[name] = p.PingContext
	}
	return c
}

// AddFunc registers a dependency given as a plain check function.
func (c *Checker) AddFunc(name string, check func(ctx context.Context) error) *Checker {
	c.checks[name] = check
	return c
}

// ServeHTTP answers 200 when every check passes and 503 otherwise.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	status := Status{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Checks:    make(map[string]string, len(c.checks)),
	}

	code := http.StatusOK
	for name, check := range c.checks {
		if err := check(ctx); err != nil {
			status.Checks[name] = "unavailable"
			status.Status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "ok"
	}

	utils.RespondWithJSON(w, code, status)
}
