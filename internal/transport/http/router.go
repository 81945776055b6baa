// Package httptransport wires every public endpoint onto one chi
// router. Handlers stay thin; cross-cutting concerns (request ids,
// CORS, request logging) are middleware.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	driverhandler "drivergate/internal/driver/handler"
	"drivergate/internal/platform/middleware"
	"drivergate/internal/upload"
	"drivergate/pkg/platform/httputil"
)

// Pinger reports the health of one dependency.
type Pinger interface {
	Health(ctx context.Context) error
}

// Deps collects everything the router mounts.
type Deps struct {
	Log     *slog.Logger
	Drivers *driverhandler.Handler
	Uploads *upload.Handler
	// Health maps a dependency name to its checker. Nil values are
	// skipped so optional dependencies (Redis) wire in cleanly.
	Health map[string]Pinger
}

// NewRouter builds the HTTP surface of the service.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Logging(deps.Log))

	r.Post("/register-driver", deps.Drivers.Register)
	r.Get("/admin-drivers", deps.Drivers.List)
	r.Post("/admin-drivers", deps.Drivers.Action)
	r.Get("/zones", deps.Drivers.Zones)

	r.Post("/driver-documents/{folder}", deps.Uploads.Upload)
	r.Get("/driver-documents/{folder}/{name}", deps.Uploads.Fetch)

	r.Get("/healthz", healthHandler(deps.Health))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthHandler(checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{}
		healthy := true
		for name, p := range checks {
			if p == nil {
				continue
			}
			if err := p.Health(ctx); err != nil {
				status[name] = "down"
				healthy = false
				continue
			}
			status[name] = "up"
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, code, httputil.Envelope{Success: healthy, Data: status})
	}
}
