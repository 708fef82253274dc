package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
	"github.com/Spok95/kit-inventory/internal/infra/metrics"
)

// Inventory - то, что API нужно от сервисного слоя.
type Inventory interface {
	ListStock(ctx context.Context) (all, low []stock.Item, err error)
	GetStock(ctx context.Context, name string) (*stock.Item, error)
	CreateStock(ctx context.Context, it stock.Item) (*stock.Item, error)
	UpdateStock(ctx context.Context, name string, u stock.Update) (*stock.Item, error)
	AddQuantity(ctx context.Context, name string, delta int) (*stock.Item, error)
	DeleteStock(ctx context.Context, name string) error
	CheckLowStock(ctx context.Context) ([]stock.Item, error)

	SearchEmployees(ctx context.Context, query string) ([]employees.Employee, error)
	GetEmployee(ctx context.Context, id string) (*employees.Employee, error)
	CreateEmployee(ctx context.Context, e employees.Employee) (*employees.Employee, error)
	UpdateEmployee(ctx context.Context, id string, u employees.Update) (*employees.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	EmployeeStats(ctx context.Context) (employees.Stats, error)
}

type Options struct {
	BasePath string
	// Gatherer для /metrics; nil - эндпоинта нет.
	Gatherer prometheus.Gatherer
}

type handler struct {
	svc Inventory
	log *slog.Logger
}

// Routes собирает весь HTTP: /health, /metrics и API под opts.BasePath.
func Routes(svc Inventory, log *slog.Logger, m *metrics.Metrics, opts Options) http.Handler {
	h := &handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(requestID, accessLog(log), instrument(m), middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	base := opts.BasePath
	if base == "" {
		base = "/"
	}
	r.Route(base, func(r chi.Router) {
		r.Route("/stock", func(r chi.Router) {
			r.Get("/", h.listStock)
			r.Post("/", h.createStock)
			r.Post("/low-stock-check", h.checkLowStock)
			r.Get("/{name}", h.getStock)
			r.Put("/{name}", h.updateStock)
			r.Delete("/{name}", h.deleteStock)
			r.Post("/{name}/add", h.addStock)
		})
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.listEmployees)
			r.Post("/", h.createEmployee)
			r.Get("/stats", h.employeeStats)
			r.Get("/{id}", h.getEmployee)
			r.Put("/{id}", h.updateEmployee)
			r.Delete("/{id}", h.deleteEmployee)
		})
		r.Route("/export", func(r chi.Router) {
			r.Get("/stock", h.exportStock)
			r.Get("/employees", h.exportEmployees)
		})
	})
	return r
}
