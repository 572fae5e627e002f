package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/cors"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/service"
	"github.com/BrandonDHaskell/gatewarden/internal/monitoring"
)

type Dependencies struct {
	Logger      *slog.Logger
	Addr        string
	CORSOrigins []string
	Metrics     monitoring.Metrics

	Engine    *service.CorrelationEngine
	Guard     *service.GuardService
	Admin     *service.AdminService
	Projector *service.StatusProjector
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	mux        *http.ServeMux
	engine     *service.CorrelationEngine
	guard      *service.GuardService
	admin      *service.AdminService
	projector  *service.StatusProjector
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:    d.Logger,
		mux:       mux,
		engine:    d.Engine,
		guard:     d.Guard,
		admin:     d.Admin,
		projector: d.Projector,
	}

	// Device inputs
	mux.HandleFunc("POST /v1/input/camera", s.handleCamera)
	mux.HandleFunc("POST /v1/input/qr", s.handleQR)

	// Guard console
	mux.HandleFunc("GET /v1/guard/pending", s.handlePending)
	mux.HandleFunc("POST /v1/guard/open", s.handleForceOpen)
	mux.HandleFunc("POST /v1/guard/close", s.handleForceClose)
	mux.HandleFunc("POST /v1/guard/reject", s.handleReject)
	mux.HandleFunc("GET /v1/guard/barrier", s.handleBarrier)
	mux.HandleFunc("GET /v1/guard/events", s.handleEvents)
	mux.HandleFunc("GET /v1/guard/vehicle-status", s.handleFleetStatus)

	// Admin
	mux.HandleFunc("GET /v1/admin/identities", s.handleListIdentities)
	mux.HandleFunc("POST /v1/admin/identities", s.handleCreateIdentity)
	mux.HandleFunc("DELETE /v1/admin/identities/{id}", s.handleDeleteIdentity)
	mux.HandleFunc("GET /v1/admin/vehicles", s.handleListVehicles)
	mux.HandleFunc("POST /v1/admin/vehicles", s.handleSaveVehicle)
	mux.HandleFunc("DELETE /v1/admin/vehicles/{plate}", s.handleDeleteVehicle)
	mux.HandleFunc("GET /v1/admin/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /v1/admin/settings", s.handlePutSettings)
	mux.HandleFunc("GET /v1/admin/vehicle-status", s.handleVehicleStatus)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	d.Metrics.Setup(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	chain := alice.New(recovered(d.Logger), logged(d.Logger), c.Handler, d.Metrics.Handler)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           chain.Then(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
