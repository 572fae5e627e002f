package httpapi

import (
	"net/http"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
)

func (s *Server) handlePending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.guard.Pending(r.Context()))
}

func (s *Server) handleForceOpen(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.guard.ForceOpen(r.Context(), r.URL.Query().Get("plate")))
}

func (s *Server) handleForceClose(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.guard.ForceClose(r.Context()))
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.guard.Reject(r.Context(), r.URL.Query().Get("plate")))
}

func (s *Server) handleBarrier(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.guard.BarrierStatus())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.guard.History(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list events failed", logging.ErrAttr(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// handleFleetStatus projects the company fleet, or the vehicles named by
// repeated ?plate= parameters.
func (s *Server) handleFleetStatus(w http.ResponseWriter, r *http.Request) {
	var (
		status []types.VehicleStatus
		err    error
	)
	if plates := r.URL.Query()["plate"]; len(plates) > 0 {
		status, err = s.vehicleStatus(r.Context(), plates)
	} else {
		status, err = s.projector.CompanyFleetStatus(r.Context())
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "fleet status failed", logging.ErrAttr(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, status)
}
