package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/service"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
)

// writeAdminError maps service and store errors onto HTTP statuses.
func (s *Server) writeAdminError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrInvalidPlate):
		writeError(w, http.StatusBadRequest, "invalid_plate", err.Error())
	case errors.Is(err, service.ErrInvalidIdentityID):
		writeError(w, http.StatusBadRequest, "invalid_identity_id", err.Error())
	case errors.Is(err, service.ErrInvalidIdentityName):
		writeError(w, http.StatusBadRequest, "invalid_name", err.Error())
	case errors.Is(err, service.ErrInvalidClassification):
		writeError(w, http.StatusBadRequest, "invalid_classification", err.Error())
	case errors.Is(err, service.ErrInvalidSettings):
		writeError(w, http.StatusBadRequest, "invalid_settings", err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "admin request failed", "path", r.URL.Path, logging.ErrAttr(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}

// ── Identities ───────────────────────────────────────────────────────────────

func (s *Server) handleListIdentities(w http.ResponseWriter, r *http.Request) {
	idents, err := s.admin.ListIdentities(r.Context())
	if err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, idents)
}

func (s *Server) handleCreateIdentity(w http.ResponseWriter, r *http.Request) {
	var in types.Identity
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	in.ID = 0

	ident, err := s.admin.CreateIdentity(r.Context(), in)
	if err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ident)
}

func (s *Server) handleDeleteIdentity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_identity_id", service.ErrInvalidIdentityID.Error())
		return
	}
	if err := s.admin.DeleteIdentity(r.Context(), id); err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Vehicles ─────────────────────────────────────────────────────────────────

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.admin.ListVehicles(r.Context())
	if err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (s *Server) handleSaveVehicle(w http.ResponseWriter, r *http.Request) {
	var in types.Vehicle
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	v, err := s.admin.SaveVehicle(r.Context(), in)
	if err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteVehicle(r.Context(), r.PathValue("plate")); err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Settings and status ──────────────────────────────────────────────────────

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.admin.Settings(r.Context()))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var in types.GateSettings
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	gs, err := s.admin.UpdateSettings(r.Context(), in)
	if err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

// handleVehicleStatus projects every registered vehicle, or only the ones
// named by repeated ?plate= parameters.
func (s *Server) handleVehicleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.vehicleStatus(r.Context(), r.URL.Query()["plate"])
	if err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// vehicleStatus projects the registered vehicles whose plates are listed, or
// all of them when plates is empty. Unregistered plates are skipped.
func (s *Server) vehicleStatus(ctx context.Context, plates []string) ([]types.VehicleStatus, error) {
	vehicles, err := s.admin.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}

	if len(plates) > 0 {
		want := make(map[string]struct{}, len(plates))
		for _, p := range plates {
			want[strings.TrimSpace(p)] = struct{}{}
		}
		filtered := vehicles[:0]
		for _, v := range vehicles {
			if _, ok := want[v.Plate]; ok {
				filtered = append(filtered, v)
			}
		}
		vehicles = filtered
	}

	return s.projector.StatusOf(ctx, vehicles)
}
