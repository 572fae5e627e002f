package httpapi

import (
	"errors"
	"net/http"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/service"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
)

// handleCamera accepts a plate detection from a lane camera. Both JSON
// and protobuf bodies are accepted; the response mirrors the request
// encoding.
func (s *Server) handleCamera(w http.ResponseWriter, r *http.Request) {
	useProto := isProtobuf(r)

	var in types.CameraInput
	if useProto {
		var msg structpb.Struct
		if err := readProto(r, &msg); err != nil {
			writeError(w, http.StatusBadRequest, "bad_proto", "invalid protobuf body")
			return
		}
		in = cameraInputFromProto(&msg)
	} else if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	plate, dir, err := service.ParseCameraInput(in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlate):
			writeError(w, http.StatusBadRequest, "invalid_plate", err.Error())
		default:
			writeError(w, http.StatusBadRequest, "invalid_direction", err.Error())
		}
		return
	}

	det, _ := s.engine.RecordDetection(r.Context(), plate, dir)

	resp := types.CameraResponse{
		OK:         true,
		Plate:      det.Plate,
		Direction:  string(det.Direction),
		ServerTime: det.DetectedAt.Format(time.RFC3339),
	}
	if useProto {
		writeProto(w, http.StatusAccepted, cameraResponseToProto(resp))
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	var in types.QRInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if in.IdentityID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_identity_id", service.ErrInvalidIdentityID.Error())
		return
	}

	decision, err := s.engine.OnIdentityPresented(r.Context(), in.IdentityID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "qr input failed", logging.ErrAttr(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, decision)
}
