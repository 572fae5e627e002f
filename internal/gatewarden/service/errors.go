package service

import (
	"errors"
	"strings"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

var (
	ErrInvalidPlate          = errors.New("plate is required")
	ErrInvalidDirection      = errors.New("direction must be ENTER or EXIT")
	ErrInvalidIdentityID     = errors.New("identity_id must be positive")
	ErrInvalidIdentityName   = errors.New("name is required")
	ErrInvalidClassification = errors.New("classification must be COMPANY, EMPLOYEE or GUEST")
	ErrInvalidSettings       = errors.New("qr_timeout_s and auto_close_delay_s must be positive")
)

// ParseCameraInput validates a camera report at the boundary. A missing
// direction defaults to ENTER.
func ParseCameraInput(in types.CameraInput) (string, types.Direction, error) {
	plate := strings.TrimSpace(in.Plate)
	if plate == "" {
		return "", "", ErrInvalidPlate
	}
	if strings.TrimSpace(in.Direction) == "" {
		return plate, types.DirectionEnter, nil
	}
	dir, ok := types.ParseDirection(in.Direction)
	if !ok {
		return "", "", ErrInvalidDirection
	}
	return plate, dir, nil
}
