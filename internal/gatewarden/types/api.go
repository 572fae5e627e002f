package types

type CameraInput struct {
	Plate     string `json:"plate"`
	Direction string `json:"direction,omitempty"`
}

type CameraResponse struct {
	OK         bool   `json:"ok"`
	Plate      string `json:"plate"`
	Direction  string `json:"direction"`
	ServerTime string `json:"server_time"`
}

type QRInput struct {
	IdentityID int64 `json:"identity_id"`
}

// Decision is the outcome of one badge presentation.
type Decision struct {
	Granted    bool         `json:"granted"`
	Reason     string       `json:"reason"`
	IdentityID int64        `json:"identity_id"`
	Plate      string       `json:"plate,omitempty"`
	Direction  Direction    `json:"direction,omitempty"`
	DecidedAt  string       `json:"decided_at"`
	Event      *AccessEvent `json:"event,omitempty"`
}

const (
	ReasonUnknownIdentity  = "unknown_identity"
	ReasonNoPendingPlate   = "no_pending_plate"
	ReasonDetectionExpired = "detection_expired"
	ReasonAutomaticGrant   = "automatic_grant"
)

type PendingView struct {
	Plate      string    `json:"plate"`
	DetectedAt string    `json:"detected_at"`
	Direction  Direction `json:"direction"`
	Fresh      bool      `json:"fresh"`
	AgeSeconds float64   `json:"age_s"`
}

type GuardActionResponse struct {
	OK      bool         `json:"ok"`
	Barrier BarrierState `json:"barrier"`
	Event   *AccessEvent `json:"event,omitempty"`
}

type BarrierResponse struct {
	State BarrierState `json:"state"`
	Open  bool         `json:"open"`
}
