package types

import (
	"strings"
	"time"
)

type Direction string

const (
	DirectionEnter Direction = "ENTER"
	DirectionExit  Direction = "EXIT"
)

func (d Direction) Valid() bool {
	return d == DirectionEnter || d == DirectionExit
}

// ParseDirection accepts ENTER/EXIT in any case.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	return d, d.Valid()
}

type Action string

const (
	ActionAutomaticOpen Action = "AUTOMATIC_OPEN"
	ActionForcedOpen    Action = "FORCED_OPEN"
	ActionForcedClose   Action = "FORCED_CLOSE"
	ActionReject        Action = "REJECT"
)

// Entry reports whether the action lets a vehicle through the gate.
func (a Action) Entry() bool {
	return a == ActionAutomaticOpen || a == ActionForcedOpen
}

// AccessEvent is one immutable audit record. IdentityID and Plate are nil
// when the action was not attributed to a driver or no registered vehicle
// was involved.
type AccessEvent struct {
	ID         int64     `json:"id"`
	IdentityID *int64    `json:"identity_id,omitempty"`
	Plate      *string   `json:"plate,omitempty"`
	Action     Action    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

type PendingDetection struct {
	Plate      string    `json:"plate"`
	DetectedAt time.Time `json:"detected_at"`
	Direction  Direction `json:"direction"`
}

type BarrierState string

const (
	BarrierClosed BarrierState = "CLOSED"
	BarrierOpen   BarrierState = "OPEN"
)

type Presence string

const (
	PresenceInside  Presence = "INSIDE"
	PresenceOutside Presence = "OUTSIDE"
)

type VehicleStatus struct {
	Vehicle Vehicle  `json:"vehicle"`
	Status  Presence `json:"status"`
}

// GateSettings holds the runtime-tunable gate parameters.
type GateSettings struct {
	QRTimeoutSeconds      int `json:"qr_timeout_s"`
	AutoCloseDelaySeconds int `json:"auto_close_delay_s"`
}

func (s GateSettings) QRTimeout() time.Duration {
	return time.Duration(s.QRTimeoutSeconds) * time.Second
}
