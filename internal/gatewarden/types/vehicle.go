package types

import "strings"

type Classification string

const (
	ClassCompany  Classification = "COMPANY"
	ClassEmployee Classification = "EMPLOYEE"
	ClassGuest    Classification = "GUEST"
)

func (c Classification) Valid() bool {
	switch c {
	case ClassCompany, ClassEmployee, ClassGuest:
		return true
	}
	return false
}

func ParseClassification(s string) (Classification, bool) {
	c := Classification(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Vehicle is reference data keyed by plate. Plates are case-sensitive.
type Vehicle struct {
	Plate          string         `json:"plate"`
	Classification Classification `json:"classification"`
	Model          string         `json:"model,omitempty"`
	Year           int            `json:"year,omitempty"`
	Color          string         `json:"color,omitempty"`
}

// Identity is a badge holder. Plates lists the vehicles the identity may
// drive; it is the basis for correlating a badge scan with a detection.
type Identity struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Role   string   `json:"role,omitempty"`
	Plates []string `json:"plates"`
}
