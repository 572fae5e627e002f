package db

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// Roster is the YAML document used to seed reference data in dev:
//
//	vehicles:
//	  - plate: BOSS-01
//	    classification: COMPANY
//	    model: Tesla Model S
//	identities:
//	  - id: 1
//	    name: Robert Smith
//	    role: DIRECTOR
//	    plates: [BOSS-01]
type Roster struct {
	Vehicles   []RosterVehicle  `yaml:"vehicles"`
	Identities []RosterIdentity `yaml:"identities"`
}

type RosterVehicle struct {
	Plate          string `yaml:"plate"`
	Classification string `yaml:"classification"`
	Model          string `yaml:"model"`
	Year           int    `yaml:"year"`
	Color          string `yaml:"color"`
}

type RosterIdentity struct {
	ID     int64    `yaml:"id"`
	Name   string   `yaml:"name"`
	Role   string   `yaml:"role"`
	Plates []string `yaml:"plates"`
}

type RosterSummary struct {
	Vehicles   int
	Identities int
}

func ParseRoster(r io.Reader) (Roster, error) {
	var roster Roster
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&roster); err != nil {
		if err == io.EOF {
			return Roster{}, nil
		}
		return Roster{}, fmt.Errorf("decode roster: %w", err)
	}
	return roster, nil
}

// ImportRosterFile loads a roster file and upserts it into rs.
func ImportRosterFile(ctx context.Context, rs store.RecordStore, path string) (RosterSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return RosterSummary{}, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	roster, err := ParseRoster(f)
	if err != nil {
		return RosterSummary{}, err
	}
	return ImportRoster(ctx, rs, roster)
}

// ImportRoster upserts vehicles by plate and identities by id. Identities
// without an id are created with a fresh one. The whole roster is
// validated before anything is written.
func ImportRoster(ctx context.Context, rs store.RecordStore, roster Roster) (RosterSummary, error) {
	vehicles := make([]types.Vehicle, 0, len(roster.Vehicles))
	for i, rv := range roster.Vehicles {
		plate := strings.TrimSpace(rv.Plate)
		if plate == "" {
			return RosterSummary{}, fmt.Errorf("roster vehicle %d: plate is required", i)
		}
		class, ok := types.ParseClassification(rv.Classification)
		if !ok {
			return RosterSummary{}, fmt.Errorf("roster vehicle %s: bad classification %q", plate, rv.Classification)
		}
		vehicles = append(vehicles, types.Vehicle{
			Plate:          plate,
			Classification: class,
			Model:          strings.TrimSpace(rv.Model),
			Year:           rv.Year,
			Color:          strings.TrimSpace(rv.Color),
		})
	}

	identities := make([]types.Identity, 0, len(roster.Identities))
	for i, ri := range roster.Identities {
		name := strings.TrimSpace(ri.Name)
		if name == "" {
			return RosterSummary{}, fmt.Errorf("roster identity %d: name is required", i)
		}
		if ri.ID < 0 {
			return RosterSummary{}, fmt.Errorf("roster identity %s: negative id", name)
		}
		plates := make([]string, 0, len(ri.Plates))
		for _, p := range ri.Plates {
			if p = strings.TrimSpace(p); p != "" {
				plates = append(plates, p)
			}
		}
		identities = append(identities, types.Identity{
			ID:     ri.ID,
			Name:   name,
			Role:   strings.TrimSpace(ri.Role),
			Plates: plates,
		})
	}

	var sum RosterSummary
	for _, v := range vehicles {
		if err := rs.SaveVehicle(ctx, v); err != nil {
			return sum, fmt.Errorf("roster save vehicle %s: %w", v.Plate, err)
		}
		sum.Vehicles++
	}
	for _, ident := range identities {
		var err error
		if ident.ID == 0 {
			_, err = rs.CreateIdentity(ctx, ident)
		} else {
			err = rs.SaveIdentity(ctx, ident)
		}
		if err != nil {
			return sum, fmt.Errorf("roster save identity %s: %w", ident.Name, err)
		}
		sum.Identities++
	}

	return sum, nil
}
