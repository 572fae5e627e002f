package memory

import (
	"cmp"
	"slices"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

func sortEvents(events []types.AccessEvent) {
	slices.SortStableFunc(events, func(a, b types.AccessEvent) int {
		if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func clonePlates(plates []string) []string {
	if plates == nil {
		return []string{}
	}
	out := make([]string, len(plates))
	copy(out, plates)
	slices.Sort(out)
	return slices.Compact(out)
}
