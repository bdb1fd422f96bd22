package sync

import (
	"github.com/julianstephens/challenge-radar/internal/models"
)

// Merge unions two snapshots by id. For ids present on both sides the
// copy with the greater updated_at wins; a missing or unparseable
// timestamp counts as earliest possible, so equal timestamps keep the
// remote copy. One-sided ids are kept as-is.
//
// The result is deterministic: remote order first, then local-only items
// in local order.
func Merge(local, remote []models.Challenge) []models.Challenge {
	byID := make(map[string]models.Challenge, len(remote)+len(local))
	order := make([]string, 0, len(remote)+len(local))

	for _, r := range remote {
		byID[r.ID] = r
		order = append(order, r.ID)
	}

	for _, l := range local {
		existing, ok := byID[l.ID]
		if !ok {
			byID[l.ID] = l
			order = append(order, l.ID)
			continue
		}
		if l.UpdatedTime().After(existing.UpdatedTime()) {
			byID[l.ID] = l
		}
	}

	merged := make([]models.Challenge, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id].Clone())
	}
	return merged
}
