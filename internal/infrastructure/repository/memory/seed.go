package memory

import (
	"time"

	"github.com/efantasy/league-service/internal/domain/league"
)

const (
	SeedAdminUserID int64 = 1
	SeedScoringType       = "standard"
)

// SeedLeagues returns demo leagues for local runs of the memory store.
func SeedLeagues(now time.Time) []league.League {
	now = now.UTC().Truncate(time.Second)
	return []league.League{
		{
			ID:           1,
			Name:         "Weekend Warriors",
			AdminID:      SeedAdminUserID,
			MaxTeams:     10,
			IsPublic:     true,
			DraftTime:    now.Add(7 * 24 * time.Hour),
			ScoringType:  SeedScoringType,
			Participants: []int64{SeedAdminUserID},
			CreatedAt:    now.Add(-2 * time.Hour),
			UpdatedAt:    now.Add(-2 * time.Hour),
		},
		{
			ID:           2,
			Name:         "Office Pool",
			AdminID:      SeedAdminUserID,
			MaxTeams:     8,
			IsPublic:     false,
			DraftTime:    now.Add(14 * 24 * time.Hour),
			ScoringType:  "points",
			Participants: []int64{SeedAdminUserID},
			CreatedAt:    now.Add(-time.Hour),
			UpdatedAt:    now.Add(-time.Hour),
		},
	}
}
