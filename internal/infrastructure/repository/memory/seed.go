package memory

import (
	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

// SeedTeams returns the registered tournament sides. Matches are seeded
// through the match service so both stores share one code path.
func SeedTeams() []team.Team {
	return team.Tournament()
}
