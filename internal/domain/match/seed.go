package match

import (
	"fmt"

	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

type fixtureSlot struct {
	home string
	away string
	date string
	time string
}

var schedule = []fixtureSlot{
	{home: "feel-united", away: "dhurandhars", date: "2026-01-29", time: "17:00"},
	{home: "userflow", away: "goaldiggers", date: "2026-01-29", time: "17:30"},
	{home: "userflow", away: "dhurandhars", date: "2026-01-29", time: "18:00"},
	{home: "goaldiggers", away: "dhurandhars", date: "2026-01-29", time: "19:00"},
	{home: "feel-united", away: "userflow", date: "2026-01-30", time: "18:00"},
	{home: "goaldiggers", away: "feel-united", date: "2026-01-30", time: "18:30"},
	{home: "dhurandhars", away: "userflow", date: "2026-01-30", time: "19:00"},
	{home: "goaldiggers", away: "userflow", date: "2026-01-30", time: "19:30"},
	{home: "dhurandhars", away: "feel-united", date: "2026-01-30", time: "20:00"},
	{home: "feel-united", away: "goaldiggers", date: "2026-02-02", time: "18:00"},
	{home: "dhurandhars", away: "goaldiggers", date: "2026-02-02", time: "18:30"},
	{home: "userflow", away: "feel-united", date: "2026-02-02", time: "19:00"},
	{home: team.TBD, away: team.TBD, date: "2026-02-02", time: "19:30"},
}

// Schedule returns the initial fixture list. The last fixture is the final.
func Schedule() []Match {
	out := make([]Match, 0, len(schedule))
	for i, slot := range schedule {
		out = append(out, Match{
			ID:      fmt.Sprintf("match-%d", i+1),
			Number:  i + 1,
			Home:    slot.home,
			Away:    slot.away,
			Date:    slot.date,
			Time:    slot.time,
			Status:  StatusUpcoming,
			Goals:   []Goal{},
			IsFinal: i == len(schedule)-1,
		})
	}
	return out
}
