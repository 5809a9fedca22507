package team

import (
	"fmt"
	"slices"
	"strings"
)

// TBD marks a knockout slot whose team has not been decided yet.
const TBD = "tbd"

// Team is one tournament side with its registered squad.
type Team struct {
	ID      string
	Name    string
	Short   string
	Players []string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if t.ID == TBD {
		return fmt.Errorf("team id %q is reserved", TBD)
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Players) == 0 {
		return fmt.Errorf("team %s has no players", t.ID)
	}

	return nil
}

// HasPlayer reports whether name is registered in the squad. Comparison is exact.
func (t Team) HasPlayer(name string) bool {
	return slices.Contains(t.Players, name)
}

// Roster is the ordered reference set of teams. Its order is the table order
// used when every other standings criterion is equal.
type Roster []Team

func (r Roster) Get(id string) (Team, bool) {
	for _, item := range r {
		if item.ID == id {
			return item, true
		}
	}
	return Team{}, false
}

func (r Roster) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

func (r Roster) HasPlayer(teamID, name string) bool {
	item, ok := r.Get(teamID)
	if !ok {
		return false
	}
	return item.HasPlayer(name)
}

// TeamOfPlayer returns the first team among ids whose squad lists name.
func (r Roster) TeamOfPlayer(name string, ids ...string) (Team, bool) {
	for _, id := range ids {
		item, ok := r.Get(id)
		if ok && item.HasPlayer(name) {
			return item, true
		}
	}
	return Team{}, false
}
