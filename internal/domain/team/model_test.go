package team

import "testing"

func TestTournament_RosterIsValid(t *testing.T) {
	t.Parallel()

	roster := Tournament()
	if len(roster) != 4 {
		t.Fatalf("expected 4 teams, got %d", len(roster))
	}
	seen := make(map[string]struct{}, len(roster))
	for _, item := range roster {
		if err := item.Validate(); err != nil {
			t.Fatalf("validate %s: %v", item.ID, err)
		}
		if _, ok := seen[item.ID]; ok {
			t.Fatalf("duplicate team id %s", item.ID)
		}
		seen[item.ID] = struct{}{}
		if len(item.Players) != 7 {
			t.Fatalf("expected 7 players for %s, got %d", item.ID, len(item.Players))
		}
	}
}

func TestRoster_TeamOfPlayer(t *testing.T) {
	t.Parallel()

	roster := Tournament()
	got, ok := roster.TeamOfPlayer("Kushal", "feel-united", "userflow")
	if !ok || got.ID != "userflow" {
		t.Fatalf("expected userflow, got %+v ok=%v", got, ok)
	}
	if _, ok := roster.TeamOfPlayer("Kushal", "feel-united", "dhurandhars"); ok {
		t.Fatalf("expected no match outside the given sides")
	}
	if roster.HasPlayer("feel-united", "ninad") {
		t.Fatalf("player lookup must be case sensitive")
	}
	if roster.Has(TBD) {
		t.Fatalf("tbd must not be a registered team")
	}
}

func TestTeam_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		team Team
	}{
		{name: "missing id", team: Team{Name: "A", Players: []string{"x"}}},
		{name: "reserved id", team: Team{ID: TBD, Name: "A", Players: []string{"x"}}},
		{name: "missing name", team: Team{ID: "a", Players: []string{"x"}}},
		{name: "empty squad", team: Team{ID: "a", Name: "A"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.team.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
