package match

import (
	"testing"

	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":          StatusUpcoming,
		"upcoming":  StatusUpcoming,
		" LIVE ":    StatusLive,
		"ft":        StatusFinished,
		"FT":        StatusFinished,
		"finished":  StatusFinished,
		"postponed": "postponed",
	}
	for input, want := range tests {
		if got := NormalizeStatus(input); got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", input, got, want)
		}
	}
	if IsValidStatus("postponed") {
		t.Fatalf("postponed must not be a valid status")
	}
}

func TestDerivedScore_IgnoresStoredFields(t *testing.T) {
	t.Parallel()

	m := Match{
		Home:      "x",
		Away:      "y",
		ScoreHome: 9,
		ScoreAway: 9,
		Goals: []Goal{
			{Player: "A", Team: "x"},
			{Player: OwnGoal, Team: "x"},
			{Player: "B", Team: "y"},
			{Player: "C", Team: "ghost"},
		},
	}

	home, away := m.DerivedScore()
	if home != 2 || away != 1 {
		t.Fatalf("expected 2-1, got %d-%d", home, away)
	}

	m.SyncScore()
	if m.ScoreHome != 2 || m.ScoreAway != 1 {
		t.Fatalf("expected synced 2-1, got %d-%d", m.ScoreHome, m.ScoreAway)
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	t.Parallel()

	m := Match{Goals: []Goal{{Player: "A"}}, MoMWinners: []string{"ann"}}
	cp := m.Clone()
	cp.Goals[0].Player = "Z"
	cp.MoMWinners[0] = "bob"
	if m.Goals[0].Player != "A" || m.MoMWinners[0] != "ann" {
		t.Fatalf("clone mutated source: %+v", m)
	}
}

func TestFinished_OrdersByNumber(t *testing.T) {
	t.Parallel()

	items := []Match{
		{ID: "m3", Number: 3, Status: StatusFinished},
		{ID: "m1", Number: 1, Status: "ft"},
		{ID: "m2", Number: 2, Status: StatusLive},
	}
	got := Finished(items)
	if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m3" {
		t.Fatalf("unexpected finished order: %+v", got)
	}
	if items[0].ID != "m3" {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestSchedule(t *testing.T) {
	t.Parallel()

	items := Schedule()
	if len(items) != 13 {
		t.Fatalf("expected 13 fixtures, got %d", len(items))
	}
	roster := team.Tournament()
	for i, item := range items[:12] {
		if item.Number != i+1 || item.IsFinal {
			t.Fatalf("unexpected group fixture: %+v", item)
		}
		if !roster.Has(item.Home) || !roster.Has(item.Away) {
			t.Fatalf("fixture %s references unknown team", item.ID)
		}
	}
	final := items[12]
	if !final.IsFinal || final.IsResolved() {
		t.Fatalf("expected unresolved final, got %+v", final)
	}
}
