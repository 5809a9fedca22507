package match

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/republic-cup/internal/domain/team"
)

const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
	StatusFinished = "finished"
)

const (
	// OwnGoal is the scorer name recorded for an own goal. The entry's team is
	// the side credited with the goal.
	OwnGoal = "Own Goal"

	// RefereeDecision is published as man of the match when the referee names
	// no eligible player. It never equals a predicted player.
	RefereeDecision = "Referee Decision"
)

// Goal is one entry of a match's goal log.
type Goal struct {
	Player    string
	Team      string
	Assist    string
	CreatedAt time.Time
}

func (g Goal) IsOwnGoal() bool {
	return g.Player == OwnGoal
}

// Match is one tournament fixture with its append-only goal log.
type Match struct {
	ID                string
	Number            int
	Home              string
	Away              string
	Date              string
	Time              string
	Status            string
	ScoreHome         int
	ScoreAway         int
	Goals             []Goal
	IsFinal           bool
	ManOfTheMatch     string
	MoMWinners        []string
	PredictionsLocked bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NormalizeStatus maps stored status values onto the three known statuses.
// The legacy "ft" value is treated as finished.
func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	switch status {
	case "", StatusUpcoming, "scheduled":
		return StatusUpcoming
	case "ft", "full_time", StatusFinished:
		return StatusFinished
	default:
		return status
	}
}

func IsValidStatus(value string) bool {
	switch NormalizeStatus(value) {
	case StatusUpcoming, StatusLive, StatusFinished:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(value string) bool {
	return NormalizeStatus(value) == StatusFinished
}

func (m Match) IsFinished() bool {
	return IsFinishedStatus(m.Status)
}

// IsPublished reports whether a man of the match result has been announced.
func (m Match) IsPublished() bool {
	return m.ManOfTheMatch != ""
}

// IsResolved reports whether both sides are known teams.
func (m Match) IsResolved() bool {
	return m.Home != "" && m.Away != "" && m.Home != team.TBD && m.Away != team.TBD
}

func (m Match) HasSide(teamID string) bool {
	return teamID != "" && (teamID == m.Home || teamID == m.Away)
}

// DerivedScore counts the goal log per side. Stored score fields are ignored;
// entries for a team that is neither side are skipped.
func (m Match) DerivedScore() (home, away int) {
	for _, goal := range m.Goals {
		switch goal.Team {
		case m.Home:
			home++
		case m.Away:
			away++
		}
	}
	return home, away
}

// SyncScore rewrites the stored score fields from the goal log.
func (m *Match) SyncScore() {
	m.ScoreHome, m.ScoreAway = m.DerivedScore()
}

// Clone returns a deep copy that shares no slices with m.
func (m Match) Clone() Match {
	out := m
	out.Goals = slices.Clone(m.Goals)
	out.MoMWinners = slices.Clone(m.MoMWinners)
	return out
}

// SortedByNumber returns a copy of items in ascending match number order.
func SortedByNumber(items []Match) []Match {
	out := make([]Match, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}

// Finished returns the finished matches of items in ascending match number order.
func Finished(items []Match) []Match {
	out := make([]Match, 0, len(items))
	for _, item := range SortedByNumber(items) {
		if item.IsFinished() {
			out = append(out, item)
		}
	}
	return out
}
