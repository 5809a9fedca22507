package usecase

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/republic-cup/internal/domain/match"
)

// legacyMatch is a match document as the first tracker exported it: the doc
// id plus the raw document fields.
type legacyMatch struct {
	ID                string        `json:"id"`
	MatchNumber       int           `json:"matchNumber"`
	Home              string        `json:"home"`
	Away              string        `json:"away"`
	Date              string        `json:"date"`
	Time              string        `json:"time"`
	Status            string        `json:"status"`
	ScoreHome         int           `json:"scoreHome"`
	ScoreAway         int           `json:"scoreAway"`
	Goals             []legacyGoal  `json:"goals"`
	IsFinal           bool          `json:"isFinal"`
	ManOfTheMatch     string        `json:"manOfTheMatch"`
	MoMWinners        []string      `json:"momWinners"`
	PredictionsLocked bool          `json:"predictionsLocked"`
	CreatedAt         firestoreTime `json:"createdAt"`
	UpdatedAt         firestoreTime `json:"updatedAt"`
}

type legacyGoal struct {
	Player    string        `json:"player"`
	Team      string        `json:"team"`
	Assist    string        `json:"assist"`
	Timestamp firestoreTime `json:"timestamp"`
}

func (m legacyMatch) toMatch() match.Match {
	goals := make([]match.Goal, 0, len(m.Goals))
	for _, goal := range m.Goals {
		goals = append(goals, match.Goal{
			Player:    goal.Player,
			Team:      goal.Team,
			Assist:    goal.Assist,
			CreatedAt: goal.Timestamp.Time,
		})
	}
	return match.Match{
		ID:                m.ID,
		Number:            m.MatchNumber,
		Home:              m.Home,
		Away:              m.Away,
		Date:              m.Date,
		Time:              m.Time,
		Status:            m.Status,
		ScoreHome:         m.ScoreHome,
		ScoreAway:         m.ScoreAway,
		Goals:             goals,
		IsFinal:           m.IsFinal,
		ManOfTheMatch:     m.ManOfTheMatch,
		MoMWinners:        m.MoMWinners,
		PredictionsLocked: m.PredictionsLocked,
		CreatedAt:         m.CreatedAt.Time,
		UpdatedAt:         m.UpdatedAt.Time,
	}
}

// firestoreTime accepts an RFC 3339 string or a serialized Firestore
// timestamp ({"seconds":..,"nanoseconds":..}). Anything else reads as the zero
// time so a stray field never blocks a restore.
type firestoreTime struct {
	time.Time
}

func (t *firestoreTime) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var raw string
		if err := sonic.Unmarshal(data, &raw); err != nil {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			t.Time = parsed.UTC()
		}
	case '{':
		var ts struct {
			Seconds      *int64 `json:"seconds"`
			Nanoseconds  int64  `json:"nanoseconds"`
			AdminSeconds *int64 `json:"_seconds"`
			AdminNanos   int64  `json:"_nanoseconds"`
		}
		if err := sonic.Unmarshal(data, &ts); err != nil {
			return nil
		}
		switch {
		case ts.Seconds != nil:
			t.Time = time.Unix(*ts.Seconds, ts.Nanoseconds).UTC()
		case ts.AdminSeconds != nil:
			t.Time = time.Unix(*ts.AdminSeconds, ts.AdminNanos).UTC()
		}
	}
	return nil
}
