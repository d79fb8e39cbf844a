package scoring

import (
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	"github.com/riskibarqy/weekly-pickem/internal/domain/team"
)

// WeeklyScore is the derived all-or-nothing result of one user's week.
type WeeklyScore struct {
	UserID     int64
	Season     int
	Week       int
	Points     int
	ComputedAt time.Time
}

// Tally classifies a user's picks for one week against the week's games.
type Tally struct {
	Picks      int
	Correct    int
	Wrong      int
	Unresolved int
}

// TallyPicks counts picks whose game is missing or not final as unresolved.
func TallyPicks(picks []pick.Pick, games map[int64]game.Game) Tally {
	t := Tally{Picks: len(picks)}
	for _, p := range picks {
		g, ok := games[p.GameID]
		if !ok || !g.IsFinal() {
			t.Unresolved++
			continue
		}
		if team.IsSame(p.PickedTeam, g.WinnerTeam) {
			t.Correct++
		} else {
			t.Wrong++
		}
	}
	return t
}

// Ready reports whether a score may be written. Zero picks are always ready.
func (t Tally) Ready() bool {
	return t.Unresolved == 0
}

// Points is the pick count when every pick won, else zero. Unready tallies
// score zero and must not be persisted.
func (t Tally) Points() int {
	if !t.Ready() || t.Wrong > 0 {
		return 0
	}
	return t.Correct
}
